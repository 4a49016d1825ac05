package core

import (
	"slices"
	"strings"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// Selection is an ordered set of model ids picked for comparison.
// The zero value is an empty selection ready to use.
type Selection struct {
	ids []string
}

// NewSelection builds a selection from ids, dropping empties and duplicates.
func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Toggle removes id when it is selected and appends it otherwise.
// Toggling the same id twice restores the original selection.
func (s *Selection) Toggle(id string) {
	if s.Contains(id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Add appends id unless it is empty or already selected.
func (s *Selection) Add(id string) {
	if id == "" || s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Remove drops id, keeping the order of the rest.
func (s *Selection) Remove(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order. Never nil.
func (s *Selection) IDs() []string {
	if len(s.ids) == 0 {
		return []string{}
	}
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Token serializes the selection as a comma-joined list of ids.
func (s *Selection) Token() string {
	return strings.Join(s.ids, ",")
}

// ParseSelectionToken restores a selection from its token. Ids for which
// exists returns false are dropped along with empties and duplicates; the
// rest keep their order. A nil exists accepts every id.
func ParseSelectionToken(token string, exists func(id string) bool) *Selection {
	s := &Selection{}
	for _, id := range contract.SplitToken(token) {
		if exists != nil && !exists(id) {
			continue
		}
		s.Add(id)
	}
	return s
}

// ResolveTagToken returns token when it names one of the available tags,
// and the "All" filter otherwise.
func ResolveTagToken(token string, available []string) string {
	return resolveToken(token, available)
}

// resolveToken returns the trimmed token when it is one of available,
// and the "All" filter otherwise.
func resolveToken(token string, available []string) string {
	token = strings.TrimSpace(token)
	if token == "" || !slices.Contains(available, token) {
		return schema.AllFilter
	}
	return token
}
