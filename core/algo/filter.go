// Package algo has filtering, sorting and pagination for index views.
package algo

import (
	"sort"
	"strings"
	"time"

	"github.com/huangsam/benchboard/schema"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterableItem is an item that can appear in an index view.
type FilterableItem interface {
	GetName() string
	GetPublisher() string
	GetTags() []string
	GetDate() string
	GetHeat() float64
	GetScore() float64
}

// dateLayouts are tried in order when parsing item dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses the date formats found in records.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether an item passes the search text and filter of q.
func Matches[T FilterableItem](item T, q schema.Query) bool {
	if q.SearchText != "" {
		needle := strings.ToLower(q.SearchText)
		if !strings.Contains(strings.ToLower(item.GetName()), needle) &&
			!strings.Contains(strings.ToLower(item.GetPublisher()), needle) {
			return false
		}
	}
	if schema.IsAllFilter(q.Filter) {
		return true
	}
	switch q.FilterField {
	case schema.PublisherFilter:
		return item.GetPublisher() == q.Filter
	default:
		for _, t := range item.GetTags() {
			if t == q.Filter {
				return true
			}
		}
		return false
	}
}

// FilterAndSort returns the items that match q, ordered by q.SortKey.
// The input is not modified and the result is never nil.
func FilterAndSort[T FilterableItem](items []T, q schema.Query) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, q) {
			out = append(out, item)
		}
	}
	SortItems(out, q.SortKey)
	return out
}

// SortItems orders items in place by the sort key. Ties keep their prior order.
func SortItems[T FilterableItem](items []T, key schema.SortKey) {
	less := comparator(items, key)
	if less == nil {
		return
	}
	sort.SliceStable(items, less)
}

// comparator is the single dispatch point for every sort key.
func comparator[T FilterableItem](items []T, key schema.SortKey) func(i, j int) bool {
	switch key {
	case schema.TrendingSort:
		return func(i, j int) bool {
			return items[i].GetHeat() > items[j].GetHeat()
		}
	case schema.ScoreSort:
		return func(i, j int) bool {
			return items[i].GetScore() > items[j].GetScore()
		}
	case schema.NameSort:
		c := collate.New(language.English)
		return func(i, j int) bool {
			return c.CompareString(items[i].GetName(), items[j].GetName()) < 0
		}
	case schema.DateSort:
		return func(i, j int) bool {
			ti, okI := ParseDate(items[i].GetDate())
			tj, okJ := ParseDate(items[j].GetDate())
			switch {
			case okI && okJ:
				return ti.After(tj)
			case okI:
				return true
			default:
				return false
			}
		}
	default:
		return nil
	}
}
