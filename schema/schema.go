// Package schema has records, derived results and global variables for all parts of benchboard.
package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ScoreEntry is one (model, score) pair inside a benchmark snapshot.
// A score that cannot be read as a finite number decodes to NaN and is
// treated as absent everywhere.
type ScoreEntry struct {
	ModelRef string  `json:"modelRef"`
	Score    float64 `json:"score"`
}

// Valid reports whether the entry references a model and carries a finite score.
func (e ScoreEntry) Valid() bool {
	return e.ModelRef != "" && !math.IsNaN(e.Score) && !math.IsInf(e.Score, 0)
}

// UnmarshalJSON decodes a snapshot entry without failing on odd values.
// References may be plain strings or objects carrying an "id" field; scores may
// be numbers or numeric strings.
func (e *ScoreEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ModelRef json.RawMessage `json:"modelRef"`
		Score    json.RawMessage `json:"score"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ModelRef = decodeRef(raw.ModelRef)
	e.Score = decodeScore(raw.Score)
	return nil
}

// MarshalJSON writes non-finite scores as null so the output stays valid JSON.
func (e ScoreEntry) MarshalJSON() ([]byte, error) {
	var score any = e.Score
	if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
		score = nil
	}
	return json.Marshal(struct {
		ModelRef string `json:"modelRef"`
		Score    any    `json:"score"`
	}{e.ModelRef, score})
}

func decodeRef(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.ID)
	}
	return ""
}

func decodeScore(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return math.NaN()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return math.NaN()
}

// Metrics describes how a benchmark is measured.
type Metrics struct {
	Unit           string `json:"unit"`
	IsBetterHigher bool   `json:"isBetterHigher"`
}

// Trending carries the popularity counters of a benchmark.
type Trending struct {
	Views         float64 `json:"views"`
	InitialWeight float64 `json:"initialWeight"`
}

// BenchmarkRecord is a single benchmark as supplied by the record store.
type BenchmarkRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	FullName    string       `json:"fullName,omitempty"`
	Publisher   string       `json:"publisher"`
	Description string       `json:"description"`
	Link        string       `json:"link"`
	Tags        []string     `json:"tags"`
	LastUpdated string       `json:"lastUpdated"`
	Metrics     Metrics      `json:"metrics"`
	Snapshot    []ScoreEntry `json:"snapshot"`
	Trending    *Trending    `json:"trending,omitempty"`
	IsFromAA    bool         `json:"isFromAA,omitempty"`
	AALink      string       `json:"AALink,omitempty"`
}

// HeatScore is views plus initial weight; missing counters count as zero.
func (b BenchmarkRecord) HeatScore() float64 {
	if b.Trending == nil {
		return 0
	}
	return finiteOrZero(b.Trending.Views) + finiteOrZero(b.Trending.InitialWeight)
}

// HasTag reports whether the benchmark is labeled with the tag.
func (b BenchmarkRecord) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoreFor returns the first valid score the benchmark holds for the model.
func (b BenchmarkRecord) ScoreFor(modelID string) (float64, bool) {
	for _, e := range b.Snapshot {
		if e.Valid() && e.ModelRef == modelID {
			return e.Score, true
		}
	}
	return 0, false
}

// GetName returns the benchmark name.
func (b BenchmarkRecord) GetName() string { return b.Name }

// GetPublisher returns the benchmark publisher.
func (b BenchmarkRecord) GetPublisher() string { return b.Publisher }

// GetTags returns the benchmark tags.
func (b BenchmarkRecord) GetTags() []string { return b.Tags }

// GetDate returns the last update date string.
func (b BenchmarkRecord) GetDate() string { return b.LastUpdated }

// GetHeat returns the trending heat score.
func (b BenchmarkRecord) GetHeat() float64 { return b.HeatScore() }

// GetScore returns zero; benchmarks do not carry an average.
func (b BenchmarkRecord) GetScore() float64 { return 0 }

// ModelRecord is a single model as supplied by the record store.
type ModelRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Publisher    string `json:"publisher"`
	ReleaseDate  string `json:"releaseDate,omitempty"`
	Params       string `json:"params,omitempty"`
	License      string `json:"license,omitempty"`
	Website      string `json:"website,omitempty"`
	DiscussionID string `json:"discussionId,omitempty"`
}

// PublisherRecord is a single publisher as supplied by the record store.
type PublisherRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Logo    string `json:"logo"`
	Website string `json:"website,omitempty"`
}

// Snapshot is an immutable, consistent view over all loaded records.
type Snapshot struct {
	Benchmarks  []BenchmarkRecord `json:"benchmarks"`
	Models      []ModelRecord     `json:"models"`
	Publishers  []PublisherRecord `json:"publishers"`
	Source      string            `json:"source"`
	Fingerprint string            `json:"fingerprint"`
	LoadedAt    time.Time         `json:"loaded_at"`
}

// ModelByID returns the model with the given id.
func (s *Snapshot) ModelByID(id string) (ModelRecord, bool) {
	for _, m := range s.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelRecord{}, false
}

// BenchmarkByID returns the benchmark with the given id.
func (s *Snapshot) BenchmarkByID(id string) (BenchmarkRecord, bool) {
	for _, b := range s.Benchmarks {
		if b.ID == id {
			return b, true
		}
	}
	return BenchmarkRecord{}, false
}

// PublisherInfo resolves color and logo for a publisher name. Publisher
// records in the snapshot take precedence over the built-in registry.
func (s *Snapshot) PublisherInfo(name string) PublisherInfo {
	for _, p := range s.Publishers {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ID, name) {
			info := LookupPublisher(name)
			if p.Color != "" {
				info.Color = p.Color
			}
			if p.Logo != "" {
				info.Logo = p.Logo
			}
			return info
		}
	}
	return LookupPublisher(name)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
