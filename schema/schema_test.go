package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEntryUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRef   string
		wantScore float64
		wantValid bool
	}{
		{"number", `{"modelRef":"gpt-4o","score":88.5}`, "gpt-4o", 88.5, true},
		{"numeric string", `{"modelRef":"gpt-4o","score":" 71.25 "}`, "gpt-4o", 71.25, true},
		{"object ref", `{"modelRef":{"id":"openai/gpt-5","collection":"models"},"score":90}`, "openai/gpt-5", 90, true},
		{"garbage score", `{"modelRef":"gpt-4o","score":"n/a"}`, "gpt-4o", math.NaN(), false},
		{"null score", `{"modelRef":"gpt-4o","score":null}`, "gpt-4o", math.NaN(), false},
		{"missing ref", `{"score":50}`, "", 50, false},
		{"numeric ref", `{"modelRef":42,"score":50}`, "", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ScoreEntry
			require.NoError(t, json.Unmarshal([]byte(tt.input), &e))
			assert.Equal(t, tt.wantRef, e.ModelRef)
			if math.IsNaN(tt.wantScore) {
				assert.True(t, math.IsNaN(e.Score))
			} else {
				assert.Equal(t, tt.wantScore, e.Score)
			}
			assert.Equal(t, tt.wantValid, e.Valid())
		})
	}
}

func TestScoreEntryMarshalNonFinite(t *testing.T) {
	data, err := json.Marshal(ScoreEntry{ModelRef: "m", Score: math.NaN()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"modelRef":"m","score":null}`, string(data))
}

func TestBenchmarkRecordHelpers(t *testing.T) {
	b := BenchmarkRecord{
		Tags:     []string{"Coding", "Reasoning"},
		Trending: &Trending{Views: 120, InitialWeight: 30},
		Snapshot: []ScoreEntry{
			{ModelRef: "a", Score: math.NaN()},
			{ModelRef: "a", Score: 40},
			{ModelRef: "a", Score: 99},
		},
	}
	assert.Equal(t, 150.0, b.HeatScore())
	assert.True(t, b.HasTag("Coding"))
	assert.False(t, b.HasTag("coding"))

	score, ok := b.ScoreFor("a")
	assert.True(t, ok)
	assert.Equal(t, 40.0, score)

	_, ok = b.ScoreFor("missing")
	assert.False(t, ok)

	assert.Equal(t, 0.0, BenchmarkRecord{}.HeatScore())
}

func TestLookupPublisher(t *testing.T) {
	assert.Equal(t, "#cc785c", LookupPublisher("Anthropic").Color)
	assert.Equal(t, "/logos/openai.svg", LookupPublisher("openai").Logo)
	assert.Equal(t, DefaultPublisher, LookupPublisher("Unknown Lab"))
}

func TestSnapshotPublisherInfoOverride(t *testing.T) {
	snap := &Snapshot{Publishers: []PublisherRecord{{ID: "acme", Name: "Acme", Color: "#123456"}}}
	info := snap.PublisherInfo("Acme")
	assert.Equal(t, "#123456", info.Color)
	assert.Equal(t, DefaultPublisher.Logo, info.Logo)
	assert.Equal(t, LookupPublisher("Google"), snap.PublisherInfo("Google"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "humanity-s-last-exam", Slugify("Humanity's Last Exam"))
	assert.Equal(t, "swe-bench-verified", Slugify("  SWE-bench (Verified) "))
	assert.Equal(t, "", Slugify("---"))
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, 87.34, NormalizeScore(0.8734))
	assert.Equal(t, 50.0, NormalizeScore(0.5))
	assert.Equal(t, 100.0, NormalizeScore(1.0))
	assert.True(t, math.IsNaN(NormalizeScore(math.NaN())))
}

func TestNormalizeSnapshot(t *testing.T) {
	frac := []ScoreEntry{{ModelRef: "a", Score: 0.91}, {ModelRef: "b", Score: math.NaN()}, {ModelRef: "c", Score: 0.2}}
	NormalizeSnapshot(frac)
	assert.Equal(t, 91.0, frac[0].Score)
	assert.True(t, math.IsNaN(frac[1].Score))
	assert.Equal(t, 20.0, frac[2].Score)

	mixed := []ScoreEntry{{ModelRef: "a", Score: 87.3}, {ModelRef: "b", Score: 0.8}}
	NormalizeSnapshot(mixed)
	assert.Equal(t, 87.3, mixed[0].Score)
	assert.Equal(t, 0.8, mixed[1].Score)

	empty := []ScoreEntry{{ModelRef: "a", Score: math.NaN()}}
	NormalizeSnapshot(empty)
	assert.True(t, math.IsNaN(empty[0].Score))
}

func TestScoreEntryNullSurvivesRoundTrip(t *testing.T) {
	data, err := json.Marshal([]ScoreEntry{{ModelRef: "m", Score: math.NaN()}, {ModelRef: "n", Score: 0}})
	require.NoError(t, err)

	var back []ScoreEntry
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.False(t, back[0].Valid(), "null decodes as absent, not zero")
	assert.True(t, back[1].Valid())
	assert.Equal(t, 0.0, back[1].Score)
}

func TestRoundMean(t *testing.T) {
	assert.Equal(t, 0, RoundMean(0, 0))
	assert.Equal(t, 3, RoundMean(5, 2))
	assert.Equal(t, -3, RoundMean(-5, 2))
	assert.Equal(t, 71, RoundMean(142.8, 2))
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Elite", GetPlainLabel(80))
	assert.Equal(t, "Strong", GetPlainLabel(79.9))
	assert.Equal(t, "Fair", GetPlainLabel(40))
	assert.Equal(t, "Weak", GetPlainLabel(0))
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"Coding", "Math"}, UniqueSorted([]string{"Math", "", "Coding", "Math"}))
	assert.Empty(t, UniqueSorted(nil))
	assert.NotNil(t, UniqueSorted(nil))
}

func TestIsAxisCategory(t *testing.T) {
	assert.Len(t, CategoryAxis, 6)
	assert.True(t, IsAxisCategory("Long-Context"))
	assert.False(t, IsAxisCategory("Math"))
}
