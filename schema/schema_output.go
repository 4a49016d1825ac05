package schema

// EnrichedModelItem adds presentation data to a ModelIndexItem.
type EnrichedModelItem struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ModelIndexItem
}

// EnrichedParticipation adds presentation data to a ParticipatedBenchmark.
type EnrichedParticipation struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ParticipatedBenchmark
}

// GetPlainLabel returns a plain text tier label for a score on the 0-100 scale.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return "Elite"
	case score >= 60:
		return "Strong"
	case score >= 40:
		return "Fair"
	default:
		return "Weak"
	}
}

// EnrichModels adds rank and label to a page of model items. Rank continues
// across pages through offset.
func EnrichModels(items []ModelIndexItem, offset int) []EnrichedModelItem {
	output := make([]EnrichedModelItem, len(items))
	for i, m := range items {
		output[i] = EnrichedModelItem{
			Rank:           offset + i + 1,
			Label:          GetPlainLabel(float64(m.AverageScore)),
			ModelIndexItem: m,
		}
	}
	return output
}

// EnrichParticipations adds rank and label to a model's benchmark scores.
func EnrichParticipations(items []ParticipatedBenchmark) []EnrichedParticipation {
	output := make([]EnrichedParticipation, len(items))
	for i, p := range items {
		output[i] = EnrichedParticipation{
			Rank:                  i + 1,
			Label:                 GetPlainLabel(p.Score),
			ParticipatedBenchmark: p,
		}
	}
	return output
}
