package model

// Suggestion is a single ranked correction proposal. The shape is shared
// with upstream suggestion providers (e.g. an external grammar model) so a
// caller can merge or prefer either list.
type Suggestion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // final combined score in [0,1]
	Source     string  `json:"source"`     // "engine", "table" or "phonetic"
}

// Suggestion sources. Curated-table hits are exact matches and carry
// maximal edit confidence; phonetic hits come from the Metaphone fallback.
const (
	SourceEngine   = "engine"
	SourceTable    = "table"
	SourcePhonetic = "phonetic"
)

// Candidate is a (word, editDistance) pair produced during generation,
// before context scoring. Distinct candidates are deduplicated by word.
type Candidate struct {
	Word         string
	EditDistance int
	Source       string
}

// ScoredSuggestion carries the individual score components that were
// combined into the final score. Ordering is by descending FinalScore with
// lexicographic tie-breaking for determinism.
type ScoredSuggestion struct {
	Word           string  `json:"word"`
	EditScore      float64 `json:"edit_score"`
	FrequencyScore float64 `json:"frequency_score"`
	ContextScore   float64 `json:"context_score"`
	FinalScore     float64 `json:"final_score"`
	Source         string  `json:"source"`
}
