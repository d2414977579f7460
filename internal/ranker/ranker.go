// Package ranker combines edit distance, frequency tier, and context fit
// into a single ordered suggestion list.
package ranker

import (
	"sort"

	"github.com/mvalente/go-correction-engine/internal/contextmodel"
	"github.com/mvalente/go-correction-engine/model"
)

// Ranker scores and orders candidates. Given identical candidates,
// context, and tables the output is deterministic: descending final score
// with lexicographic tie-breaking.
type Ranker struct {
	contextModel    *contextmodel.Model
	editWeight      float64
	frequencyWeight float64
	contextWeight   float64
}

// New creates a ranker over the given context model and scoring weights.
func New(cm *contextmodel.Model, editWeight, frequencyWeight, contextWeight float64) *Ranker {
	return &Ranker{
		contextModel:    cm,
		editWeight:      editWeight,
		frequencyWeight: frequencyWeight,
		contextWeight:   contextWeight,
	}
}

// Rank orders candidates best-first and truncates to limit. An empty
// candidate set yields an empty (non-nil) list: "no suggestion available"
// is a valid outcome, not an error.
func (r *Ranker) Rank(candidates []model.Candidate, window []string, limit int) []model.ScoredSuggestion {
	scored := make([]model.ScoredSuggestion, 0, len(candidates))
	for _, c := range candidates {
		editScore := 1.0 / float64(c.EditDistance+1)
		frequencyScore := clamp01(FrequencyTier(c.Word) / normalizingConstant)
		contextScore := r.contextModel.Score(c.Word, window)

		scored = append(scored, model.ScoredSuggestion{
			Word:           c.Word,
			EditScore:      editScore,
			FrequencyScore: frequencyScore,
			ContextScore:   contextScore,
			FinalScore:     r.editWeight*editScore + r.frequencyWeight*frequencyScore + r.contextWeight*contextScore,
			Source:         c.Source,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		return scored[i].Word < scored[j].Word
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
