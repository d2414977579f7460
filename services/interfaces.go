package services

import (
	"context"

	"github.com/mvalente/go-correction-engine/model"
)

// CorrectionRequest is the input consumed from the host UI layer: a
// possibly-misspelled token plus the text that precedes it.
type CorrectionRequest struct {
	Word           string `json:"word"`
	Context        string `json:"context"`
	MaxSuggestions int    `json:"max_suggestions,omitempty"` // Optional: override the configured default
}

// CorrectionResponse carries the ranked suggestion list, best first. An
// empty list means "no suggestion available" (or "already correct") and is
// a valid, non-exceptional outcome.
type CorrectionResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
	Took        int64              `json:"took"`     // milliseconds
	QueryID     string             `json:"query_id"` // unique UUID for this request
}

// Corrector produces ranked correction suggestions for a token in context.
type Corrector interface {
	Suggest(ctx context.Context, req CorrectionRequest) (CorrectionResponse, error)
}

// SentenceLedger consumes sentence lifecycle signals from the host layer.
// The host decides when a sentence boundary occurs; the ledger only reacts.
// Operations against unknown or expired sentence ids are no-ops.
type SentenceLedger interface {
	AddCorrection(sentenceID string, correction model.Correction) bool
	MarkComplete(sentenceID, fullText string) bool
	Revalidate(sentenceID string) (model.SentenceRecord, bool)
	GetSentenceCorrections(sentenceID string) []model.Correction
}

// DictionaryAdmin manages the dictionary data behind the engine: shard
// compilation, n-gram training, and the user's custom word list.
type DictionaryAdmin interface {
	CompileShards(sourcePath string) (string, error) // Returns job ID
	TrainNgrams(corpusPath string) (string, error)   // Returns job ID
	AddCustomWord(ctx context.Context, word string) error
	RemoveCustomWord(ctx context.Context, word string) error
}

// JobManager defines read access to background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
}
