package model

import (
	"time"
)

// SentenceState represents the lifecycle state of a sentence record.
type SentenceState string

const (
	SentenceOpen        SentenceState = "open"
	SentenceComplete    SentenceState = "complete"
	SentenceRevalidated SentenceState = "revalidated"
)

// Correction records a single applied correction within a sentence.
type Correction struct {
	OriginalWord string    `json:"original_word"`
	CorrectedTo  string    `json:"corrected_to"`
	Position     int       `json:"position"` // word index within the sentence
	Confidence   float64   `json:"confidence"`
	Timestamp    time.Time `json:"timestamp"`
	Revalidated  bool      `json:"revalidated"`
	StillValid   bool      `json:"still_valid"`
}

// SentenceRecord tracks the corrections applied within one logical
// utterance. Records are exclusively owned by the ledger; callers always
// receive copies.
type SentenceRecord struct {
	SentenceID  string        `json:"sentence_id"`
	Text        string        `json:"text"` // frozen on completion
	Corrections []Correction  `json:"corrections"`
	State       SentenceState `json:"state"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// IsComplete reports whether the sentence has received its boundary signal.
func (r *SentenceRecord) IsComplete() bool {
	return r.State == SentenceComplete || r.State == SentenceRevalidated
}
