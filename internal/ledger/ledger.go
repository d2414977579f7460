// Package ledger keeps a short-lived, bounded record of corrections
// applied within logical sentences, so they can be re-validated once the
// full sentence text is known.
package ledger

import (
	"log"
	"sync"
	"time"

	"github.com/mvalente/go-correction-engine/internal/tokenizer"
	"github.com/mvalente/go-correction-engine/model"
)

// Ledger owns all sentence records exclusively; callers only ever receive
// copies. Updates to different sentence ids may run concurrently; updates
// to the same id are serialized by the ledger lock.
type Ledger struct {
	mu      sync.Mutex
	records map[string]*model.SentenceRecord

	maxAge        time.Duration
	capacity      int
	sweepInterval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup

	now func() time.Time // injectable for tests
}

// New creates a ledger bounded by maxAge and capacity.
func New(maxAge time.Duration, capacity int, sweepInterval time.Duration) *Ledger {
	if capacity < 1 {
		capacity = 1
	}
	return &Ledger{
		records:       make(map[string]*model.SentenceRecord),
		maxAge:        maxAge,
		capacity:      capacity,
		sweepInterval: sweepInterval,
		stopChan:      make(chan struct{}),
		now:           time.Now,
	}
}

// Start begins the background expiry sweep.
func (l *Ledger) Start() {
	l.wg.Add(1)
	go l.sweepRoutine()
}

// Stop halts the background sweep and waits for it to exit.
func (l *Ledger) Stop() {
	close(l.stopChan)
	l.wg.Wait()
}

func (l *Ledger) sweepRoutine() {
	defer l.wg.Done()
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				log.Printf("Ledger sweep removed %d expired sentence records", removed)
			}
		case <-l.stopChan:
			return
		}
	}
}

// AddCorrection records a correction against a sentence, creating the
// record on the first correction for that id. It reports whether the
// correction was stored: records that have already been revalidated no
// longer accept corrections, and expired records behave as if the id were
// fresh.
func (l *Ledger) AddCorrection(sentenceID string, correction model.Correction) bool {
	if sentenceID == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.live(sentenceID)
	if rec == nil {
		l.evictOverCapacityLocked()
		rec = &model.SentenceRecord{
			SentenceID:  sentenceID,
			State:       model.SentenceOpen,
			CreatedAt:   l.now(),
			Corrections: make([]model.Correction, 0, 4),
		}
		l.records[sentenceID] = rec
	}

	if rec.State == model.SentenceRevalidated {
		return false
	}

	if correction.Timestamp.IsZero() {
		correction.Timestamp = l.now()
	}
	correction.StillValid = true
	rec.Corrections = append(rec.Corrections, correction)
	return true
}

// MarkComplete freezes the sentence text and transitions the record from
// Open to Complete. Unknown, expired, or already-completed records are a
// no-op.
func (l *Ledger) MarkComplete(sentenceID, fullText string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.live(sentenceID)
	if rec == nil || rec.State != model.SentenceOpen {
		return false
	}

	rec.Text = fullText
	rec.State = model.SentenceComplete
	completedAt := l.now()
	rec.CompletedAt = &completedAt
	return true
}

// Revalidate reruns lightweight pattern checks against the frozen sentence
// text and flags corrections whose neighborhood no longer supports them.
// Text is never reverted here; reversal is left to the caller. The pass is
// idempotent: a second call on an already-revalidated record returns the
// same result without re-running checks. Records not yet Complete (or
// unknown/expired) return ok=false.
func (l *Ledger) Revalidate(sentenceID string) (model.SentenceRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.live(sentenceID)
	if rec == nil || rec.State == model.SentenceOpen {
		return model.SentenceRecord{}, false
	}
	if rec.State == model.SentenceRevalidated {
		return copyRecord(rec), true
	}

	words := tokenizer.Tokenize(rec.Text)
	for i := range rec.Corrections {
		rec.Corrections[i].Revalidated = true
		rec.Corrections[i].StillValid = supportedByText(&rec.Corrections[i], words)
	}
	rec.State = model.SentenceRevalidated
	return copyRecord(rec), true
}

// GetSentenceCorrections returns copies of the corrections recorded for a
// sentence. Unknown or expired ids yield an empty slice.
func (l *Ledger) GetSentenceCorrections(sentenceID string) []model.Correction {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.live(sentenceID)
	if rec == nil {
		return []model.Correction{}
	}
	out := make([]model.Correction, len(rec.Corrections))
	copy(out, rec.Corrections)
	return out
}

// Sweep deletes records older than the configured max age regardless of
// state, bounding memory under pathological input. It returns the number
// of records removed.
func (l *Ledger) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.maxAge)
	removed := 0
	for id, rec := range l.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(l.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sentence records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// live returns the record for id if present and not expired, expiring it
// lazily otherwise. Callers must hold the lock.
func (l *Ledger) live(sentenceID string) *model.SentenceRecord {
	rec, ok := l.records[sentenceID]
	if !ok {
		return nil
	}
	if l.now().Sub(rec.CreatedAt) > l.maxAge {
		delete(l.records, sentenceID)
		return nil
	}
	return rec
}

// evictOverCapacityLocked makes room for one new record by removing the
// oldest records while at capacity. Callers must hold the lock.
func (l *Ledger) evictOverCapacityLocked() {
	for len(l.records) >= l.capacity {
		oldestID := ""
		var oldestAt time.Time
		for id, rec := range l.records {
			if oldestID == "" || rec.CreatedAt.Before(oldestAt) {
				oldestID = id
				oldestAt = rec.CreatedAt
			}
		}
		if oldestID == "" {
			return
		}
		delete(l.records, oldestID)
	}
}

// supportedByText checks whether a correction's neighborhood in the frozen
// text still supports it: the corrected word must appear at or adjacent to
// its recorded position.
func supportedByText(c *model.Correction, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for offset := -1; offset <= 1; offset++ {
		idx := c.Position + offset
		if idx >= 0 && idx < len(words) && words[idx] == c.CorrectedTo {
			return true
		}
	}
	return false
}

func copyRecord(rec *model.SentenceRecord) model.SentenceRecord {
	out := *rec
	out.Corrections = make([]model.Correction, len(rec.Corrections))
	copy(out.Corrections, rec.Corrections)
	if rec.CompletedAt != nil {
		completedAt := *rec.CompletedAt
		out.CompletedAt = &completedAt
	}
	return out
}
