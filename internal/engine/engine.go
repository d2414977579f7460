// Package engine wires the shard store, candidate generator, context
// model, ranker, and correction ledger into one correction service.
package engine

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvalente/go-correction-engine/config"
	"github.com/mvalente/go-correction-engine/internal/analytics"
	"github.com/mvalente/go-correction-engine/internal/candidates"
	"github.com/mvalente/go-correction-engine/internal/contextmodel"
	"github.com/mvalente/go-correction-engine/internal/dictionary"
	"github.com/mvalente/go-correction-engine/internal/errors"
	"github.com/mvalente/go-correction-engine/internal/jobs"
	"github.com/mvalente/go-correction-engine/internal/ledger"
	"github.com/mvalente/go-correction-engine/internal/ngram"
	"github.com/mvalente/go-correction-engine/internal/persistence"
	"github.com/mvalente/go-correction-engine/internal/ranker"
	"github.com/mvalente/go-correction-engine/internal/shardstore"
	"github.com/mvalente/go-correction-engine/internal/tokenizer"
	"github.com/mvalente/go-correction-engine/model"
	"github.com/mvalente/go-correction-engine/services"
)

const (
	contextTablesFile = "context_tables.gob"
	maxJobWorkers     = 2
	trainMinCount     = 2

	// suggestionLimitCeiling bounds a caller-specified suggestion count,
	// matching the configurable range of config.EngineSettings.
	suggestionLimitCeiling = 10
)

// Engine implements services.Corrector, services.SentenceLedger, and
// services.DictionaryAdmin. It owns all mutable shared state; callers hold
// only a handle.
type Engine struct {
	settings config.EngineSettings
	dataDir  string

	shards    *shardstore.Store
	generator *candidates.Generator
	ledger    *ledger.Ledger
	jobs      *jobs.Manager
	analytics *analytics.Service

	customDict *dictionary.CustomDict // nil when no redis is configured

	// mu guards the fields swapped at runtime: the compiled context
	// model/ranker (replaced after training) and the custom word
	// snapshot.
	mu          sync.RWMutex
	ranker      *ranker.Ranker
	customWords shardstore.WordSet
}

// NewEngine creates a correction engine. dataDir holds the trained context
// tables; settings.ShardDir holds the dictionary shards. redisClient is
// optional; without it the custom dictionary endpoints report unavailable.
func NewEngine(dataDir string, settings config.EngineSettings, redisClient *redis.Client) *Engine {
	settings.ApplyDefaults()

	eng := &Engine{
		settings:    settings,
		dataDir:     dataDir,
		shards:      shardstore.NewStore(settings.ShardDir, settings.ShardCacheSize),
		ledger:      ledger.New(settings.LedgerMaxAge, settings.LedgerCapacity, settings.SweepInterval),
		jobs:        jobs.NewManager(maxJobWorkers),
		analytics:   analytics.NewService(),
		customWords: shardstore.WordSet{},
	}
	eng.generator = candidates.NewGenerator(eng.shards, settings.MinTokenLength, settings.EnableDistance2, settings.MaxCandidates)
	eng.ranker = ranker.New(contextmodel.New(eng.loadTables()), settings.EditWeight, settings.FrequencyWeight, settings.ContextWeight)

	if redisClient != nil {
		eng.customDict = dictionary.NewCustomDict(redisClient)
		eng.refreshCustomWords()
	}

	eng.ledger.Start()
	eng.jobs.Start()
	return eng
}

// Stop shuts down the background sweep and job workers.
func (e *Engine) Stop() {
	e.ledger.Stop()
	e.jobs.Stop()
}

// loadTables loads trained context tables from disk, falling back to the
// built-in defaults.
func (e *Engine) loadTables() *contextmodel.Tables {
	path := filepath.Join(e.dataDir, contextTablesFile)
	var tables contextmodel.Tables
	if err := persistence.LoadGob(path, &tables); err != nil {
		if err == os.ErrNotExist {
			log.Printf("Info: No trained context tables at %s. Using built-in defaults.", path)
		} else {
			log.Printf("Warning: Failed to load context tables from %s: %v. Using built-in defaults.", path, err)
		}
		return contextmodel.DefaultTables()
	}
	log.Printf("Loaded trained context tables from %s", path)
	return &tables
}

func (e *Engine) refreshCustomWords() {
	words, err := e.customDict.All(context.Background())
	if err != nil {
		log.Printf("Warning: Failed to load custom words: %v. Proceeding without them.", err)
		return
	}
	e.mu.Lock()
	e.customWords = words
	e.mu.Unlock()
}

// Suggest produces the ranked suggestion list for a token in context.
// Invalid input yields an empty list, never an error: "no suggestion" is a
// valid outcome the host must handle anyway.
func (e *Engine) Suggest(ctx context.Context, req services.CorrectionRequest) (services.CorrectionResponse, error) {
	start := time.Now()
	resp := services.CorrectionResponse{
		Suggestions: make([]model.Suggestion, 0),
		QueryID:     uuid.New().String(),
	}

	token := strings.ToLower(strings.TrimSpace(req.Word))
	rejected := len(token) < e.settings.MinTokenLength || !tokenizer.IsAlphabetic(token)

	if !rejected {
		e.mu.RLock()
		rk := e.ranker
		custom := e.customWords
		e.mu.RUnlock()

		limit := req.MaxSuggestions
		if limit <= 0 {
			limit = e.settings.MaxSuggestions
		} else if limit > suggestionLimitCeiling {
			limit = suggestionLimitCeiling
		}

		window := tokenizer.ContextWindow(req.Context, e.settings.ContextWindowSize)
		cands := e.generator.Generate(ctx, token, custom)
		for _, scored := range rk.Rank(cands, window, limit) {
			resp.Suggestions = append(resp.Suggestions, model.Suggestion{
				Text:       restoreCase(req.Word, scored.Word),
				Confidence: clamp01(scored.FinalScore),
				Source:     scored.Source,
			})
		}
	}

	took := time.Since(start)
	resp.Took = took.Milliseconds()
	e.analytics.RecordRequest(token, len(resp.Suggestions), rejected, took)
	return resp, nil
}

// AddCorrection records a correction against a sentence id.
func (e *Engine) AddCorrection(sentenceID string, correction model.Correction) bool {
	return e.ledger.AddCorrection(sentenceID, correction)
}

// MarkComplete freezes a sentence's text on its boundary signal.
func (e *Engine) MarkComplete(sentenceID, fullText string) bool {
	return e.ledger.MarkComplete(sentenceID, fullText)
}

// Revalidate reruns consistency checks for a completed sentence.
func (e *Engine) Revalidate(sentenceID string) (model.SentenceRecord, bool) {
	return e.ledger.Revalidate(sentenceID)
}

// GetSentenceCorrections returns the recorded corrections for a sentence.
func (e *Engine) GetSentenceCorrections(sentenceID string) []model.Correction {
	return e.ledger.GetSentenceCorrections(sentenceID)
}

// CompileShards starts a background job that rebuilds the shard files from
// a word-frequency list and returns the job ID.
func (e *Engine) CompileShards(sourcePath string) (string, error) {
	jobID := e.jobs.CreateJob(model.JobTypeCompileShards, map[string]string{"source": sourcePath})
	err := e.jobs.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		stats, err := dictionary.CompileShards(sourcePath, e.settings.ShardDir, func(current, total int) {
			e.jobs.UpdateJobProgress(job.ID, current, total, "writing shards")
		})
		if err != nil {
			return err
		}
		e.shards.Purge()
		log.Printf("Shard compile job %s: %d words across %d shards", job.ID, stats.Words, stats.Shards)
		return nil
	})
	if err != nil {
		return "", err
	}
	return jobID, nil
}

// TrainNgrams starts a background job that trains context tables from a
// corpus file, persists them, and swaps them in.
func (e *Engine) TrainNgrams(corpusPath string) (string, error) {
	jobID := e.jobs.CreateJob(model.JobTypeTrainNgrams, map[string]string{"corpus": corpusPath})
	err := e.jobs.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		trainer := ngram.NewTrainer(trainMinCount)
		if err := trainer.AddFile(corpusPath); err != nil {
			return err
		}
		tables := trainer.Tables()

		path := filepath.Join(e.dataDir, contextTablesFile)
		if err := persistence.SaveGob(path, tables); err != nil {
			return err
		}

		rk := ranker.New(contextmodel.New(tables),
			e.settings.EditWeight, e.settings.FrequencyWeight, e.settings.ContextWeight)
		e.mu.Lock()
		e.ranker = rk
		e.mu.Unlock()
		return nil
	})
	if err != nil {
		return "", err
	}
	return jobID, nil
}

// AddCustomWord stores a user word and marks it valid immediately.
func (e *Engine) AddCustomWord(ctx context.Context, word string) error {
	if e.customDict == nil {
		return errors.ErrDictionaryUnavailable
	}
	if err := e.customDict.Add(ctx, word); err != nil {
		return err
	}
	e.setCustomWord(strings.ToLower(strings.TrimSpace(word)), true)
	return nil
}

// RemoveCustomWord deletes a user word.
func (e *Engine) RemoveCustomWord(ctx context.Context, word string) error {
	if e.customDict == nil {
		return errors.ErrDictionaryUnavailable
	}
	if err := e.customDict.Remove(ctx, word); err != nil {
		return err
	}
	e.setCustomWord(strings.ToLower(strings.TrimSpace(word)), false)
	return nil
}

// setCustomWord swaps in a copy of the custom word set with word added or
// removed. Suggest holds a reference to the previous set outside the lock,
// so the set currently published must never be mutated in place.
func (e *Engine) setCustomWord(word string, present bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make(shardstore.WordSet, len(e.customWords)+1)
	for w := range e.customWords {
		next[w] = struct{}{}
	}
	if present {
		next[word] = struct{}{}
	} else {
		delete(next, word)
	}
	e.customWords = next
}

// GetJob returns a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobs.GetJob(jobID)
}

// Analytics returns a snapshot of engine statistics.
func (e *Engine) Analytics() analytics.Report {
	return e.analytics.Snapshot(e.shards.Stats(), e.ledger.Len())
}

// restoreCase maps a suggestion back to the original token's casing:
// Title case and ALL CAPS are preserved, everything else stays lowercase.
func restoreCase(original, suggestion string) string {
	if original == "" || suggestion == "" {
		return suggestion
	}
	if original == strings.ToUpper(original) && len(original) > 1 {
		return strings.ToUpper(suggestion)
	}
	first := original[0]
	if first >= 'A' && first <= 'Z' {
		return strings.ToUpper(suggestion[:1]) + suggestion[1:]
	}
	return suggestion
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
