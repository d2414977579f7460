// Package config provides configuration structures for the correction
// engine: cache capacities, scoring weights, and ledger bounds.
package config

import (
	"fmt"
	"math"
	"time"
)

// EngineSettings contains all tunables for the correction engine.
//
// The three scoring weights must sum to 1.0; the defaults follow the
// fixed 0.3/0.3/0.4 edit/frequency/context scheme.
type EngineSettings struct {
	ShardDir          string        `json:"shard_dir"`           // Directory holding <key>.txt.gz shard files
	ShardCacheSize    int           `json:"shard_cache_size"`    // Max shards held in memory simultaneously
	MinTokenLength    int           `json:"min_token_length"`    // Tokens shorter than this are rejected outright
	MaxSuggestions    int           `json:"max_suggestions"`     // Default suggestion list length (callers may override up to 10)
	ContextWindowSize int           `json:"context_window_size"` // Preceding words considered for context scoring
	EditWeight        float64       `json:"edit_weight"`
	FrequencyWeight   float64       `json:"frequency_weight"`
	ContextWeight     float64       `json:"context_weight"`
	EnableDistance2   bool          `json:"enable_distance_2"` // Run the distance-2 pass when distance-1 finds nothing
	MaxCandidates     int           `json:"max_candidates"`    // Budget for the distance-2/phonetic fallback passes
	LedgerMaxAge      time.Duration `json:"ledger_max_age"`    // Sentence records older than this are swept
	LedgerCapacity    int           `json:"ledger_capacity"`   // Max concurrent sentence records
	SweepInterval     time.Duration `json:"sweep_interval"`    // Ledger background sweep period
}

// ApplyDefaults applies default values to unset fields.
func (settings *EngineSettings) ApplyDefaults() {
	if settings.ShardCacheSize == 0 {
		settings.ShardCacheSize = 6
	}
	if settings.MinTokenLength == 0 {
		settings.MinTokenLength = 2
	}
	if settings.MaxSuggestions == 0 {
		settings.MaxSuggestions = 3
	}
	if settings.ContextWindowSize == 0 {
		settings.ContextWindowSize = 10
	}
	if settings.EditWeight == 0 && settings.FrequencyWeight == 0 && settings.ContextWeight == 0 {
		settings.EditWeight = 0.3
		settings.FrequencyWeight = 0.3
		settings.ContextWeight = 0.4
	}
	if settings.MaxCandidates == 0 {
		settings.MaxCandidates = 200
	}
	if settings.LedgerMaxAge == 0 {
		settings.LedgerMaxAge = 5 * time.Minute
	}
	if settings.LedgerCapacity == 0 {
		settings.LedgerCapacity = 100
	}
	if settings.SweepInterval == 0 {
		settings.SweepInterval = 30 * time.Second
	}
}

// Validate checks the settings for inconsistencies and returns a list of
// conflict messages. An empty list means the settings are usable.
func (settings *EngineSettings) Validate() []string {
	var conflicts []string

	if settings.ShardCacheSize < 1 {
		conflicts = append(conflicts, "shard_cache_size must be at least 1")
	}
	if settings.MinTokenLength < 1 {
		conflicts = append(conflicts, "min_token_length must be at least 1")
	}
	if settings.MaxSuggestions < 1 || settings.MaxSuggestions > 10 {
		conflicts = append(conflicts, "max_suggestions must be between 1 and 10")
	}
	if settings.ContextWindowSize < 1 {
		conflicts = append(conflicts, "context_window_size must be at least 1")
	}

	weightSum := settings.EditWeight + settings.FrequencyWeight + settings.ContextWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		conflicts = append(conflicts, fmt.Sprintf("scoring weights must sum to 1.0, got %.3f", weightSum))
	}
	for _, w := range []float64{settings.EditWeight, settings.FrequencyWeight, settings.ContextWeight} {
		if w < 0 {
			conflicts = append(conflicts, "scoring weights must be non-negative")
			break
		}
	}

	if settings.LedgerMaxAge <= 0 {
		conflicts = append(conflicts, "ledger_max_age must be positive")
	}
	if settings.LedgerCapacity < 1 {
		conflicts = append(conflicts, "ledger_capacity must be at least 1")
	}

	return conflicts
}
