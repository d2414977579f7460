// Package analytics tracks correction request statistics for the
// /analytics endpoint.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/mvalente/go-correction-engine/internal/shardstore"
)

const maxTrackedTokens = 1000

// Service accumulates request counters. All methods are safe for
// concurrent use.
type Service struct {
	mu             sync.Mutex
	totalRequests  int64
	rejectedInputs int64
	emptyResults   int64
	totalLatency   time.Duration
	corrected      map[string]int64 // token -> times it produced suggestions
}

// NewService creates an empty analytics service.
func NewService() *Service {
	return &Service{corrected: make(map[string]int64)}
}

// RecordRequest records the outcome of one correction request. rejected
// means the input failed validation (too short, non-alphabetic).
func (s *Service) RecordRequest(token string, suggestions int, rejected bool, took time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRequests++
	s.totalLatency += took
	switch {
	case rejected:
		s.rejectedInputs++
	case suggestions == 0:
		s.emptyResults++
	default:
		if len(s.corrected) < maxTrackedTokens {
			s.corrected[token]++
		} else if _, tracked := s.corrected[token]; tracked {
			s.corrected[token]++
		}
	}
}

// TokenCount is one entry of the most-corrected-tokens list.
type TokenCount struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// Report is a point-in-time snapshot of engine statistics.
type Report struct {
	TotalRequests   int64            `json:"total_requests"`
	RejectedInputs  int64            `json:"rejected_inputs"`
	EmptyResults    int64            `json:"empty_results"`
	AvgLatencyMs    float64          `json:"avg_latency_ms"`
	ShardCache      shardstore.Stats `json:"shard_cache"`
	ShardHitRate    float64          `json:"shard_hit_rate"`
	ActiveSentences int              `json:"active_sentences"`
	TopCorrected    []TokenCount     `json:"top_corrected"`
}

// Snapshot builds a report, folding in the shard cache counters and the
// current ledger size.
func (s *Service) Snapshot(shardStats shardstore.Stats, activeSentences int) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := Report{
		TotalRequests:   s.totalRequests,
		RejectedInputs:  s.rejectedInputs,
		EmptyResults:    s.emptyResults,
		ShardCache:      shardStats,
		ActiveSentences: activeSentences,
	}
	if s.totalRequests > 0 {
		// Microsecond resolution so sub-millisecond requests still register.
		report.AvgLatencyMs = float64(s.totalLatency.Microseconds()) / 1000.0 / float64(s.totalRequests)
	}
	if lookups := shardStats.Hits + shardStats.Misses; lookups > 0 {
		report.ShardHitRate = float64(shardStats.Hits) / float64(lookups)
	}

	report.TopCorrected = make([]TokenCount, 0, len(s.corrected))
	for token, count := range s.corrected {
		report.TopCorrected = append(report.TopCorrected, TokenCount{Token: token, Count: count})
	}
	sort.Slice(report.TopCorrected, func(i, j int) bool {
		if report.TopCorrected[i].Count != report.TopCorrected[j].Count {
			return report.TopCorrected[i].Count > report.TopCorrected[j].Count
		}
		return report.TopCorrected[i].Token < report.TopCorrected[j].Token
	})
	if len(report.TopCorrected) > 10 {
		report.TopCorrected = report.TopCorrected[:10]
	}
	return report
}
