// Package candidates produces bounded sets of plausible corrections for a
// token: distance-1 edits filtered by dictionary membership, curated table
// hits, and (when nothing else matches) distance-2 and phonetic fallbacks.
package candidates

import (
	"context"

	"github.com/antzucaro/matchr"

	"github.com/mvalente/go-correction-engine/internal/editdist"
	"github.com/mvalente/go-correction-engine/internal/shardstore"
	"github.com/mvalente/go-correction-engine/internal/tokenizer"
	"github.com/mvalente/go-correction-engine/model"
)

// Generator enumerates correction candidates for a token against the
// sharded dictionary.
type Generator struct {
	store           *shardstore.Store
	minTokenLength  int
	enableDistance2 bool
	maxCandidates   int
}

// NewGenerator creates a candidate generator backed by the given shard
// store.
func NewGenerator(store *shardstore.Store, minTokenLength int, enableDistance2 bool, maxCandidates int) *Generator {
	if minTokenLength < 1 {
		minTokenLength = 1
	}
	if maxCandidates < 1 {
		maxCandidates = 200
	}
	return &Generator{
		store:           store,
		minTokenLength:  minTokenLength,
		enableDistance2: enableDistance2,
		maxCandidates:   maxCandidates,
	}
}

// universe is the union view over the shard neighborhood of one token plus
// any extra word set (e.g. the user's custom words). Sets are referenced,
// not copied; the shard cache may evict behind us without invalidating it.
type universe struct {
	sets []shardstore.WordSet
}

func (u *universe) contains(word string) bool {
	for _, set := range u.sets {
		if set.Contains(word) {
			return true
		}
	}
	return false
}

// Generate produces the deduplicated candidate set for token. An empty
// result means either "no correction needed" (token is in-dictionary) or
// "no suggestion available"; neither is an error. extra is an optional
// additional word set treated as in-dictionary (may be nil).
func (g *Generator) Generate(ctx context.Context, token string, extra shardstore.WordSet) []model.Candidate {
	if len(token) < g.minTokenLength || !tokenizer.IsAlphabetic(token) {
		return nil
	}

	uni := g.loadUniverse(ctx, token)
	if extra != nil {
		uni.sets = append(uni.sets, extra)
	}

	// Already correct: short-circuit with no candidates.
	if uni.contains(token) {
		return nil
	}

	byWord := make(map[string]model.Candidate)
	keep := func(c model.Candidate) {
		if existing, ok := byWord[c.Word]; ok && existing.EditDistance <= c.EditDistance {
			return
		}
		byWord[c.Word] = c
	}

	// Distance-1 neighborhood intersected with the dictionary.
	for _, edited := range editdist.Edits1(token) {
		if uni.contains(edited) {
			keep(model.Candidate{Word: edited, EditDistance: 1, Source: model.SourceEngine})
		}
	}

	// Curated tables: exact matches, maximal confidence.
	if correction, ok := MisspellingCorrection(token); ok {
		keep(model.Candidate{Word: correction, EditDistance: 0, Source: model.SourceTable})
	}
	if alias, ok := PhoneticAlias(token); ok {
		keep(model.Candidate{Word: alias, EditDistance: 0, Source: model.SourceTable})
	}

	// Expensive fallbacks only when the cheap passes found nothing.
	if len(byWord) == 0 && g.enableDistance2 {
		g.distance2(token, uni, keep)
	}
	if len(byWord) == 0 {
		g.phonetic(token, uni, keep)
	}

	out := make([]model.Candidate, 0, len(byWord))
	for _, c := range byWord {
		out = append(out, c)
	}
	return out
}

// loadUniverse loads the shard-key neighborhood of token. Loads happen one
// shard at a time so a hosting event loop gets natural yield points.
func (g *Generator) loadUniverse(ctx context.Context, token string) *universe {
	keys := shardstore.NeighborKeys(token)
	uni := &universe{sets: make([]shardstore.WordSet, 0, len(keys)+1)}
	for _, key := range keys {
		set := g.store.Load(ctx, key)
		if len(set) > 0 {
			uni.sets = append(uni.sets, set)
		}
	}
	return uni
}

// distance2 applies the distance-1 procedure to each distance-1 string of
// token, bounded by the candidate budget.
func (g *Generator) distance2(token string, uni *universe, keep func(model.Candidate)) {
	found := 0
	seen := make(map[string]struct{})
	for _, once := range editdist.Edits1(token) {
		for _, twice := range editdist.Edits1(once) {
			if twice == token {
				continue
			}
			if _, dup := seen[twice]; dup {
				continue
			}
			seen[twice] = struct{}{}
			if uni.contains(twice) {
				keep(model.Candidate{Word: twice, EditDistance: 2, Source: model.SourceEngine})
				found++
				if found >= g.maxCandidates {
					return
				}
			}
		}
	}
}

// phonetic scans the loaded neighborhood for words sharing a Double
// Metaphone code with the token. These are last-resort candidates and are
// scored as distance 2.
func (g *Generator) phonetic(token string, uni *universe, keep func(model.Candidate)) {
	primary, secondary := matchr.DoubleMetaphone(token)
	if primary == "" && secondary == "" {
		return
	}

	found := 0
	for _, set := range uni.sets {
		for word := range set {
			if word == token {
				continue
			}
			p, s := matchr.DoubleMetaphone(word)
			if (primary != "" && (p == primary || s == primary)) ||
				(secondary != "" && (p == secondary || s == secondary)) {
				keep(model.Candidate{Word: word, EditDistance: 2, Source: model.SourcePhonetic})
				found++
				if found >= g.maxCandidates {
					return
				}
			}
		}
	}
}
