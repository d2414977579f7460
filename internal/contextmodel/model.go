// Package contextmodel scores how well a candidate word fits its local
// textual context using static adjacency, phrase, and domain tables. The
// model is purely table-driven: it performs no learning and holds no
// mutable state after construction.
package contextmodel

import (
	"sort"
	"strings"
)

// Signal weights. Signals are independent and additive; the total is
// clamped to 1.0.
const (
	adjacencyWeight     = 0.5
	trigramWeight       = 0.4
	trigramPrefixWeight = 0.2
	domainWeight        = 0.3
	repetitionWeight    = 0.2
)

// Model is the compiled, read-only form of Tables.
type Model struct {
	bigrams     map[string]map[string]struct{}
	trigramSet  map[string]struct{}
	trigrams    []string // sorted, for prefix scanning
	domainHints map[string]map[string]struct{}
	domainVocab map[string]map[string]struct{}
}

// New compiles tables into a Model. Nil tables compile to an empty model
// that scores everything 0.
func New(tables *Tables) *Model {
	m := &Model{
		bigrams:     make(map[string]map[string]struct{}),
		trigramSet:  make(map[string]struct{}),
		domainHints: make(map[string]map[string]struct{}),
		domainVocab: make(map[string]map[string]struct{}),
	}
	if tables == nil {
		return m
	}

	for prev, followers := range tables.Bigrams {
		set := make(map[string]struct{}, len(followers))
		for _, f := range followers {
			set[f] = struct{}{}
		}
		m.bigrams[prev] = set
	}

	m.trigrams = make([]string, 0, len(tables.Trigrams))
	for _, phrase := range tables.Trigrams {
		m.trigramSet[phrase] = struct{}{}
		m.trigrams = append(m.trigrams, phrase)
	}
	sort.Strings(m.trigrams)

	for domain, words := range tables.DomainKeywords {
		m.domainHints[domain] = toSet(words)
	}
	for domain, words := range tables.DomainVocabulary {
		m.domainVocab[domain] = toSet(words)
	}
	return m
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Score returns the context fit of candidate given the preceding words,
// as a value in [0, 1].
func (m *Model) Score(candidate string, window []string) float64 {
	score := 0.0

	// Adjacency: the immediately preceding word commonly precedes the
	// candidate.
	if len(window) > 0 {
		prev := window[len(window)-1]
		if followers, ok := m.bigrams[prev]; ok {
			if _, ok := followers[candidate]; ok {
				score += adjacencyWeight
			}
		}
	}

	// Local pattern: the last two context words plus the candidate form a
	// known phrase, or the prefix of one.
	if len(window) >= 2 {
		phrase := window[len(window)-2] + " " + window[len(window)-1] + " " + candidate
		if _, ok := m.trigramSet[phrase]; ok {
			score += trigramWeight
		} else if m.hasTrigramPrefix(phrase) {
			score += trigramPrefixWeight
		}
	}

	// Domain affinity: the candidate belongs to the vocabulary of the
	// window's classified domain.
	domain := m.Classify(window)
	if domain != DomainGeneral {
		if vocab, ok := m.domainVocab[domain]; ok {
			if _, ok := vocab[candidate]; ok {
				score += domainWeight
			}
		}
	}

	// Repetition: repeated terms are common in coherent prose.
	for _, w := range window {
		if w == candidate {
			score += repetitionWeight
			break
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// hasTrigramPrefix reports whether any known phrase starts with the built
// three-word phrase.
func (m *Model) hasTrigramPrefix(phrase string) bool {
	i := sort.SearchStrings(m.trigrams, phrase)
	return i < len(m.trigrams) && strings.HasPrefix(m.trigrams[i], phrase)
}

// Classify assigns the context window to one of the fixed domains by
// counting keyword hits. Ties resolve by precedence order; zero hits
// yields DomainGeneral.
func (m *Model) Classify(window []string) string {
	counts := make(map[string]int, len(domainPrecedence))
	for _, w := range window {
		for domain, hints := range m.domainHints {
			if _, ok := hints[w]; ok {
				counts[domain]++
			}
		}
	}

	best := DomainGeneral
	bestCount := 0
	for _, domain := range domainPrecedence {
		if counts[domain] > bestCount {
			best = domain
			bestCount = counts[domain]
		}
	}
	return best
}
