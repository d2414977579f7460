// Package ngram trains adjacency statistics from corpus text. The output
// feeds the context model in place of its built-in tables.
package ngram

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/mvalente/go-correction-engine/internal/contextmodel"
	"github.com/mvalente/go-correction-engine/internal/tokenizer"
)

// Trainer accumulates bigram and trigram counts over corpus text.
type Trainer struct {
	minCount int

	bigrams  map[string]map[string]int   // prev -> follower -> count
	trigrams map[string]int              // "a b c" -> count
	words    int
}

// NewTrainer creates a trainer that keeps n-grams seen at least minCount
// times.
func NewTrainer(minCount int) *Trainer {
	if minCount < 1 {
		minCount = 1
	}
	return &Trainer{
		minCount: minCount,
		bigrams:  make(map[string]map[string]int),
		trigrams: make(map[string]int),
	}
}

// AddText tokenizes one document and accumulates its n-gram counts.
func (t *Trainer) AddText(text string) {
	tokens := tokenizer.Tokenize(text)
	for i, token := range tokens {
		t.words++
		if i >= 1 {
			prev := tokens[i-1]
			if t.bigrams[prev] == nil {
				t.bigrams[prev] = make(map[string]int)
			}
			t.bigrams[prev][token]++
		}
		if i >= 2 {
			t.trigrams[tokens[i-2]+" "+tokens[i-1]+" "+token]++
		}
	}
}

// AddFile feeds a corpus file to the trainer line by line.
func (t *Trainer) AddFile(path string) error {
	file, err := os.Open(path) // #nosec G304 -- path supplied by the operator, not end users
	if err != nil {
		return fmt.Errorf("failed to open corpus file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close corpus file %s: %v", path, closeErr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		t.AddText(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading corpus file %s: %w", path, err)
	}
	return nil
}

// Tables filters low-frequency n-grams and converts the counts into
// context model tables. Domain tables are not learned; the built-in
// defaults are carried over so trained models keep domain affinity.
func (t *Trainer) Tables() *contextmodel.Tables {
	defaults := contextmodel.DefaultTables()
	tables := &contextmodel.Tables{
		Bigrams:          make(map[string][]string, len(t.bigrams)),
		Trigrams:         make([]string, 0, len(t.trigrams)),
		DomainKeywords:   defaults.DomainKeywords,
		DomainVocabulary: defaults.DomainVocabulary,
	}

	for prev, followers := range t.bigrams {
		kept := make([]string, 0, len(followers))
		for follower, count := range followers {
			if count >= t.minCount {
				kept = append(kept, follower)
			}
		}
		if len(kept) > 0 {
			sort.Strings(kept)
			tables.Bigrams[prev] = kept
		}
	}

	for phrase, count := range t.trigrams {
		if count >= t.minCount {
			tables.Trigrams = append(tables.Trigrams, phrase)
		}
	}
	sort.Strings(tables.Trigrams)

	log.Printf("Trained context tables: %d words, %d bigram heads, %d trigrams",
		t.words, len(tables.Bigrams), len(tables.Trigrams))
	return tables
}
