// Package dictionary builds the compressed shard files consumed by the
// shard store and manages the user's custom word list.
package dictionary

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvalente/go-correction-engine/internal/candidates"
	"github.com/mvalente/go-correction-engine/internal/shardstore"
	"github.com/mvalente/go-correction-engine/internal/tokenizer"
)

// CompileStats summarizes a shard compilation run.
type CompileStats struct {
	Words  int `json:"words"`
	Shards int `json:"shards"`
}

// CompileShards reads a word list (one word per line, optionally followed
// by a frequency count) and writes one <key>.txt.gz file per shard key
// into outDir. Output shards are sorted and deduplicated. Words that match
// a curated misspelling are dropped: they must stay correctable, not be
// treated as valid. progress may be nil.
func CompileShards(sourcePath, outDir string, progress func(current, total int)) (CompileStats, error) {
	file, err := os.Open(sourcePath) // #nosec G304 -- path supplied by the operator, not end users
	if err != nil {
		return CompileStats{}, fmt.Errorf("failed to open word list %s: %w", sourcePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close word list %s: %v", sourcePath, closeErr)
		}
	}()

	byKey := make(map[shardstore.ShardKey]map[string]struct{})
	total := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		word := strings.ToLower(fields[0])
		if !tokenizer.IsAlphabetic(word) {
			continue
		}
		if _, isMisspelling := candidates.MisspellingCorrection(word); isMisspelling {
			continue
		}
		key, ok := shardstore.KeyForWord(word)
		if !ok {
			continue
		}
		if byKey[key] == nil {
			byKey[key] = make(map[string]struct{})
		}
		if _, dup := byKey[key][word]; !dup {
			byKey[key][word] = struct{}{}
			total++
		}
	}
	if err := scanner.Err(); err != nil {
		return CompileStats{}, fmt.Errorf("failed reading word list %s: %w", sourcePath, err)
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return CompileStats{}, fmt.Errorf("failed to create shard directory %s: %w", outDir, err)
	}

	written := 0
	for key, words := range byKey {
		if err := writeShard(filepath.Join(outDir, key.Filename()), words); err != nil {
			return CompileStats{}, err
		}
		written++
		if progress != nil {
			progress(written, len(byKey))
		}
	}

	log.Printf("Compiled %d words into %d shards under %s", total, written, outDir)
	return CompileStats{Words: total, Shards: written}, nil
}

// writeShard writes one sorted, newline-delimited, gzip-compressed shard.
func writeShard(path string, words map[string]struct{}) error {
	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)

	file, err := os.Create(path) // #nosec G304 -- path is derived from a validated shard key
	if err != nil {
		return fmt.Errorf("failed to create shard file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close shard file %s: %v", path, closeErr)
		}
	}()

	gz := gzip.NewWriter(file)
	for _, w := range sorted {
		if _, err := gz.Write([]byte(w + "\n")); err != nil {
			return fmt.Errorf("failed writing shard %s: %w", path, err)
		}
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize shard %s: %w", path, err)
	}
	return nil
}
