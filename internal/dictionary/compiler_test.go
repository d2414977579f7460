package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvalente/go-correction-engine/internal/shardstore"
)

func writeWordList(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(lines), 0600); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}
	return path
}

func TestCompileShards(t *testing.T) {
	source := writeWordList(t, `the 2284983
they 102938
them 88231
apple 5523
banana
a 9999999
`)
	outDir := t.TempDir()

	stats, err := CompileShards(source, outDir, nil)
	if err != nil {
		t.Fatalf("CompileShards failed: %v", err)
	}
	if stats.Words != 6 {
		t.Errorf("compiled %d words, want 6", stats.Words)
	}
	// th, ap, ba, a_
	if stats.Shards != 4 {
		t.Errorf("wrote %d shards, want 4", stats.Shards)
	}

	// The output must round-trip through the shard store.
	store := shardstore.NewStore(outDir, 10)
	ctx := context.Background()
	for _, w := range []string{"the", "they", "them", "apple", "banana", "a"} {
		if !store.Contains(ctx, w) {
			t.Errorf("compiled shards missing word %q", w)
		}
	}
	if store.Contains(ctx, "orange") {
		t.Error("shards contain a word that was never compiled")
	}
}

func TestCompileShardsNormalizesAndFilters(t *testing.T) {
	source := writeWordList(t, `Apple 10
APPLE 5
apple 3
42words
hy-phen
teh 50
`)
	outDir := t.TempDir()

	stats, err := CompileShards(source, outDir, nil)
	if err != nil {
		t.Fatalf("CompileShards failed: %v", err)
	}
	// "Apple"/"APPLE"/"apple" dedupe to one word; "42words" and "hy-phen"
	// are not alphabetic; "teh" is a curated misspelling and stays
	// correctable.
	if stats.Words != 1 {
		t.Errorf("compiled %d words, want 1", stats.Words)
	}

	store := shardstore.NewStore(outDir, 10)
	ctx := context.Background()
	if !store.Contains(ctx, "apple") {
		t.Error("expected normalized 'apple' in shards")
	}
	if store.Contains(ctx, "teh") {
		t.Error("curated misspellings must not be compiled as valid words")
	}
}

func TestCompileShardsProgressCallback(t *testing.T) {
	source := writeWordList(t, "apple\nbanana\ncherry\n")
	outDir := t.TempDir()

	calls := 0
	lastTotal := 0
	_, err := CompileShards(source, outDir, func(current, total int) {
		calls++
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("CompileShards failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("progress called %d times, want once per shard (3)", calls)
	}
	if lastTotal != 3 {
		t.Errorf("progress total = %d, want 3", lastTotal)
	}
}

func TestCompileShardsMissingSource(t *testing.T) {
	if _, err := CompileShards("/nonexistent/words.txt", t.TempDir(), nil); err == nil {
		t.Error("expected error for missing source file")
	}
}
