package shardstore

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// writeTestShard writes a gzip shard file for key into dir.
func writeTestShard(t *testing.T, dir string, key ShardKey, words []string) {
	t.Helper()
	file, err := os.Create(filepath.Join(dir, key.Filename()))
	if err != nil {
		t.Fatalf("failed to create shard file: %v", err)
	}
	gz := gzip.NewWriter(file)
	for _, w := range words {
		if _, err := gz.Write([]byte(w + "\n")); err != nil {
			t.Fatalf("failed to write shard: %v", err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close shard file: %v", err)
	}
}

func mustKey(t *testing.T, word string) ShardKey {
	t.Helper()
	key, ok := KeyForWord(word)
	if !ok {
		t.Fatalf("no key for word %q", word)
	}
	return key
}

func TestLoadAndContains(t *testing.T) {
	dir := t.TempDir()
	key := mustKey(t, "the")
	writeTestShard(t, dir, key, []string{"the", "they", "them", "theory"})

	store := NewStore(dir, 4)
	ctx := context.Background()

	words := store.Load(ctx, key)
	if len(words) != 4 {
		t.Errorf("loaded %d words, want 4", len(words))
	}
	if !words.Contains("theory") {
		t.Error("expected shard to contain 'theory'")
	}
	if words.Contains("banana") {
		t.Error("did not expect shard to contain 'banana'")
	}

	if !store.Contains(ctx, "them") {
		t.Error("Contains should resolve 'them' through its home shard")
	}
	if store.Contains(ctx, "Them") {
		t.Error("Contains should reject non-normalized input")
	}
}

func TestMissingShardYieldsEmptySet(t *testing.T) {
	store := NewStore(t.TempDir(), 2)
	words := store.Load(context.Background(), mustKey(t, "zz"))
	if len(words) != 0 {
		t.Errorf("missing shard should load as empty set, got %d words", len(words))
	}
}

func TestCorruptShardYieldsEmptySet(t *testing.T) {
	dir := t.TempDir()
	key := mustKey(t, "ab")
	if err := os.WriteFile(filepath.Join(dir, key.Filename()), []byte("not gzip data"), 0600); err != nil {
		t.Fatalf("failed to write corrupt shard: %v", err)
	}

	store := NewStore(dir, 2)
	words := store.Load(context.Background(), key)
	if len(words) != 0 {
		t.Errorf("corrupt shard should load as empty set, got %d words", len(words))
	}
}

func TestCacheEvictionRespectsCapacity(t *testing.T) {
	dir := t.TempDir()
	keys := []ShardKey{}
	for _, w := range []string{"aa", "bb", "cc", "dd"} {
		key := mustKey(t, w)
		writeTestShard(t, dir, key, []string{w})
		keys = append(keys, key)
	}

	store := NewStore(dir, 2)
	ctx := context.Background()
	for _, key := range keys {
		store.Load(ctx, key)
	}

	stats := store.Stats()
	if stats.Loaded != 2 {
		t.Errorf("cache holds %d shards, want at most capacity 2", stats.Loaded)
	}
	if stats.Misses != 4 {
		t.Errorf("expected 4 misses, got %d", stats.Misses)
	}
}

func TestCacheHitPromotesRecency(t *testing.T) {
	dir := t.TempDir()
	aa := mustKey(t, "aa")
	bb := mustKey(t, "bb")
	cc := mustKey(t, "cc")
	for _, k := range []ShardKey{aa, bb, cc} {
		writeTestShard(t, dir, k, []string{k.String()})
	}

	store := NewStore(dir, 2)
	ctx := context.Background()

	store.Load(ctx, aa)
	store.Load(ctx, bb)
	store.Load(ctx, aa) // promote aa over bb
	store.Load(ctx, cc) // evicts bb, not aa

	stats := store.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}

	// aa must still be cached: loading it again is a hit.
	store.Load(ctx, aa)
	if got := store.Stats().Hits; got != 2 {
		t.Errorf("aa was evicted despite being most recently used (hits = %d)", got)
	}
}

func TestConcurrentLoadsCoalesce(t *testing.T) {
	key := mustKey(t, "go")
	store := NewStore(t.TempDir(), 2)

	// Hold the first read open on a gate so every concurrent Load joins the
	// in-flight one, then count how many reads actually ran.
	gate := make(chan struct{})
	var reads int32
	store.read = func(ShardKey) WordSet {
		atomic.AddInt32(&reads, 1)
		<-gate
		return WordSet{"go": {}, "golang": {}}
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			words := store.Load(ctx, key)
			if !words.Contains("golang") {
				t.Error("concurrent load returned incomplete shard")
			}
		}()
	}

	// Let all 16 goroutines reach the in-flight load before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if got := atomic.LoadInt32(&reads); got != 1 {
		t.Errorf("16 concurrent loads performed %d reads, want 1", got)
	}
	if stats := store.Stats(); stats.Loaded != 1 {
		t.Errorf("expected exactly 1 cached shard, got %d", stats.Loaded)
	}
}

func TestPurgeDropsCache(t *testing.T) {
	dir := t.TempDir()
	key := mustKey(t, "aa")
	writeTestShard(t, dir, key, []string{"aa"})

	store := NewStore(dir, 2)
	ctx := context.Background()
	store.Load(ctx, key)
	store.Purge()

	if stats := store.Stats(); stats.Loaded != 0 {
		t.Errorf("Purge left %d shards cached", stats.Loaded)
	}

	// Recompiled shard content is visible after purge.
	writeTestShard(t, dir, key, []string{"aa", "aardvark"})
	if !store.Load(ctx, key).Contains("aardvark") {
		t.Error("expected reload after Purge to pick up new shard content")
	}
}

func TestCancelledContextReturnsEmptySet(t *testing.T) {
	dir := t.TempDir()
	key := mustKey(t, "aa")
	writeTestShard(t, dir, key, []string{"aa"})

	store := NewStore(dir, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The result for an abandoned request is an empty set; the shared load
	// may still populate the cache in the background.
	words := store.Load(ctx, key)
	if words == nil {
		t.Error("Load must return a usable (possibly empty) set on cancellation")
	}
}
