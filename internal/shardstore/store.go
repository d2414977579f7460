package shardstore

import (
	"bufio"
	"compress/gzip"
	"container/list"
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// WordSet is a decoded shard: the set of dictionary words in one partition.
type WordSet map[string]struct{}

// Contains reports whether the set holds word.
func (ws WordSet) Contains(word string) bool {
	_, ok := ws[word]
	return ok
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Loaded int   `json:"loaded"` // shards currently cached
}

type cacheEntry struct {
	key   ShardKey
	words WordSet
}

// Store is an on-demand loader for compressed dictionary shards with a
// bounded LRU cache. Loads for different keys may run in parallel;
// concurrent loads for the same key coalesce into one decompression.
type Store struct {
	dir      string
	capacity int

	mu      sync.Mutex
	entries map[ShardKey]*list.Element
	recency *list.List // front = most recently used

	group singleflight.Group

	hits   int64
	misses int64

	read func(key ShardKey) WordSet // injectable for tests
}

// NewStore creates a shard store reading <key>.txt.gz files from dir,
// holding at most capacity decoded shards in memory.
func NewStore(dir string, capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &Store{
		dir:      dir,
		capacity: capacity,
		entries:  make(map[ShardKey]*list.Element),
		recency:  list.New(),
	}
	s.read = s.readShard
	return s
}

// Load returns the word set for a shard key, loading and decompressing it
// on a cache miss. A cache hit promotes recency without I/O. Missing or
// corrupt shard files yield an empty set: the prefix space is sparse by
// design, so absence is not an error.
//
// Cancellation is advisory: if ctx is done while a load is in flight, Load
// returns an empty set immediately but the load still completes and
// populates the cache for future requests.
func (s *Store) Load(ctx context.Context, key ShardKey) WordSet {
	s.mu.Lock()
	if elem, ok := s.entries[key]; ok {
		s.recency.MoveToFront(elem)
		s.hits++
		words := elem.Value.(*cacheEntry).words
		s.mu.Unlock()
		return words
	}
	s.misses++
	s.mu.Unlock()

	ch := s.group.DoChan(key.String(), func() (interface{}, error) {
		words := s.read(key)
		s.insert(key, words)
		return words, nil
	})

	select {
	case res := <-ch:
		return res.Val.(WordSet)
	case <-ctx.Done():
		// Caller abandoned the request; the shared load keeps running.
		return WordSet{}
	}
}

// Contains reports whether word is present in its home shard.
func (s *Store) Contains(ctx context.Context, word string) bool {
	key, ok := KeyForWord(word)
	if !ok {
		return false
	}
	return s.Load(ctx, key).Contains(word)
}

// Purge drops every cached shard, forcing reloads from disk. Called after
// shard files are recompiled.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[ShardKey]*list.Element)
	s.recency.Init()
}

// Stats returns a snapshot of the cache counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Hits: s.hits, Misses: s.misses, Loaded: len(s.entries)}
}

// insert adds a decoded shard to the cache and evicts the least-recently
// used entry if over capacity. The entry just inserted sits at the front
// of the recency list, so it is never the one evicted.
func (s *Store) insert(key ShardKey, words WordSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		// A concurrent hit raced us here; just refresh recency.
		s.recency.MoveToFront(elem)
		return
	}

	elem := s.recency.PushFront(&cacheEntry{key: key, words: words})
	s.entries[key] = elem

	for len(s.entries) > s.capacity {
		oldest := s.recency.Back()
		if oldest == nil || oldest == elem {
			break
		}
		s.recency.Remove(oldest)
		delete(s.entries, oldest.Value.(*cacheEntry).key)
	}
}

// readShard decompresses and parses one shard file. Every failure mode
// degrades to an empty set.
func (s *Store) readShard(key ShardKey) WordSet {
	path := filepath.Join(s.dir, key.Filename())

	file, err := os.Open(path) // #nosec G304 -- path is derived from a validated two-character key
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Failed to open shard %s: %v. Treating partition as empty.", path, err)
		}
		return WordSet{}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close shard file %s: %v", path, closeErr)
		}
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		log.Printf("Warning: Failed to decompress shard %s: %v. Treating partition as empty.", path, err)
		return WordSet{}
	}
	defer func() {
		if closeErr := gz.Close(); closeErr != nil {
			log.Printf("Warning: failed to close gzip reader for %s: %v", path, closeErr)
		}
	}()

	words := make(WordSet)
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		word := scanner.Text()
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Warning: Failed reading shard %s: %v. Keeping %d words parsed so far.", path, err, len(words))
	}
	return words
}
