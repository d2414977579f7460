// Package shardstore loads compressed dictionary partitions on demand and
// keeps a bounded, recency-ordered cache of decoded word sets.
package shardstore

// Sentinel used as the second key character for single-letter words, so
// that key assignment stays total: 26 single-letter keys plus 676
// two-letter keys cover every normalized word.
const sentinel = '_'

// ShardKey identifies a dictionary partition by a word's first one or two
// characters. Keys are structured rather than formatted strings so that
// key parts never collide.
type ShardKey struct {
	First  byte
	Second byte
}

// KeyForWord returns the shard key for a normalized (lowercase alphabetic)
// word. Assignment is total and deterministic: single-character words map
// to <letter><sentinel>, everything else to its first two characters.
func KeyForWord(word string) (ShardKey, bool) {
	if len(word) == 0 || !isLower(word[0]) {
		return ShardKey{}, false
	}
	if len(word) == 1 {
		return ShardKey{First: word[0], Second: sentinel}, true
	}
	if !isLower(word[1]) {
		return ShardKey{}, false
	}
	return ShardKey{First: word[0], Second: word[1]}, true
}

// String returns the two-character key text, e.g. "ab" or "a_".
func (k ShardKey) String() string {
	return string([]byte{k.First, k.Second})
}

// Filename returns the shard file name for this key, e.g. "ab.txt.gz".
func (k ShardKey) Filename() string {
	return k.String() + ".txt.gz"
}

// NeighborKeys returns every shard key a single-character edit of word can
// land in: the exact key, every key obtained by varying either key
// character, and the keys reached when an edit shifts the prefix itself.
// An insertion at the front lands in (c, First); deleting the first letter
// or transposing the first two lands in (Second, c). Both single-letter
// shards (<letter><sentinel>) are included so edits down to one-letter
// words resolve too.
func NeighborKeys(word string) []ShardKey {
	exact, ok := KeyForWord(word)
	if !ok {
		return nil
	}

	seen := make(map[ShardKey]struct{}, 104)
	keys := make([]ShardKey, 0, 104)
	add := func(k ShardKey) {
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	add(exact)
	for c := byte('a'); c <= 'z'; c++ {
		add(ShardKey{First: c, Second: exact.Second})
		add(ShardKey{First: exact.First, Second: c})
	}
	add(ShardKey{First: exact.First, Second: sentinel})

	for c := byte('a'); c <= 'z'; c++ {
		add(ShardKey{First: c, Second: exact.First})
	}
	if exact.Second != sentinel {
		for c := byte('a'); c <= 'z'; c++ {
			add(ShardKey{First: exact.Second, Second: c})
		}
		add(ShardKey{First: exact.Second, Second: sentinel})
	}

	return keys
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}
