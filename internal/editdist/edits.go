package editdist

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Edits1 generates every string reachable from token by exactly one
// deletion, one substitution, one insertion, or one adjacent transposition.
// The result is deduplicated and never contains the token itself. For a
// token of length L this produces O(26*L) strings, which the caller is
// expected to intersect with a loaded dictionary neighborhood.
func Edits1(token string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 54*len(token)+26)

	add := func(s string) {
		if s == token {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	// Deletions
	for i := 0; i < len(token); i++ {
		add(token[:i] + token[i+1:])
	}

	// Substitutions
	for i := 0; i < len(token); i++ {
		for _, c := range alphabet {
			add(token[:i] + string(c) + token[i+1:])
		}
	}

	// Insertions (all positions, including both ends)
	for i := 0; i <= len(token); i++ {
		for _, c := range alphabet {
			add(token[:i] + string(c) + token[i:])
		}
	}

	// Adjacent transpositions
	for i := 0; i+1 < len(token); i++ {
		add(token[:i] + string(token[i+1]) + string(token[i]) + token[i+2:])
	}

	return out
}
