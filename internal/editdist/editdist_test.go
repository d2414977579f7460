package editdist

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical", "kitten", "kitten", 0},
		{"single substitution", "cat", "bat", 1},
		{"single insertion", "cat", "cart", 1},
		{"single deletion", "cart", "cat", 1},
		{"adjacent transposition", "teh", "the", 1},
		{"transposition not two substitutions", "wnet", "went", 1},
		{"classic kitten sitting", "kitten", "sitting", 3},
		{"empty to word", "", "abc", 3},
		{"word to empty", "abc", "", 3},
		{"both empty", "", "", 0},
		{"unicode runes counted once", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.expected {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"receive", "recieve"},
		{"separate", "seperate"},
		{"a", "abcdef"},
	}
	for _, p := range pairs {
		if d1, d2 := Distance(p[0], p[1]), Distance(p[1], p[0]); d1 != d2 {
			t.Errorf("Distance(%q, %q) = %d but reversed = %d", p[0], p[1], d1, d2)
		}
	}
}

func TestDistanceWithLimit(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		limit    int
		expected int
	}{
		{"within limit", "cat", "bat", 1, 1},
		{"exceeds limit returns limit plus one", "kitten", "sitting", 1, 2},
		{"length difference short circuit", "a", "abcdefgh", 2, 3},
		{"zero limit identical", "same", "same", 0, 0},
		{"zero limit different", "same", "tame", 0, 1},
		{"negative limit means exact", "kitten", "sitting", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceWithLimit(tt.a, tt.b, tt.limit); got != tt.expected {
				t.Errorf("DistanceWithLimit(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestEdits1(t *testing.T) {
	edits := Edits1("teh")

	asSet := make(map[string]struct{}, len(edits))
	for _, e := range edits {
		if e == "teh" {
			t.Error("Edits1 must not contain the token itself")
		}
		if _, dup := asSet[e]; dup {
			t.Errorf("Edits1 produced duplicate %q", e)
		}
		asSet[e] = struct{}{}
	}

	// One representative per edit kind.
	for _, want := range []string{
		"the", // transposition
		"eh",  // deletion
		"tea", // substitution
		"tech", // insertion
	} {
		if _, ok := asSet[want]; !ok {
			t.Errorf("Edits1(\"teh\") missing expected edit %q", want)
		}
	}
}

func TestEdits1AllAtDistanceOne(t *testing.T) {
	for _, e := range Edits1("word") {
		if d := Distance("word", e); d != 1 {
			t.Errorf("Edits1 produced %q at distance %d, want 1", e, d)
		}
	}
}

func TestEdits1SingleCharacter(t *testing.T) {
	edits := Edits1("a")
	asSet := make(map[string]struct{}, len(edits))
	for _, e := range edits {
		asSet[e] = struct{}{}
	}
	if _, ok := asSet[""]; !ok {
		t.Error("deleting the only character should produce the empty string")
	}
	if _, ok := asSet["ab"]; !ok {
		t.Error("expected insertion \"ab\"")
	}
	if _, ok := asSet["b"]; !ok {
		t.Error("expected substitution \"b\"")
	}
}
