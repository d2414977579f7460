// Package tokenizer extracts normalized words from free text for context
// scoring and n-gram training.
package tokenizer

import (
	"regexp"
	"strings"
)

// wordRegex matches runs of ASCII letters. The dictionary is lowercase
// alphabetic by definition, so digits and punctuation never produce tokens.
var wordRegex = regexp.MustCompile(`[a-zA-Z]+`)

// Tokenize converts a string into a slice of lowercase alphabetic tokens.
func Tokenize(text string) []string {
	matches := wordRegex.FindAllString(text, -1)

	tokens := make([]string, 0, len(matches)) // Initialize as empty slice, not nil
	for _, m := range matches {
		tokens = append(tokens, strings.ToLower(m))
	}
	return tokens
}

// ContextWindow returns up to size trailing tokens of text, oldest first.
// Words further back than the window are irrelevant to adjacency and topic
// scoring, so they are dropped.
func ContextWindow(text string, size int) []string {
	tokens := Tokenize(text)
	if size <= 0 || len(tokens) <= size {
		return tokens
	}
	return tokens[len(tokens)-size:]
}

// IsAlphabetic reports whether the token consists solely of ASCII letters.
func IsAlphabetic(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
