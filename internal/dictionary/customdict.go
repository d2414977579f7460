package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mvalente/go-correction-engine/internal/shardstore"
	"github.com/mvalente/go-correction-engine/internal/tokenizer"
)

const customDictKey = "correction_engine:custom_words"

// CustomDict stores the user's custom words in a Redis set. Custom words
// are always treated as valid by the engine: a token matching one needs no
// correction, and they join the candidate universe.
type CustomDict struct {
	client *redis.Client
}

// NewCustomDict creates a custom dictionary backed by the given Redis
// client.
func NewCustomDict(client *redis.Client) *CustomDict {
	return &CustomDict{client: client}
}

// Add inserts a normalized word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	normalized, err := normalize(word)
	if err != nil {
		return err
	}
	if err := cd.client.SAdd(ctx, customDictKey, normalized).Err(); err != nil {
		return fmt.Errorf("failed to add custom word '%s': %w", normalized, err)
	}
	return nil
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	normalized, err := normalize(word)
	if err != nil {
		return err
	}
	if err := cd.client.SRem(ctx, customDictKey, normalized).Err(); err != nil {
		return fmt.Errorf("failed to remove custom word '%s': %w", normalized, err)
	}
	return nil
}

// All returns the custom words as a word set usable in the candidate
// universe.
func (cd *CustomDict) All(ctx context.Context) (shardstore.WordSet, error) {
	members, err := cd.client.SMembers(ctx, customDictKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list custom words: %w", err)
	}
	set := make(shardstore.WordSet, len(members))
	for _, w := range members {
		set[w] = struct{}{}
	}
	return set, nil
}

func normalize(word string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" || !tokenizer.IsAlphabetic(normalized) {
		return "", fmt.Errorf("custom words must be non-empty and alphabetic, got '%s'", word)
	}
	return normalized, nil
}
