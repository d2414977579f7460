package ranker

// Frequency tiers group words by how common they are in general English,
// serving as a ranking prior. Weights are normalized into [0, 1] by
// dividing by the top tier's weight; unseen words fall into the lowest
// tier.
const normalizingConstant = 10.0

var frequencyTiers = []struct {
	weight float64
	words  map[string]struct{}
}{
	{10.0, wordSet(
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	)},
	{5.0, wordSet(
		"this", "but", "his", "by", "from", "they", "we", "say", "her",
		"she", "or", "an", "will", "my", "one", "all", "would", "there",
		"their", "what",
	)},
	{3.0, wordSet(
		"so", "up", "out", "if", "about", "who", "get", "which", "go",
		"me", "when", "make", "can", "like", "time", "no", "just", "him",
		"know", "take",
	)},
	{1.5, wordSet(
		"people", "into", "year", "your", "good", "some", "could", "them",
		"see", "other", "than", "then", "now", "look", "only", "come",
		"its", "over", "think", "also", "back", "after", "use", "two",
		"how", "our", "work", "first", "well",
	)},
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// FrequencyTier returns the tier weight for word (1.0 for unseen words).
func FrequencyTier(word string) float64 {
	for _, tier := range frequencyTiers {
		if _, ok := tier.words[word]; ok {
			return tier.weight
		}
	}
	return 1.0
}
