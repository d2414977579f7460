package contextmodel

// Tables is the raw, serializable form of the context model's statistics.
// Instances are either compiled into the binary (DefaultTables) or produced
// by the n-gram trainer and loaded from disk. All fields are exported for
// gob encoding.
type Tables struct {
	// Bigrams maps a preceding word to its common followers.
	Bigrams map[string][]string
	// Trigrams holds known three-word phrases, space-joined.
	Trigrams []string
	// DomainKeywords maps a domain name to words whose presence in the
	// context window votes for that domain.
	DomainKeywords map[string][]string
	// DomainVocabulary maps a domain name to words that earn the domain
	// affinity bonus when suggested within that domain.
	DomainVocabulary map[string][]string
}

// Domain names. Classification ties are broken by this fixed precedence
// order; zero keyword hits yields DomainGeneral, which carries no bonus.
const (
	DomainTechnical = "technical"
	DomainBusiness  = "business"
	DomainAcademic  = "academic"
	DomainCasual    = "casual"
	DomainGeneral   = "general"
)

// domainPrecedence is the tie-break order for classification.
var domainPrecedence = []string{DomainTechnical, DomainBusiness, DomainAcademic, DomainCasual}

// DefaultTables returns the built-in statistics used when no trained
// tables are available.
func DefaultTables() *Tables {
	return &Tables{
		Bigrams: map[string][]string{
			"the":   {"same", "first", "last", "next", "best", "only", "most", "world", "time", "way"},
			"i":     {"am", "was", "have", "had", "will", "would", "think", "know", "want", "need"},
			"to":    {"be", "have", "do", "make", "get", "see", "know", "take", "go", "use"},
			"of":    {"the", "course", "this", "that", "these", "them", "all", "our", "my"},
			"in":    {"the", "this", "that", "fact", "order", "case", "time", "general"},
			"it":    {"is", "was", "will", "would", "has", "had", "seems", "takes"},
			"we":    {"are", "were", "have", "had", "will", "would", "can", "could", "should", "need"},
			"they":  {"are", "were", "have", "had", "will", "would", "can", "could", "said"},
			"went":  {"to", "back", "home", "there", "away", "out", "down", "up"},
			"would": {"be", "have", "like", "not", "make", "take", "need", "want"},
			"have":  {"been", "to", "a", "the", "not", "done", "made", "seen"},
			"will":  {"be", "have", "not", "make", "take", "need", "do", "get"},
			"can":   {"be", "do", "make", "see", "get", "take", "help", "use"},
			"this":  {"is", "was", "will", "would", "means", "could", "should"},
			"there": {"is", "are", "was", "were", "will", "would", "should"},
			"you":   {"are", "were", "have", "had", "will", "would", "can", "could", "should", "know"},
		},
		Trigrams: []string{
			"a lot of",
			"as well as",
			"i went to",
			"in order to",
			"in front of",
			"on the other",
			"the other hand",
			"one of the",
			"out of the",
			"as soon as",
			"at the same",
			"the same time",
			"going to be",
			"would like to",
			"be able to",
			"the end of",
			"thank you for",
			"looking forward to",
			"let me know",
			"as a result",
		},
		DomainKeywords: map[string][]string{
			DomainTechnical: {"server", "code", "software", "database", "network", "system", "api", "bug", "deploy", "compile", "algorithm", "function", "debug", "cache", "query"},
			DomainBusiness:  {"meeting", "client", "revenue", "quarter", "budget", "invoice", "contract", "stakeholder", "deadline", "proposal", "market", "sales"},
			DomainAcademic:  {"research", "study", "hypothesis", "thesis", "journal", "experiment", "analysis", "literature", "citation", "methodology", "professor"},
			DomainCasual:    {"hey", "lol", "cool", "awesome", "dude", "yeah", "gonna", "wanna", "fun", "party", "movie", "game"},
		},
		DomainVocabulary: map[string][]string{
			DomainTechnical: {"server", "servers", "database", "databases", "deploy", "deployment", "compile", "compiler", "algorithm", "function", "variable", "repository", "debug", "cache", "latency", "query", "request", "protocol"},
			DomainBusiness:  {"meeting", "meetings", "client", "clients", "revenue", "budget", "invoice", "contract", "deadline", "proposal", "quarterly", "forecast"},
			DomainAcademic:  {"research", "hypothesis", "thesis", "experiment", "analysis", "citation", "methodology", "empirical", "literature", "abstract"},
			DomainCasual:    {"awesome", "cool", "fun", "party", "movie", "game", "weekend", "hangout"},
		},
	}
}
