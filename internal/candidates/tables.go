package candidates

// Curated correction tables. These are static data versioned with the
// binary; hits are exact matches and are treated as maximal-confidence
// candidates (edit distance 0).

// commonMisspellings maps frequent typing errors to their corrections.
var commonMisspellings = map[string]string{
	"teh":        "the",
	"adn":        "and",
	"hte":        "the",
	"taht":       "that",
	"thier":      "their",
	"recieve":    "receive",
	"occured":    "occurred",
	"occurance":  "occurrence",
	"seperate":   "separate",
	"definately": "definitely",
	"publically": "publicly",
	"untill":     "until",
	"wich":       "which",
	"begining":   "beginning",
	"refered":    "referred",
	"accross":    "across",
	"goverment":  "government",
	"enviroment": "environment",
	"realy":      "really",
	"wierd":      "weird",
	"beleive":    "believe",
	"acheive":    "achieve",
	"existance":  "existence",
	"occassion":  "occasion",
	"necesary":   "necessary",
	"neccessary": "necessary",
	"tommorow":   "tomorrow",
	"tommorrow":  "tomorrow",
	"succesful":  "successful",
	"basicly":    "basically",
	"finaly":     "finally",
	"freind":     "friend",
	"mispell":    "misspell",
}

// phoneticAliases maps informal or phonetic spellings to full words.
var phoneticAliases = map[string]string{
	"nite": "night",
	"lite": "light",
	"thru": "through",
	"u":    "you",
	"ur":   "your",
	"r":    "are",
	"c":    "see",
	"k":    "okay",
	"ppl":  "people",
	"msg":  "message",
	"txt":  "text",
	"thx":  "thanks",
	"pls":  "please",
}

// MisspellingCorrection returns the curated correction for token, if any.
func MisspellingCorrection(token string) (string, bool) {
	w, ok := commonMisspellings[token]
	return w, ok
}

// PhoneticAlias returns the curated full word for a phonetic spelling.
func PhoneticAlias(token string) (string, bool) {
	w, ok := phoneticAliases[token]
	return w, ok
}
