package sentiment

import "strings"

// Fixed phrase lists used to detect satisfaction and dissatisfaction in
// free-text answers. Loaded once, never mutated at runtime. Matching is
// pure case-insensitive substring search, so overlapping phrases may both
// count and no word boundaries are required.
var dissatisfactionPhrases = []string{
	"confuso", "difícil", "não entendi", "perdido", "mal explicado",
	"desorganizado", "ruim", "péssimo", "horrível", "terrível",
	"perdi tempo", "decepcionante", "frustante", "chato",
	"não recomendo", "muito técnico", "muito rápido", "muito lento",
	"não consegui", "não aprendi", "inútil", "fraco",
}

var satisfactionPhrases = []string{
	"excelente", "ótimo", "muito bom", "perfeito", "maravilhoso",
	"claro", "útil", "aprendi", "recomendo", "fantástico",
	"didático", "objetivo", "prático", "esclarecedor",
	"valeu a pena", "superou expectativas", "adorei",
}

// KeywordMatch is the result of a lexicon scan over one text.
type KeywordMatch struct {
	Positive []string `json:"palavrasPositivas"`
	Negative []string `json:"palavrasNegativas"`
	Score    int      `json:"scorePalavras"`
}

// MatchKeywords scans text against both phrase lists. Empty text yields an
// empty match with score 0.
func MatchKeywords(text string) KeywordMatch {
	lower := strings.ToLower(text)

	var match KeywordMatch
	for _, phrase := range dissatisfactionPhrases {
		if strings.Contains(lower, phrase) {
			match.Negative = append(match.Negative, phrase)
		}
	}
	for _, phrase := range satisfactionPhrases {
		if strings.Contains(lower, phrase) {
			match.Positive = append(match.Positive, phrase)
		}
	}

	match.Score = len(match.Positive) - len(match.Negative)
	return match
}
