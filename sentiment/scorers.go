package sentiment

import (
	"strconv"
	"strings"
)

// ScoredAnswer is one answer together with its point contribution and the
// rule that produced it.
type ScoredAnswer struct {
	Answer  Answer
	Points  int
	Rule    string
	Numeric float64           // parsed value, numeric scale only
	Verdict *SentimentVerdict // set for scored free-text answers
}

const (
	ruleNumericScale      = "escala_numerica"
	ruleSatisfactionScale = "escala_satisfacao"
	ruleYesNoContext      = "sim_nao_contexto"
	ruleFreeTextSentiment = "sentimento_texto"
)

// scoreNumeric converts a 0-10 scale value into points: <=4 negative,
// >=8 positive, anything between neutral. Malformed values report ok=false
// and are skipped by the aggregator.
func scoreNumeric(value string) (points int, parsed float64, ok bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	parsed, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, 0, false
	}

	switch {
	case parsed <= 4:
		return -1, parsed, true
	case parsed >= 8:
		return 1, parsed, true
	default:
		return 0, parsed, true
	}
}

func scoreSatisfaction(value string) int {
	switch strings.TrimSpace(value) {
	case "Muito Insatisfeito", "Insatisfeito":
		return -1
	case "Satisfeito", "Muito Satisfeito":
		return 1
	default:
		return 0
	}
}

// Question contexts where a "não" answer signals dissatisfaction.
var normalContexts = []string{
	"recomenda", "satisfeito", "atendeu", "gostou", "aprovou",
	"valeu", "útil", "claro", "entendeu",
}

// Question contexts where a "sim" answer signals dissatisfaction.
var inverseContexts = []string{
	"dificuldade", "problema", "confuso", "difícil",
}

// scoreYesNo is context sensitive: for normal questions sim is positive and
// não negative; for inverse questions (difficulty, problems) the mapping
// flips. Questions matching neither context score 0 regardless of answer.
func scoreYesNo(question, value string) int {
	questionLower := strings.ToLower(question)

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sim", "yes":
		for _, context := range inverseContexts {
			if strings.Contains(questionLower, context) {
				return -1
			}
		}
		for _, context := range normalContexts {
			if strings.Contains(questionLower, context) {
				return 1
			}
		}
	case "não", "no":
		for _, context := range normalContexts {
			if strings.Contains(questionLower, context) {
				return -1
			}
		}
		for _, context := range inverseContexts {
			if strings.Contains(questionLower, context) {
				return 1
			}
		}
	}

	return 0
}

func sentimentPoints(label Label) int {
	switch label {
	case Positive:
		return 1
	case Negative:
		return -1
	default:
		return 0
	}
}
