package sentiment

import "strings"

// AnswerKind identifies how a raw answer value is scored
type AnswerKind string

const (
	KindFreeText          AnswerKind = "texto_livre"
	KindNumericScale      AnswerKind = "escala_numerica"
	KindSatisfactionScale AnswerKind = "escala_satisfacao"
	KindYesNo             AnswerKind = "sim_nao"
)

// Answer is one client-submitted value for one question. Kind is decided
// once by ClassifyAnswer and never re-derived during scoring.
type Answer struct {
	Question string
	Kind     AnswerKind
	Value    string
}

var satisfactionLabels = []string{
	"Muito Satisfeito", "Satisfeito", "Neutro", "Insatisfeito", "Muito Insatisfeito",
}

// ClassifyAnswer determines the answer kind from the shape of the value:
// digit-like values are numeric scales, known satisfaction labels map to the
// satisfaction scale, sim/não/yes/no map to yes-no, everything else is free text.
func ClassifyAnswer(question, value string) Answer {
	return Answer{Question: question, Kind: classifyValue(value), Value: value}
}

func classifyValue(value string) AnswerKind {
	trimmed := strings.TrimSpace(value)

	if isNumericLike(trimmed) {
		return KindNumericScale
	}

	for _, label := range satisfactionLabels {
		if trimmed == label {
			return KindSatisfactionScale
		}
	}

	switch strings.ToLower(trimmed) {
	case "sim", "não", "yes", "no":
		return KindYesNo
	}

	return KindFreeText
}

func isNumericLike(value string) bool {
	if value == "" {
		return false
	}
	stripped := strings.NewReplacer(".", "", ",", "").Replace(value)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
