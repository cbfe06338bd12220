package sentiment

import "testing"

func TestClassifyAnswerKinds(t *testing.T) {
	tests := []struct {
		value string
		want  AnswerKind
	}{
		{"8", KindNumericScale},
		{"7.5", KindNumericScale},
		{"9,5", KindNumericScale},
		{"Muito Satisfeito", KindSatisfactionScale},
		{"Insatisfeito", KindSatisfactionScale},
		{"Neutro", KindSatisfactionScale},
		{"Sim", KindYesNo},
		{"não", KindYesNo},
		{"Yes", KindYesNo},
		{"Achei o curso muito bom", KindFreeText},
		{"10 pessoas participaram", KindFreeText},
	}

	for _, tt := range tests {
		answer := ClassifyAnswer("Pergunta", tt.value)
		if answer.Kind != tt.want {
			t.Errorf("ClassifyAnswer(%q): expected kind %s, got %s", tt.value, tt.want, answer.Kind)
		}
	}
}

func TestClassifyAnswerKindIsStable(t *testing.T) {
	answer := ClassifyAnswer("Nota geral", "3")
	if answer.Kind != KindNumericScale {
		t.Fatalf("Expected numeric scale, got %s", answer.Kind)
	}
	if answer.Question != "Nota geral" || answer.Value != "3" {
		t.Errorf("Answer fields not preserved: %+v", answer)
	}
}
