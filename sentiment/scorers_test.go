package sentiment

import "testing"

func TestScoreNumericBoundaries(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"0", -1},
		{"4", -1},
		{"5", 0},
		{"6", 0},
		{"7", 0},
		{"8", 1},
		{"10", 1},
		{"7,9", 0},
		{"8.0", 1},
	}

	for _, tt := range tests {
		points, _, ok := scoreNumeric(tt.value)
		if !ok {
			t.Errorf("scoreNumeric(%q): expected valid parse", tt.value)
			continue
		}
		if points != tt.want {
			t.Errorf("scoreNumeric(%q): expected %d points, got %d", tt.value, tt.want, points)
		}
	}
}

func TestScoreNumericMalformed(t *testing.T) {
	for _, value := range []string{"abc", "", "oito"} {
		if _, _, ok := scoreNumeric(value); ok {
			t.Errorf("scoreNumeric(%q): expected parse failure", value)
		}
	}
}

func TestScoreSatisfaction(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"Muito Insatisfeito", -1},
		{"Insatisfeito", -1},
		{"Neutro", 0},
		{"Satisfeito", 1},
		{"Muito Satisfeito", 1},
		{"qualquer outra coisa", 0},
	}

	for _, tt := range tests {
		if got := scoreSatisfaction(tt.value); got != tt.want {
			t.Errorf("scoreSatisfaction(%q): expected %d, got %d", tt.value, tt.want, got)
		}
	}
}

func TestScoreYesNoNormalContext(t *testing.T) {
	if got := scoreYesNo("Você recomenda o treinamento?", "Sim"); got != 1 {
		t.Errorf("Expected +1 for sim on recommendation question, got %d", got)
	}
	if got := scoreYesNo("Você recomenda o treinamento?", "Não"); got != -1 {
		t.Errorf("Expected -1 for não on recommendation question, got %d", got)
	}
}

func TestScoreYesNoInverseContext(t *testing.T) {
	if got := scoreYesNo("Teve alguma dificuldade durante o curso?", "Sim"); got != -1 {
		t.Errorf("Expected -1 for sim on difficulty question, got %d", got)
	}
	if got := scoreYesNo("Teve alguma dificuldade durante o curso?", "Não"); got != 1 {
		t.Errorf("Expected +1 for não on difficulty question, got %d", got)
	}
}

func TestScoreYesNoUnknownContext(t *testing.T) {
	// A question matching neither context list is neutral whatever the answer.
	if got := scoreYesNo("Participou do evento?", "Sim"); got != 0 {
		t.Errorf("Expected 0 for sim on unmatched question, got %d", got)
	}
	if got := scoreYesNo("Participou do evento?", "Não"); got != 0 {
		t.Errorf("Expected 0 for não on unmatched question, got %d", got)
	}
}
