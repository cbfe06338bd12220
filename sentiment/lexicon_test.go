package sentiment

import "testing"

func TestMatchKeywordsEmptyText(t *testing.T) {
	match := MatchKeywords("")
	if len(match.Positive) != 0 || len(match.Negative) != 0 {
		t.Errorf("Expected empty match for empty text, got %+v", match)
	}
	if match.Score != 0 {
		t.Errorf("Expected score 0 for empty text, got %d", match.Score)
	}
}

func TestMatchKeywordsCaseInsensitive(t *testing.T) {
	match := MatchKeywords("O curso foi EXCELENTE e muito CLARO")
	if len(match.Positive) != 2 {
		t.Errorf("Expected 2 positive hits, got %v", match.Positive)
	}
	if match.Score != 2 {
		t.Errorf("Expected score 2, got %d", match.Score)
	}
}

func TestMatchKeywordsSubstringMatch(t *testing.T) {
	// Substring match is intentional: "útil" matches inside "inútil" too.
	match := MatchKeywords("achei tudo inútil")
	foundNegative := false
	for _, phrase := range match.Negative {
		if phrase == "inútil" {
			foundNegative = true
		}
	}
	if !foundNegative {
		t.Errorf("Expected 'inútil' in negative hits, got %v", match.Negative)
	}
	foundPositive := false
	for _, phrase := range match.Positive {
		if phrase == "útil" {
			foundPositive = true
		}
	}
	if !foundPositive {
		t.Errorf("Expected 'útil' to match as substring, got %v", match.Positive)
	}
}

func TestMatchKeywordsMixedSignals(t *testing.T) {
	match := MatchKeywords("o conteúdo foi confuso e ruim, mas o instrutor foi ótimo")
	if len(match.Negative) != 2 {
		t.Errorf("Expected 2 negative hits, got %v", match.Negative)
	}
	if len(match.Positive) != 1 {
		t.Errorf("Expected 1 positive hit, got %v", match.Positive)
	}
	if match.Score != -1 {
		t.Errorf("Expected score -1, got %d", match.Score)
	}
}
