package sentiment

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestAggregateDissatisfiedSurvey(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.9, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Nota geral", "3"),
		ClassifyAnswer("Comentário", "Achei tudo muito confuso e perdi tempo"),
	}

	result := analyzer.Aggregate(context.Background(), answers)

	if result.TotalScore != -2 {
		t.Errorf("Expected total score -2, got %d", result.TotalScore)
	}
	if result.OverallSentiment != Negative {
		t.Errorf("Expected negative overall sentiment, got %s", result.OverallSentiment)
	}
	if !result.ShouldAlert {
		t.Error("Expected alert to be triggered")
	}
	if !strings.Contains(result.DissatisfactionReason, "confuso") &&
		!strings.Contains(result.DissatisfactionReason, "perdi tempo") {
		t.Errorf("Expected reason to mention the negative keywords, got %q", result.DissatisfactionReason)
	}
	if !strings.Contains(result.DissatisfactionReason, "Notas baixas: 3") {
		t.Errorf("Expected reason to mention the low score, got %q", result.DissatisfactionReason)
	}
}

func TestAggregateSatisfiedSurveyWithoutFreeText(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.9, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Como você avalia o atendimento?", "Muito Satisfeito"),
		ClassifyAnswer("Você recomenda?", "Sim"),
	}

	result := analyzer.Aggregate(context.Background(), answers)

	if result.TotalScore != 2 {
		t.Errorf("Expected total score 2, got %d", result.TotalScore)
	}
	if result.OverallSentiment != Neutral {
		t.Errorf("Expected neutral sentiment without free text, got %s", result.OverallSentiment)
	}
	if result.OverallConfidence != 0.5 {
		t.Errorf("Expected confidence 0.5 without free text, got %f", result.OverallConfidence)
	}
	if result.ShouldAlert {
		t.Error("Expected no alert for a satisfied survey")
	}
	if result.ConsolidatedText != "" {
		t.Errorf("Expected empty consolidated text, got %q", result.ConsolidatedText)
	}
}

func TestAggregateSkipsShortFreeText(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Positive, Confidence: 0.9, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Comentário", "ok"),
		{Question: "Comentário", Kind: KindFreeText, Value: "Não"},
	}

	result := analyzer.Aggregate(context.Background(), answers)
	if result.TotalScore != 0 || len(result.Scored) != 0 {
		t.Errorf("Expected short free text to be skipped entirely, got %+v", result)
	}
	if result.ConsolidatedText != "" {
		t.Errorf("Expected accented short text to stay out of the blob, got %q", result.ConsolidatedText)
	}
}

func TestAggregateSkipsMalformedNumeric(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Neutral, Confidence: 0.5, Source: SourceRemote}})

	answers := []Answer{
		{Question: "Nota", Kind: KindNumericScale, Value: "dez"},
		ClassifyAnswer("Nota geral", "9"),
	}

	result := analyzer.Aggregate(context.Background(), answers)
	if result.TotalScore != 1 {
		t.Errorf("Expected malformed numeric to contribute 0 points, got total %d", result.TotalScore)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Expected 1 warning for the malformed value, got %v", result.Warnings)
	}
}

func TestAggregateConsolidatedTextOrder(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Neutral, Confidence: 0.5, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Primeira impressão", "Gostei do primeiro módulo"),
		ClassifyAnswer("Nota geral", "7"),
		ClassifyAnswer("Sugestões", "Poderia ter mais exemplos"),
	}

	result := analyzer.Aggregate(context.Background(), answers)
	want := "Gostei do primeiro módulo Poderia ter mais exemplos"
	if result.ConsolidatedText != want {
		t.Errorf("Expected consolidated text in input order, got %q", result.ConsolidatedText)
	}
}

func TestAggregateIdempotence(t *testing.T) {
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.8, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Nota geral", "2"),
		ClassifyAnswer("Comentário", "Muito ruim, não aprendi nada"),
		ClassifyAnswer("Você recomenda?", "Não"),
	}

	first := analyzer.Aggregate(context.Background(), answers)
	second := analyzer.Aggregate(context.Background(), answers)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for identical input:\n%+v\n%+v", first, second)
	}
}

func TestShouldAlertMonotonicity(t *testing.T) {
	// Any score <= -1 alerts regardless of sentiment.
	for _, label := range []Label{Positive, Negative, Neutral} {
		if !ShouldAlert(label, -1) {
			t.Errorf("Expected alert with score -1 and sentiment %s", label)
		}
		if !ShouldAlert(label, -5) {
			t.Errorf("Expected alert with score -5 and sentiment %s", label)
		}
	}

	if !ShouldAlert(Negative, 3) {
		t.Error("Expected alert for negative sentiment despite positive score")
	}
	if ShouldAlert(Neutral, 0) {
		t.Error("Expected no alert for neutral sentiment and score 0")
	}
	if ShouldAlert(Positive, 2) {
		t.Error("Expected no alert for positive outcome")
	}
}

func TestAggregateDefaultDissatisfactionReason(t *testing.T) {
	// Negative consolidated verdict but no keyword hits, no low scores and no
	// negative satisfaction labels.
	analyzer := NewAnalyzer(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.75, Source: SourceRemote}})

	answers := []Answer{
		ClassifyAnswer("Comentário", "A experiência deixou a desejar em vários pontos"),
	}

	result := analyzer.Aggregate(context.Background(), answers)
	if result.OverallSentiment != Negative {
		t.Fatalf("Expected negative sentiment, got %s", result.OverallSentiment)
	}
	if result.DissatisfactionReason != "Comentário com sentimento negativo" {
		t.Errorf("Unexpected reason: %q", result.DissatisfactionReason)
	}
}
