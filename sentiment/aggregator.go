package sentiment

import (
	"context"
	"fmt"
	"strings"
)

// HybridResult is the survey-level aggregate. It is immutable after
// construction; the submission workflow owns it and hands it to persistence
// and notification.
type HybridResult struct {
	OverallSentiment      Label
	OverallConfidence     float64
	TotalScore            int
	ConsolidatedText      string
	DissatisfactionReason string
	ShouldAlert           bool
	Scored                []ScoredAnswer
	Warnings              []string
}

// Analyzer consolidates heterogeneous survey answers into one hybrid
// sentiment verdict.
type Analyzer struct {
	reconciler *Reconciler
}

func NewAnalyzer(classifier Classifier) *Analyzer {
	return &Analyzer{reconciler: NewReconciler(classifier)}
}

// Aggregate scores every answer, consolidates the free-text answers into a
// single blob and reconciles the blob once more for the overall sentiment.
// Malformed answers degrade to warnings instead of failing the survey.
func (a *Analyzer) Aggregate(ctx context.Context, answers []Answer) HybridResult {
	var result HybridResult
	var freeTexts []string

	for _, answer := range answers {
		switch answer.Kind {
		case KindFreeText:
			if len([]rune(strings.TrimSpace(answer.Value))) <= 3 {
				continue
			}
			verdict := a.reconciler.Reconcile(ctx, answer.Value)
			points := sentimentPoints(verdict.Sentiment)
			result.TotalScore += points
			freeTexts = append(freeTexts, answer.Value)
			result.Scored = append(result.Scored, ScoredAnswer{
				Answer:  answer,
				Points:  points,
				Rule:    ruleFreeTextSentiment,
				Verdict: &verdict,
			})

		case KindNumericScale:
			points, parsed, ok := scoreNumeric(answer.Value)
			if !ok {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("valor numérico inválido ignorado: %q", answer.Value))
				continue
			}
			result.TotalScore += points
			result.Scored = append(result.Scored, ScoredAnswer{
				Answer:  answer,
				Points:  points,
				Rule:    ruleNumericScale,
				Numeric: parsed,
			})

		case KindSatisfactionScale:
			points := scoreSatisfaction(answer.Value)
			result.TotalScore += points
			result.Scored = append(result.Scored, ScoredAnswer{
				Answer: answer,
				Points: points,
				Rule:   ruleSatisfactionScale,
			})

		case KindYesNo:
			points := scoreYesNo(answer.Question, answer.Value)
			result.TotalScore += points
			result.Scored = append(result.Scored, ScoredAnswer{
				Answer: answer,
				Points: points,
				Rule:   ruleYesNoContext,
			})

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("tipo de resposta desconhecido ignorado: %q", answer.Kind))
		}
	}

	// Individual texts are scored independently above; the overall narrative
	// sentiment comes from one reconciliation pass over the combined blob,
	// which may reconcile differently than any single answer.
	result.ConsolidatedText = strings.Join(freeTexts, " ")
	result.OverallSentiment = Neutral
	result.OverallConfidence = 0.5

	if strings.TrimSpace(result.ConsolidatedText) != "" {
		consolidated := a.reconciler.Reconcile(ctx, result.ConsolidatedText)
		result.OverallSentiment = consolidated.Sentiment
		result.OverallConfidence = consolidated.Confidence

		if result.OverallSentiment == Negative {
			result.DissatisfactionReason = buildDissatisfactionReason(result.Scored, consolidated)
		}
	}

	result.ShouldAlert = ShouldAlert(result.OverallSentiment, result.TotalScore)
	return result
}

// ShouldAlert applies the alert threshold: a negative narrative tone or a
// negative net point balance each trigger an alert on their own.
func ShouldAlert(overallSentiment Label, totalScore int) bool {
	return overallSentiment == Negative || totalScore <= -1
}

// buildDissatisfactionReason summarizes why the survey read as negative:
// keyword mentions from the consolidated text, then low numeric scores, then
// negative satisfaction labels.
func buildDissatisfactionReason(scored []ScoredAnswer, consolidated SentimentVerdict) string {
	var reasons []string

	for _, s := range scored {
		if s.Rule != ruleFreeTextSentiment || s.Verdict == nil || s.Verdict.Sentiment != Negative {
			continue
		}
		if len(consolidated.Evidence.Negative) > 0 {
			mentions := consolidated.Evidence.Negative
			if len(mentions) > 3 {
				mentions = mentions[:3]
			}
			reasons = append(reasons, "Mencionou: "+strings.Join(mentions, ", "))
		} else {
			reasons = append(reasons, "Comentário com sentimento negativo")
		}
	}

	var lowScores []string
	for _, s := range scored {
		if s.Rule == ruleNumericScale && s.Points == -1 && len(lowScores) < 2 {
			lowScores = append(lowScores, formatScore(s.Numeric))
		}
	}
	if len(lowScores) > 0 {
		reasons = append(reasons, "Notas baixas: "+strings.Join(lowScores, ", "))
	}

	var negativeLabels []string
	for _, s := range scored {
		if s.Rule == ruleSatisfactionScale && s.Points == -1 && len(negativeLabels) < 2 {
			negativeLabels = append(negativeLabels, s.Answer.Value)
		}
	}
	if len(negativeLabels) > 0 {
		reasons = append(reasons, "Avaliou como: "+strings.Join(negativeLabels, ", "))
	}

	if len(reasons) == 0 {
		return "Sentimento negativo detectado"
	}
	return strings.Join(reasons, "; ")
}

func formatScore(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.1f", value)
}
