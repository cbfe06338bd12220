package sentiment

import (
	"context"
	"math"
)

// SentimentVerdict is the reconciled sentiment for one text, with the
// keyword evidence kept for audit and email rendering. Confidence always
// lies in [0,1] and reconciliation never raises it above 0.95.
type SentimentVerdict struct {
	Sentiment  Label
	Confidence float64
	Evidence   KeywordMatch
	Source     Source
}

// Reconciler merges the remote classifier verdict with the keyword lexicon
// signal for the same text.
type Reconciler struct {
	classifier Classifier
}

func NewReconciler(classifier Classifier) *Reconciler {
	return &Reconciler{classifier: classifier}
}

// Reconcile computes the keyword match and classifier verdict independently
// and merges them. Keyword evidence wins only when it is strong (two or more
// net hits) or when an unconfident classifier is contradicted by it; a
// confident classifier disagreement is never overridden.
func (r *Reconciler) Reconcile(ctx context.Context, text string) SentimentVerdict {
	match := MatchKeywords(NormalizeText(text))
	verdict := r.classifier.Classify(ctx, text)

	sentiment, confidence := combine(verdict, match)
	return SentimentVerdict{
		Sentiment:  sentiment,
		Confidence: confidence,
		Evidence:   match,
		Source:     verdict.Source,
	}
}

func combine(verdict ClassifierVerdict, match KeywordMatch) (Label, float64) {
	// Strong keyword signal overrides the classifier.
	if match.Score >= 2 {
		return Positive, math.Min(0.95, verdict.Confidence+0.1)
	}
	if match.Score <= -2 {
		return Negative, math.Min(0.95, verdict.Confidence+0.1)
	}

	// A weak classifier verdict contradicted by keywords downgrades to neutral.
	if match.Score > 0 && verdict.Label == Negative && verdict.Confidence < 0.7 {
		return Neutral, 0.6
	}
	if match.Score < 0 && verdict.Label == Positive && verdict.Confidence < 0.7 {
		return Neutral, 0.6
	}

	return verdict.Label, verdict.Confidence
}
