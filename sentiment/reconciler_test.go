package sentiment

import (
	"context"
	"testing"
)

// stubClassifier returns a fixed verdict regardless of input.
type stubClassifier struct {
	verdict ClassifierVerdict
}

func (s stubClassifier) Classify(ctx context.Context, text string) ClassifierVerdict {
	return s.verdict
}

func TestReconcileKeywordOverrideDominance(t *testing.T) {
	// Two negative keywords beat a confident positive classifier.
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Positive, Confidence: 0.9, Source: SourceRemote}})

	verdict := reconciler.Reconcile(context.Background(), "Foi tudo confuso e perdi tempo")
	if verdict.Sentiment != Negative {
		t.Errorf("Expected keyword override to negative, got %s", verdict.Sentiment)
	}
	if verdict.Confidence != 0.95 {
		t.Errorf("Expected confidence capped at 0.95, got %f", verdict.Confidence)
	}
}

func TestReconcilePositiveKeywordOverride(t *testing.T) {
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Neutral, Confidence: 0.5, Source: SourceRemote}})

	verdict := reconciler.Reconcile(context.Background(), "Curso excelente, aprendi muito e recomendo")
	if verdict.Sentiment != Positive {
		t.Errorf("Expected positive override, got %s", verdict.Sentiment)
	}
	if verdict.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.5+0.1, got %f", verdict.Confidence)
	}
}

func TestReconcileWeakNegativeClassifierDowngraded(t *testing.T) {
	// Single positive keyword against an unconfident negative classifier.
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.5, Source: SourceRemote}})

	verdict := reconciler.Reconcile(context.Background(), "O material era claro")
	if verdict.Sentiment != Neutral {
		t.Errorf("Expected downgrade to neutral, got %s", verdict.Sentiment)
	}
	if verdict.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.6 after downgrade, got %f", verdict.Confidence)
	}
}

func TestReconcileWeakPositiveClassifierDowngraded(t *testing.T) {
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Positive, Confidence: 0.65, Source: SourceRemote}})

	verdict := reconciler.Reconcile(context.Background(), "Achei o ritmo muito lento")
	if verdict.Sentiment != Neutral {
		t.Errorf("Expected downgrade to neutral, got %s", verdict.Sentiment)
	}
}

func TestReconcileConfidentClassifierNotOverridden(t *testing.T) {
	// One positive keyword is not enough against a confident negative verdict.
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Negative, Confidence: 0.85, Source: SourceRemote}})

	verdict := reconciler.Reconcile(context.Background(), "O material era claro mas não serviu para nada")
	if verdict.Sentiment != Negative {
		t.Errorf("Expected classifier verdict to stand, got %s", verdict.Sentiment)
	}
	if verdict.Confidence != 0.85 {
		t.Errorf("Expected classifier confidence unchanged, got %f", verdict.Confidence)
	}
}

func TestReconcileAdoptsClassifierByDefault(t *testing.T) {
	reconciler := NewReconciler(stubClassifier{ClassifierVerdict{Label: Positive, Confidence: 0.72, Source: SourceRemote}})

	// No keywords at all.
	verdict := reconciler.Reconcile(context.Background(), "A sessão aconteceu na terça-feira")
	if verdict.Sentiment != Positive || verdict.Confidence != 0.72 {
		t.Errorf("Expected classifier verdict adopted unchanged, got %+v", verdict)
	}
	if len(verdict.Evidence.Positive) != 0 || len(verdict.Evidence.Negative) != 0 {
		t.Errorf("Expected empty evidence, got %+v", verdict.Evidence)
	}
}
