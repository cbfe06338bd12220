package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestServer(t *testing.T, calls *int32, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		handler(w, r)
	}))
}

func completionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"role": "assistant", "content": content}},
		},
	}
}

func TestClassifyShortTextSkipsNetwork(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse(`{"sentimento": "positive", "confianca": 0.9}`))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	verdict := classifier.Classify(context.Background(), "ok")
	if verdict.Label != Neutral || verdict.Confidence != 0.5 {
		t.Errorf("Expected neutral@0.5 for short text, got %+v", verdict)
	}
	if verdict.Source != SourceFallback {
		t.Errorf("Expected fallback source, got %s", verdict.Source)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("Expected zero network calls for short text, got %d", calls)
	}
}

func TestClassifyRemoteSuccess(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse(`{"sentimento": "negative", "confianca": 0.92, "resumo": "cliente insatisfeito"}`))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	verdict := classifier.Classify(context.Background(), "Achei tudo muito confuso")
	if verdict.Label != Negative {
		t.Errorf("Expected negative label, got %s", verdict.Label)
	}
	if verdict.Confidence != 0.92 {
		t.Errorf("Expected confidence 0.92, got %f", verdict.Confidence)
	}
	if verdict.Source != SourceRemote {
		t.Errorf("Expected remote source, got %s", verdict.Source)
	}
}

func TestClassifyStripsMarkdownFences(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("```json\n{\"sentimento\": \"positive\", \"confianca\": 0.8}\n```"))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	verdict := classifier.Classify(context.Background(), "Gostei bastante do treinamento")
	if verdict.Label != Positive || verdict.Confidence != 0.8 {
		t.Errorf("Expected positive@0.8 after fence stripping, got %+v", verdict)
	}
}

func TestClassifyUnknownLabelDefaultsToNeutral(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse(`{"sentimento": "ambivalente", "confianca": 0.7}`))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	verdict := classifier.Classify(context.Background(), "Texto qualquer para análise")
	if verdict.Label != Neutral {
		t.Errorf("Expected unknown label to default to neutral, got %s", verdict.Label)
	}
}

func TestClassifyServerErrorRetriesThenFallsBack(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	// Text with two negative keywords so the fallback is deterministic.
	verdict := classifier.Classify(context.Background(), "Achei tudo confuso e perdi tempo com isso")
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", calls)
	}
	if verdict.Source != SourceFallback {
		t.Errorf("Expected fallback source after exhausted retries, got %s", verdict.Source)
	}
	if verdict.Label != Negative || verdict.Confidence != 0.8 {
		t.Errorf("Expected keyword fallback negative@0.8, got %+v", verdict)
	}
}

func TestClassifyMalformedPayloadFallsBack(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("desculpe, não consigo responder em JSON"))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	verdict := classifier.Classify(context.Background(), "Um texto neutro sobre o curso")
	if verdict.Source != SourceFallback {
		t.Errorf("Expected fallback for unparseable payload, got %+v", verdict)
	}
	if verdict.Label != Neutral || verdict.Confidence != 0.6 {
		t.Errorf("Expected neutral@0.6 keyword fallback, got %+v", verdict)
	}
}

func TestClassifyCachesVerdicts(t *testing.T) {
	var calls int32
	server := newTestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse(`{"sentimento": "positive", "confianca": 0.9}`))
	})
	defer server.Close()

	classifier := NewZhipuClassifier("test-key", server.URL, "glm-4-flash").
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3})

	text := "O treinamento foi excelente"
	first := classifier.Classify(context.Background(), text)
	second := classifier.Classify(context.Background(), text)

	if first != second {
		t.Errorf("Expected identical cached verdict, got %+v vs %+v", first, second)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected a single remote call, got %d", calls)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Bom  curso</p>", "Bom curso"},
		{"  texto\t com   espaços  ", "texto com espaços"},
		{"ótimo@#$%curso", "ótimo curso"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
