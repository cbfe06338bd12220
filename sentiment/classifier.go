package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Label is a normalized sentiment label.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Source records whether a verdict came from the remote model or from the
// local keyword fallback.
type Source string

const (
	SourceRemote   Source = "zhipu_ai"
	SourceFallback Source = "fallback_palavras_chave"
)

// ClassifierVerdict is the outcome of one classification call.
type ClassifierVerdict struct {
	Label      Label
	Confidence float64
	Source     Source
}

// Classifier turns free text into a sentiment verdict. Implementations never
// return an error: every failure mode resolves to a fallback verdict.
type Classifier interface {
	Classify(ctx context.Context, text string) ClassifierVerdict
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:\-()]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeText strips markup and stray control characters and collapses
// whitespace before a text is classified.
func NormalizeText(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = specialCharPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ZhipuClassifier calls the ZHIPU GLM chat-completions endpoint (OpenAI
// compatible) and maps its JSON answer onto a verdict. Responses are cached
// per normalized text and remote calls are rate limited.
type ZhipuClassifier struct {
	client  *openai.Client
	model   string
	retry   RetryPolicy
	limiter *rate.Limiter
	cache   *gocache.Cache
}

// NewZhipuClassifier builds a classifier for the given API key. baseURL and
// model default to the ZHIPU open platform and glm-4-flash when empty.
func NewZhipuClassifier(apiKey, baseURL, model string) *ZhipuClassifier {
	if baseURL == "" {
		baseURL = "https://open.bigmodel.cn/api/paas/v4"
	}
	if model == "" {
		model = "glm-4-flash"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	return &ZhipuClassifier{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		retry:   DefaultRetryPolicy(),
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		cache:   gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// WithRetryPolicy replaces the retry policy. Tests use a zero-delay policy.
func (z *ZhipuClassifier) WithRetryPolicy(policy RetryPolicy) *ZhipuClassifier {
	z.retry = policy
	return z
}

// Model returns the remote model identifier used for persistence markers.
func (z *ZhipuClassifier) Model() string {
	return z.model
}

const classifierPrompt = `Você é um analisador de sentimento especializado em português.
Analise o seguinte texto e responda APENAS em JSON, sem explicações adicionais.

Texto: "%s"

Responda EXATAMENTE neste formato JSON (sem markdown, sem texto adicional):
{"sentimento": "positive" ou "negative" ou "neutral", "confianca": valor entre 0.0 e 1.0, "resumo": "breve resumo"}`

// Classify sends the normalized text to the remote model with bounded
// retries. Texts shorter than 3 characters short-circuit to a neutral
// verdict without any network call. After the retry budget is exhausted the
// verdict is derived locally from the keyword lexicon.
func (z *ZhipuClassifier) Classify(ctx context.Context, text string) ClassifierVerdict {
	cleaned := NormalizeText(text)
	if len([]rune(cleaned)) < 3 {
		return ClassifierVerdict{Label: Neutral, Confidence: 0.5, Source: SourceFallback}
	}

	if cached, found := z.cache.Get(cleaned); found {
		return cached.(ClassifierVerdict)
	}

	var lastErr error
	for attempt := 1; attempt <= z.retry.MaxAttempts; attempt++ {
		verdict, err := z.classifyOnce(ctx, cleaned)
		if err == nil {
			z.cache.Set(cleaned, verdict, gocache.DefaultExpiration)
			return verdict
		}

		lastErr = err
		log.Printf("Sentiment classification attempt %d/%d failed: %v", attempt, z.retry.MaxAttempts, err)
		if attempt < z.retry.MaxAttempts {
			z.retry.sleep(ctx)
		}
	}

	log.Printf("All classification attempts failed, using keyword fallback: %v", lastErr)
	return keywordFallback(cleaned)
}

func (z *ZhipuClassifier) classifyOnce(ctx context.Context, text string) (ClassifierVerdict, error) {
	if err := z.limiter.Wait(ctx); err != nil {
		return ClassifierVerdict{}, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := z.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: z.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(classifierPrompt, text)},
		},
		Temperature: 0.3,
		TopP:        0.7,
	})
	if err != nil {
		return ClassifierVerdict{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ClassifierVerdict{}, fmt.Errorf("empty completion response")
	}

	return parseModelVerdict(resp.Choices[0].Message.Content)
}

func parseModelVerdict(raw string) (ClassifierVerdict, error) {
	var payload struct {
		Sentimento string  `json:"sentimento"`
		Confianca  float64 `json:"confianca"`
		Resumo     string  `json:"resumo"`
	}

	if err := json.Unmarshal([]byte(cleanModelOutput(raw)), &payload); err != nil {
		return ClassifierVerdict{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	label := Label(payload.Sentimento)
	if label != Positive && label != Negative && label != Neutral {
		label = Neutral
	}

	confidence := payload.Confianca
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return ClassifierVerdict{Label: label, Confidence: confidence, Source: SourceRemote}, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// keywordFallback derives a deterministic verdict from the lexicon alone.
func keywordFallback(text string) ClassifierVerdict {
	match := MatchKeywords(text)
	switch {
	case match.Score >= 2:
		return ClassifierVerdict{Label: Positive, Confidence: 0.8, Source: SourceFallback}
	case match.Score <= -2:
		return ClassifierVerdict{Label: Negative, Confidence: 0.8, Source: SourceFallback}
	default:
		return ClassifierVerdict{Label: Neutral, Confidence: 0.6, Source: SourceFallback}
	}
}
