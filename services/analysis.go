package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"opina/config"
	"opina/db"
	"opina/internal/alerts"
	"opina/models"
	"opina/sentiment"
	ws "opina/websocket"
)

const maxConsolidatedLen = 1000

// AnalysisService runs the hybrid sentiment pipeline over an answered survey
// and persists the result, firing alerts when dissatisfaction is detected.
type AnalysisService struct {
	analyzer *sentiment.Analyzer
	email    *EmailService
	cfg      *config.Config
}

var analysisService *AnalysisService

// InitAnalysisService wires the classifier and email service once at startup.
func InitAnalysisService(cfg *config.Config) *AnalysisService {
	classifier := sentiment.NewZhipuClassifier(cfg.Zhipu.ApiKey, cfg.Zhipu.BaseURL, cfg.Zhipu.Model)
	if cfg.Zhipu.RetryAttempts > 0 {
		classifier = classifier.WithRetryPolicy(sentiment.RetryPolicy{
			MaxAttempts: cfg.Zhipu.RetryAttempts,
			Delay:       time.Duration(cfg.Zhipu.RetryDelaySec) * time.Second,
		})
	}
	analysisService = &AnalysisService{
		analyzer: sentiment.NewAnalyzer(classifier),
		email:    NewEmailService(cfg),
		cfg:      cfg,
	}
	return analysisService
}

func GetAnalysisService() *AnalysisService {
	return analysisService
}

// ProcessSurvey scores the survey's stored answers and persists the analysis.
// The survey is marked as processed up front so concurrent runs cannot score
// it twice.
func (s *AnalysisService) ProcessSurvey(ctx context.Context, survey *models.Survey) (*models.SentimentAnalysis, error) {
	stored, err := db.ListAnswersBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for survey %s: %w", survey.UUID, err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("survey %s has no answers", survey.UUID)
	}

	if err := db.MarkSurveyProcessed(ctx, survey.ID); err != nil {
		return nil, err
	}

	answers := make([]sentiment.Answer, 0, len(stored))
	for _, a := range stored {
		answers = append(answers, sentiment.ClassifyAnswer(a.Question, a.Value))
	}

	result := s.analyzer.Aggregate(ctx, answers)

	consolidated := result.ConsolidatedText
	if len([]rune(consolidated)) > maxConsolidatedLen {
		consolidated = string([]rune(consolidated)[:maxConsolidatedLen])
	}

	analysis := &models.SentimentAnalysis{
		SurveyID:         survey.ID,
		ProductType:      survey.ProductType,
		ConsolidatedText: consolidated,
		Sentiment:        string(result.OverallSentiment),
		Confidence:       result.OverallConfidence,
		HybridScore:      result.TotalScore,
		Reason:           result.DissatisfactionReason,
		ShouldAlert:      result.ShouldAlert,
		Model:            s.cfg.Zhipu.Model,
		Warnings:         result.Warnings,
		CreatedAt:        time.Now(),
	}
	if err := db.SaveAnalysis(ctx, *analysis); err != nil {
		return nil, err
	}

	log.Printf("Survey %s analyzed: sentiment=%s score=%d alert=%v",
		survey.UUID, analysis.Sentiment, analysis.HybridScore, analysis.ShouldAlert)

	if analysis.ShouldAlert {
		s.dispatchAlert(ctx, survey, analysis)
	}
	return analysis, nil
}

// ProcessSurveyAsync runs the pipeline in the background so a slow classifier
// never delays the client's submission response.
func (s *AnalysisService) ProcessSurveyAsync(survey *models.Survey) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.ProcessSurvey(ctx, survey); err != nil {
			log.Printf("Background analysis failed for survey %s: %v", survey.UUID, err)
		}
	}()
}

func (s *AnalysisService) dispatchAlert(ctx context.Context, survey *models.Survey, analysis *models.SentimentAnalysis) {
	event := alerts.Event{
		SurveyID:    survey.ID.Hex(),
		SurveyUUID:  survey.UUID,
		ClientName:  survey.ClientName,
		ProductType: survey.ProductType,
		AgentName:   survey.AgentName,
		Sentiment:   analysis.Sentiment,
		Confidence:  analysis.Confidence,
		HybridScore: analysis.HybridScore,
		Reason:      analysis.Reason,
		Timestamp:   time.Now(),
	}
	// Without Redis there is no stream consumer, so feed the hub directly.
	if alerts.GetRedisClient() == nil {
		ws.GetAlertHub().BroadcastAlert(event)
	} else if err := alerts.Publish(event); err != nil {
		log.Printf("Failed to publish alert for survey %s: %v", survey.UUID, err)
		ws.GetAlertHub().BroadcastAlert(event)
	}

	if _, err := s.email.SendDissatisfactionAlert(ctx, survey, analysis); err != nil {
		log.Printf("Failed to email alert for survey %s: %v", survey.UUID, err)
	}
}
