package controllers

import (
	"log"
	"strings"
	"time"

	"opina/db"
	"opina/internal/alerts"
	"opina/models"
	"opina/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetSurveyForm serves the public survey: its questions plus client context.
// Expired and already answered links get distinct states so the frontend can
// render the right message.
func GetSurveyForm(ctx *gin.Context) {
	survey, err := db.GetSurveyByUUID(ctx.Request.Context(), ctx.Param("uuid"))
	if err != nil {
		ctx.JSON(404, gin.H{"error": "Survey not found", "status": "nao_encontrada"})
		return
	}

	if survey.Answered {
		ctx.JSON(410, gin.H{"error": "Survey already answered", "status": "ja_respondida"})
		return
	}
	if time.Now().After(survey.ExpiresAt) {
		ctx.JSON(410, gin.H{"error": "Survey link expired", "status": "expirada"})
		return
	}

	questions, err := db.ListActiveQuestions(ctx.Request.Context(), survey.ProductType)
	if err != nil {
		log.Println("Error loading questions:", err)
		ctx.JSON(500, gin.H{"error": "Failed to load survey"})
		return
	}

	ctx.JSON(200, gin.H{
		"status":       "disponivel",
		"clientName":   survey.ClientName,
		"trainingName": survey.TrainingName,
		"productType":  survey.ProductType,
		"questions":    questions,
	})
}

type submitAnswersRequest struct {
	Answers []struct {
		QuestionID string `json:"questionId" binding:"required"`
		Value      string `json:"value"`
	} `json:"answers" binding:"required"`
}

// SubmitAnswers receives the client's answers, persists them and kicks off
// sentiment analysis in the background. The client never waits on the
// classifier.
func SubmitAnswers(ctx *gin.Context) {
	clientIP := ctx.ClientIP()
	allowed, err := alerts.NewSubmissionLimiter().Allow(clientIP, alerts.DefaultSubmissionLimitConfig())
	if err != nil {
		log.Println("Rate limiter error:", err)
	}
	if !allowed {
		ctx.JSON(429, gin.H{"error": "Too many submissions", "message": "Tente novamente em alguns minutos"})
		return
	}

	survey, err := db.GetSurveyByUUID(ctx.Request.Context(), ctx.Param("uuid"))
	if err != nil {
		ctx.JSON(404, gin.H{"error": "Survey not found"})
		return
	}
	if survey.Answered {
		ctx.JSON(410, gin.H{"error": "Survey already answered"})
		return
	}
	if time.Now().After(survey.ExpiresAt) {
		ctx.JSON(410, gin.H{"error": "Survey link expired"})
		return
	}

	var request submitAnswersRequest
	if err := ctx.ShouldBindJSON(&request); err != nil || len(request.Answers) == 0 {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "At least one answer is required"})
		return
	}

	questions, err := db.ListActiveQuestions(ctx.Request.Context(), survey.ProductType)
	if err != nil {
		log.Println("Error loading questions:", err)
		ctx.JSON(500, gin.H{"error": "Failed to load survey"})
		return
	}
	questionByID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID.Hex()] = q
	}

	now := time.Now()
	answers := make([]models.SurveyAnswer, 0, len(request.Answers))
	for _, a := range request.Answers {
		question, ok := questionByID[a.QuestionID]
		if !ok {
			ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Unknown question: " + a.QuestionID})
			return
		}
		value := strings.TrimSpace(a.Value)
		if question.Required && value == "" {
			ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Required question unanswered: " + question.Text})
			return
		}
		answers = append(answers, models.SurveyAnswer{
			SurveyID:   survey.ID,
			QuestionID: question.ID,
			Question:   question.Text,
			Value:      value,
			CreatedAt:  now,
		})
	}
	for _, q := range questions {
		if q.Required {
			if _, answered := answeredQuestion(answers, q.ID); !answered {
				ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Required question unanswered: " + q.Text})
				return
			}
		}
	}

	if err := db.SaveAnswers(ctx.Request.Context(), answers); err != nil {
		log.Println("Error saving answers:", err)
		ctx.JSON(500, gin.H{"error": "Failed to save answers"})
		return
	}
	if err := db.MarkSurveyAnswered(ctx.Request.Context(), survey.ID, clientIP); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to record submission"})
		return
	}

	// Scoring failures must never surface to the client.
	services.GetAnalysisService().ProcessSurveyAsync(survey)

	ctx.JSON(200, gin.H{"message": "Obrigado pela sua resposta!"})
}

func answeredQuestion(answers []models.SurveyAnswer, questionID primitive.ObjectID) (models.SurveyAnswer, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID && a.Value != "" {
			return a, true
		}
	}
	return models.SurveyAnswer{}, false
}
