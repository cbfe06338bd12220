package controllers

import (
	"fmt"
	"log"
	"time"

	"opina/config"
	"opina/db"
	"opina/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey links stay valid for 48 hours after creation.
const surveyLinkTTL = 48 * time.Hour

var serverConfig *config.Config

// SetConfig hands the loaded configuration to the controllers.
func SetConfig(cfg *config.Config) {
	serverConfig = cfg
}

type createSurveyRequest struct {
	ProductType  string `json:"productType" binding:"required"`
	ClientCode   string `json:"clientCode" binding:"required"`
	ClientName   string `json:"clientName" binding:"required"`
	TrainingName string `json:"trainingName" binding:"required"`
}

// CreateSurvey generates a new single-use survey link for a client.
func CreateSurvey(ctx *gin.Context) {
	var request createSurveyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	agentID, err := primitive.ObjectIDFromHex(ctx.GetString("userId"))
	if err != nil {
		ctx.JSON(401, gin.H{"error": "Invalid session"})
		return
	}

	questions, err := db.ListActiveQuestions(ctx.Request.Context(), request.ProductType)
	if err != nil || len(questions) == 0 {
		ctx.JSON(400, gin.H{"error": "Invalid product type", "message": "No active questions for this product"})
		return
	}

	survey := models.Survey{
		UUID:         uuid.New().String(),
		AgentID:      agentID,
		AgentName:    ctx.GetString("userEmail"),
		ProductType:  request.ProductType,
		ClientCode:   request.ClientCode,
		ClientName:   request.ClientName,
		TrainingName: request.TrainingName,
		ExpiresAt:    time.Now().Add(surveyLinkTTL),
		CreatedAt:    time.Now(),
	}

	id, err := db.CreateSurvey(ctx.Request.Context(), survey)
	if err != nil {
		log.Println("Error creating survey:", err)
		ctx.JSON(500, gin.H{"error": "Failed to create survey"})
		return
	}

	ctx.JSON(201, gin.H{
		"message":   "Survey created",
		"surveyId":  id.Hex(),
		"uuid":      survey.UUID,
		"link":      fmt.Sprintf("%s/s/%s", serverConfig.Server.BaseURL, survey.UUID),
		"expiresAt": survey.ExpiresAt,
	})
}

// ListMySurveys returns the authenticated agent's surveys, newest first.
func ListMySurveys(ctx *gin.Context) {
	agentID, err := primitive.ObjectIDFromHex(ctx.GetString("userId"))
	if err != nil {
		ctx.JSON(401, gin.H{"error": "Invalid session"})
		return
	}

	surveys, err := db.ListSurveysByAgent(ctx.Request.Context(), agentID)
	if err != nil {
		log.Println("Error listing surveys:", err)
		ctx.JSON(500, gin.H{"error": "Failed to list surveys"})
		return
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}

	ctx.JSON(200, gin.H{"surveys": surveys})
}
