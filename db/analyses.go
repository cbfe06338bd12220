package db

import (
	"context"
	"fmt"
	"log"

	"opina/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveAnalysis persists one sentiment analysis document
func SaveAnalysis(ctx context.Context, analysis models.SentimentAnalysis) error {
	_, err := GetCollection("sentiment_analyses").InsertOne(ctx, analysis)
	if err != nil {
		log.Printf("Error saving sentiment analysis for survey %s: %v", analysis.SurveyID.Hex(), err)
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysisBySurvey returns the stored analysis for one survey, if any
func GetAnalysisBySurvey(ctx context.Context, surveyID primitive.ObjectID) (*models.SentimentAnalysis, error) {
	var analysis models.SentimentAnalysis
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := GetCollection("sentiment_analyses").FindOne(ctx, bson.M{"surveyId": surveyID}, opts).Decode(&analysis)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalysisFilter narrows dashboard analysis listings
type AnalysisFilter struct {
	Sentiment   string
	ProductType string
	AlertOnly   bool
	Page        int64
	PageSize    int64
}

// ListAnalyses returns paginated analyses, newest first
func ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.SentimentAnalysis, int64, error) {
	query := bson.M{}
	if filter.Sentiment != "" {
		query["sentiment"] = filter.Sentiment
	}
	if filter.ProductType != "" {
		query["productType"] = filter.ProductType
	}
	if filter.AlertOnly {
		query["shouldAlert"] = true
	}

	collection := GetCollection("sentiment_analyses")
	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * pageSize).
		SetLimit(pageSize)

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var analyses []models.SentimentAnalysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

// SentimentCounts aggregates analyses per sentiment label
func SentimentCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$sentiment", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := GetCollection("sentiment_analyses").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := map[string]int64{}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// SaveEmailLog records one alert email attempt
func SaveEmailLog(ctx context.Context, entry models.EmailLog) {
	if _, err := GetCollection("email_log").InsertOne(ctx, entry); err != nil {
		log.Printf("Error saving email log entry: %v", err)
	}
}
