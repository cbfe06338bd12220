package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"opina/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateSurvey inserts a new survey link document
func CreateSurvey(ctx context.Context, survey models.Survey) (primitive.ObjectID, error) {
	result, err := GetCollection("surveys").InsertOne(ctx, survey)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create survey: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// GetSurveyByUUID retrieves a survey by its public link uuid
func GetSurveyByUUID(ctx context.Context, uuid string) (*models.Survey, error) {
	var survey models.Survey
	err := GetCollection("surveys").FindOne(ctx, bson.M{"uuid": uuid}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("survey not found: %s", uuid)
		}
		return nil, err
	}
	return &survey, nil
}

// GetSurveyByID retrieves a survey by object id
func GetSurveyByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	err := GetCollection("surveys").FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("survey not found: %s", id.Hex())
		}
		return nil, err
	}
	return &survey, nil
}

// ListSurveysByAgent returns all surveys created by one agent, newest first
func ListSurveysByAgent(ctx context.Context, agentID primitive.ObjectID) ([]models.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := GetCollection("surveys").Find(ctx, bson.M{"agentId": agentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []models.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// MarkSurveyAnswered flips the answered flag and records when and from where
func MarkSurveyAnswered(ctx context.Context, surveyID primitive.ObjectID, clientIP string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"answered":   true,
		"answeredAt": now,
		"answeredIp": clientIP,
	}}
	_, err := GetCollection("surveys").UpdateOne(ctx, bson.M{"_id": surveyID}, update)
	if err != nil {
		log.Printf("Error marking survey %s answered: %v", surveyID.Hex(), err)
	}
	return err
}

// MarkSurveyProcessed records that the sentiment pipeline ran for a survey.
// Set before processing starts to guard against duplicate reprocessing.
func MarkSurveyProcessed(ctx context.Context, surveyID primitive.ObjectID) error {
	_, err := GetCollection("surveys").UpdateOne(ctx,
		bson.M{"_id": surveyID},
		bson.M{"$set": bson.M{"processed": true}})
	return err
}

// ListUnprocessedSurveys returns answered surveys the engine has not scored yet
func ListUnprocessedSurveys(ctx context.Context, limit int64) ([]models.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "answeredAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := GetCollection("surveys").Find(ctx, bson.M{"answered": true, "processed": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []models.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// SaveAnswers persists the raw submitted answers for a survey
func SaveAnswers(ctx context.Context, answers []models.SurveyAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	docs := make([]interface{}, len(answers))
	for i, answer := range answers {
		docs[i] = answer
	}
	_, err := GetCollection("answers").InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to save answers: %w", err)
	}
	return nil
}

// ListAnswersBySurvey returns the stored answers for one survey in insertion
// order, which is the order the client answered in
func ListAnswersBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]models.SurveyAnswer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := GetCollection("answers").Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []models.SurveyAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// ListActiveQuestions returns the active questions for a product type in form order
func ListActiveQuestions(ctx context.Context, productType string) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := GetCollection("questions").Find(ctx,
		bson.M{"productType": productType, "active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
