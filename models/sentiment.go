package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SentimentAnalysis is the persisted outcome of one hybrid aggregation run
// over a survey's answers.
type SentimentAnalysis struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID         primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	ProductType      string             `bson:"productType" json:"productType"`
	ConsolidatedText string             `bson:"consolidatedText" json:"consolidatedText"` // truncated to 1000 chars
	Sentiment        string             `bson:"sentiment" json:"sentiment"`
	Confidence       float64            `bson:"confidence" json:"confidence"`
	HybridScore      int                `bson:"hybridScore" json:"hybridScore"`
	Reason           string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ShouldAlert      bool               `bson:"shouldAlert" json:"shouldAlert"`
	Model            string             `bson:"model" json:"model"` // remote model/version marker
	Warnings         []string           `bson:"warnings,omitempty" json:"warnings,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// EmailLog records each alert email attempt, successful or not.
type EmailLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID  primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	Recipient string             `bson:"recipient" json:"recipient"`
	Subject   string             `bson:"subject" json:"subject"`
	Sent      bool               `bson:"sent" json:"sent"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
