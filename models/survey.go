package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductType groups surveys and questions, e.g. "Time is Money" trainings
// or "Servidor em Nuvem" onboardings.
type ProductType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Question kinds mirror how answers are rendered and later scored.
const (
	QuestionFreeText          = "texto_livre"
	QuestionNumericScale      = "escala_numerica"
	QuestionSatisfactionScale = "escala_satisfacao"
	QuestionYesNo             = "sim_nao"
)

// Question belongs to a product type and is shown in order on the survey form.
type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductType string             `bson:"productType" json:"productType"`
	Kind        string             `bson:"kind" json:"kind"`
	Text        string             `bson:"text" json:"text"`
	Order       int                `bson:"order" json:"order"`
	Required    bool               `bson:"required" json:"required"`
	Active      bool               `bson:"active" json:"active"`
	Options     []string           `bson:"options,omitempty" json:"options,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Survey is one link generated by an agent for one client.
type Survey struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UUID         string             `bson:"uuid" json:"uuid"`
	AgentID      primitive.ObjectID `bson:"agentId" json:"agentId"`
	AgentName    string             `bson:"agentName" json:"agentName"`
	ProductType  string             `bson:"productType" json:"productType"`
	ClientCode   string             `bson:"clientCode" json:"clientCode"`
	ClientName   string             `bson:"clientName" json:"clientName"`
	TrainingName string             `bson:"trainingName" json:"trainingName"`
	ExpiresAt    time.Time          `bson:"expiresAt" json:"expiresAt"`
	Answered     bool               `bson:"answered" json:"answered"`
	AnsweredAt   *time.Time         `bson:"answeredAt,omitempty" json:"answeredAt,omitempty"`
	AnsweredIP   string             `bson:"answeredIp,omitempty" json:"answeredIp,omitempty"`
	Processed    bool               `bson:"processed" json:"processed"` // sentiment analysis completed
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// SurveyAnswer stores one raw client answer before any scoring.
type SurveyAnswer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID   primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	QuestionID primitive.ObjectID `bson:"questionId" json:"questionId"`
	Question   string             `bson:"question" json:"question"`
	Value      string             `bson:"value" json:"value"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
