package alerts

import "time"

// Event is a dissatisfaction alert published to the Redis stream and
// broadcast to dashboard clients.
type Event struct {
	SurveyID    string    `json:"surveyId"`
	SurveyUUID  string    `json:"surveyUuid"`
	ClientName  string    `json:"clientName"`
	ProductType string    `json:"productType"`
	AgentName   string    `json:"agentName"`
	Sentiment   string    `json:"sentiment"`
	Confidence  float64   `json:"confidence"`
	HybridScore int       `json:"hybridScore"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
