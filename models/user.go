package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAgente = "agente"
	RoleGestor = "gestor"
)

// User is an internal platform user: agents generate survey links, managers
// monitor results and receive dissatisfaction alerts.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"` // "agente" or "gestor"
	Active       bool               `bson:"active" json:"active"`
	// Product types this manager receives dissatisfaction alerts for.
	AlertProducts []string  `bson:"alertProducts,omitempty" json:"alertProducts,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
