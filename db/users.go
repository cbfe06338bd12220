package db

import (
	"context"
	"fmt"

	"opina/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUserByEmail retrieves an active user by email
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := GetCollection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %s", email)
		}
		return nil, err
	}
	return &user, nil
}

// ListManagersForProduct returns active managers subscribed to alerts for a
// product type
func ListManagersForProduct(ctx context.Context, productType string) ([]models.User, error) {
	cursor, err := GetCollection("users").Find(ctx, bson.M{
		"role":          models.RoleGestor,
		"active":        true,
		"alertProducts": productType,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var managers []models.User
	if err := cursor.All(ctx, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}
