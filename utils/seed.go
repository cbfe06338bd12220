package utils

import (
	"context"
	"log"
	"time"

	"opina/db"
	"opina/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedBaseData populates product types, their question sets and default users
// on an empty database. Existing data is left untouched.
func SeedBaseData() {
	seedProductTypes()
	seedQuestions()
	seedUsers()
}

func seedProductTypes() {
	collection := db.MongoDatabase.Collection("product_types")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	now := time.Now()
	products := []models.ProductType{
		{Name: "Time is Money", Description: "Treinamento do sistema Time is Money", Active: true, CreatedAt: now},
		{Name: "Servidor em Nuvem", Description: "Onboarding de servidor em nuvem", Active: true, CreatedAt: now},
	}

	var documents []interface{}
	for _, product := range products {
		documents = append(documents, product)
	}
	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Println("Error seeding product types:", err)
	}
}

func seedQuestions() {
	collection := db.MongoDatabase.Collection("questions")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	now := time.Now()
	var documents []interface{}
	for _, product := range []string{"Time is Money", "Servidor em Nuvem"} {
		questions := []models.Question{
			{
				ProductType: product,
				Kind:        models.QuestionNumericScale,
				Text:        "De 0 a 10, qual nota você dá para o treinamento?",
				Order:       1,
				Required:    true,
				Active:      true,
			},
			{
				ProductType: product,
				Kind:        models.QuestionSatisfactionScale,
				Text:        "Como você avalia a clareza das explicações?",
				Order:       2,
				Required:    true,
				Active:      true,
				Options:     []string{"Muito satisfeito", "Satisfeito", "Neutro", "Insatisfeito", "Muito insatisfeito"},
			},
			{
				ProductType: product,
				Kind:        models.QuestionYesNo,
				Text:        "Você recomenda este treinamento para outras pessoas?",
				Order:       3,
				Required:    true,
				Active:      true,
				Options:     []string{"Sim", "Não"},
			},
			{
				ProductType: product,
				Kind:        models.QuestionYesNo,
				Text:        "Você teve alguma dificuldade durante o treinamento?",
				Order:       4,
				Required:    false,
				Active:      true,
				Options:     []string{"Sim", "Não"},
			},
			{
				ProductType: product,
				Kind:        models.QuestionFreeText,
				Text:        "Deixe seus comentários ou sugestões sobre o treinamento",
				Order:       5,
				Required:    false,
				Active:      true,
			},
		}
		for _, question := range questions {
			question.CreatedAt = now
			question.UpdatedAt = now
			documents = append(documents, question)
		}
	}

	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Println("Error seeding questions:", err)
	}
}

func seedUsers() {
	collection := db.MongoDatabase.Collection("users")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	now := time.Now()
	agentHash, err := HashPassword("agente123")
	if err != nil {
		log.Println("Error hashing seed password:", err)
		return
	}
	managerHash, err := HashPassword("gestor123")
	if err != nil {
		log.Println("Error hashing seed password:", err)
		return
	}

	users := []models.User{
		{
			Name:         "Agente Padrão",
			Email:        "agente@example.com",
			PasswordHash: agentHash,
			Role:         models.RoleAgente,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			Name:          "Gestor Padrão",
			Email:         "gestor@example.com",
			PasswordHash:  managerHash,
			Role:          models.RoleGestor,
			Active:        true,
			AlertProducts: []string{"Time is Money", "Servidor em Nuvem"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	var documents []interface{}
	for _, user := range users {
		documents = append(documents, user)
	}
	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Println("Error seeding users:", err)
	}
}
