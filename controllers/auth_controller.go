package controllers

import (
	"log"

	"opina/db"
	"opina/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an agent or manager and issues a session token.
func Login(ctx *gin.Context) {
	var request loginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	user, err := db.GetUserByEmail(ctx.Request.Context(), request.Email)
	if err != nil || !user.Active {
		ctx.JSON(401, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		ctx.JSON(401, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		log.Println("Error generating token:", err)
		ctx.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(200, gin.H{
		"message":     "Sign-in successful",
		"accessToken": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
