package main

import (
	"log"
	"os"
	"strconv"

	"opina/config"
	"opina/controllers"
	"opina/db"
	"opina/internal/alerts"
	"opina/middlewares"
	"opina/models"
	"opina/services"
	"opina/utils"
	"opina/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret, cfg.JWT.Expiry)
	controllers.SetConfig(cfg)
	services.InitAnalysisService(cfg)

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := alerts.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		// The platform degrades gracefully without Redis: no stream fan-out,
		// permissive submission limits.
		log.Printf("Redis unavailable, continuing without it: %v", err)
	}

	utils.SeedBaseData()

	consumer := alerts.NewStreamConsumer(websocket.GetAlertHub())
	if err := consumer.Start(); err != nil {
		log.Printf("Alert stream consumer not started: %v", err)
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.BaseURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes: login plus the client-facing survey form
	router.POST("/login", controllers.Login)
	router.GET("/s/:uuid", controllers.GetSurveyForm)
	router.POST("/s/:uuid/respostas", controllers.SubmitAnswers)

	// Agent routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/surveys", controllers.CreateSurvey)
		auth.GET("/surveys", controllers.ListMySurveys)

		// Manager-only dashboard
		dashboard := auth.Group("/dashboard")
		dashboard.Use(middlewares.RequireRole(models.RoleGestor))
		{
			dashboard.GET("/metrics", controllers.DashboardMetrics)
			dashboard.GET("/analises", controllers.ListAnalyses)
			dashboard.GET("/alertas", controllers.RecentAlerts)
			dashboard.GET("/pesquisas/:id", controllers.GetSurveyDetail)
		}

		// Live dissatisfaction alert feed, manager-only
		auth.GET("/ws/alertas", middlewares.RequireRole(models.RoleGestor), websocket.AlertFeedHandler)
	}

	return router
}
