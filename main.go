package main

import (
	"log"
	"os"

	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/controllers"
	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config.Load()

	// Connect to PostgreSQL database
	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Set the global DB in the config package and migrate models
	controllers.MigrateModels(db)

	// Service clients
	controllers.PredictorClient = utils.NewPredictor(config.App.PredictionAPIURL)
	if config.App.WeatherAPIKey != "" {
		controllers.WeatherClient = utils.NewWeatherClient(config.App.WeatherAPIKey, config.App.WeatherAPIBaseURL)
		scheduler := controllers.StartClimateRefresh(db, controllers.WeatherClient, config.App.ClimateRefreshInterval)
		defer scheduler.Stop()
	} else {
		log.Println("WEATHERAPI_KEY not set; climate lookup disabled")
	}

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.POST("/signup", controllers.Signup)
	r.POST("/login", controllers.Login)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/ws", controllers.HandleWebSocket)
	auth.GET("/profile", controllers.GetProfile)
	auth.GET("/overview", controllers.GetOverview)
	auth.GET("/climate", controllers.GetClimate)
	auth.POST("/predict", controllers.Predict)
	auth.POST("/scenario", controllers.SetScenario)
	auth.GET("/history", controllers.GetHistory)
	auth.DELETE("/history", controllers.ClearHistory)
	auth.GET("/history/export", controllers.DownloadHistoryCSV)

	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatal(err)
	}
}
