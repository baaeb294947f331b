package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/models"
	"github.com/Dheeraj-cr7/FarmApp/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest carries the credentials plus the farm setup collected on the
// final sign-up screen.
type SignupRequest struct {
	FullName          string  `json:"full_name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=6"`
	CurrentCrop       string  `json:"current_crop" binding:"required"`
	SoilType          string  `json:"soil_type" binding:"required"`
	FarmSizeAcres     float64 `json:"farm_size_acres" binding:"required,gt=0"`
	FarmLocation      string  `json:"farm_location" binding:"required"`
	FertilizerHistory string  `json:"fertilizer_history"`
}

// Signup registers a new user and seeds their farm: profile, farm details
// (climate defaults resolved from the farm location when possible) and a
// generated initial crop snapshot.
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if !utils.ValidCrop(req.CurrentCrop) || !utils.ValidSoil(req.SoilType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown crop or soil type"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	user := models.User{Email: req.Email, Password: string(hashedPassword)}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	if err := config.DB.Create(&models.Profile{ID: user.ID, FullName: req.FullName}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	// Climate defaults are best-effort: a failed lookup leaves zeros and the
	// refresh job fills them in later.
	var climate utils.Climate
	if WeatherClient != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		climate, err = WeatherClient.FetchClimate(ctx, req.FarmLocation)
		cancel()
		if err != nil {
			log.Printf("signup: climate lookup failed for %q: %v", req.FarmLocation, err)
			climate = utils.Climate{}
		}
	}

	details := models.FarmerDetails{
		UserID:            user.ID,
		CurrentCrop:       req.CurrentCrop,
		DefaultTemp:       climate.TempC,
		DefaultHumidity:   climate.HumidityPct,
		DefaultRainfall:   climate.PrecipMm,
		FarmSizeAcres:     req.FarmSizeAcres,
		FarmLocation:      req.FarmLocation,
		SoilType:          req.SoilType,
		FertilizerHistory: req.FertilizerHistory,
	}
	if err := config.DB.Create(&details).Error; err != nil {
		log.Printf("signup: farmer details insert failed for user %d: %v", user.ID, err)
	}

	snapshot := utils.GenerateInitialSnapshot(user.ID, req.CurrentCrop)
	warning := ""
	if err := config.DB.Create(&snapshot).Error; err != nil {
		log.Printf("signup: initial crop data insert failed for user %d: %v", user.ID, err)
		warning = "Account created, but failed to generate initial crop data"
	}

	resp := gin.H{"message": "User registered successfully", "user_id": user.ID}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user and returns a JWT token.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(), // Expires in 24 hours
	})
	tokenString, err := token.SignedString([]byte(config.App.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// GetProfile returns the session user's account and display profile.
func GetProfile(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": profile.FullName,
	})
}
