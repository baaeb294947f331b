package controllers

import (
	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) {
	config.DB = db
	db.AutoMigrate(&models.User{}, &models.Profile{}, &models.FarmerDetails{}, &models.CropData{}, &models.HistoryData{})
}
