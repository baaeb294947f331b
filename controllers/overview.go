package controllers

import (
	"errors"
	"net/http"

	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Overview merges the farm details and the latest crop snapshot into one
// read model. Either half may be nil for first-time users.
type Overview struct {
	Details *models.FarmerDetails
	Crop    *models.CropData
}

// LoadProfile issues the two independent reads behind the overview screen.
// "No rows" on either read is not an error: that half comes back nil and the
// load still succeeds. Any other failure aborts the whole load; partial data
// is never returned.
func LoadProfile(db *gorm.DB, userID uint) (Overview, error) {
	var out Overview

	var details models.FarmerDetails
	err := db.Where("user_id = ?", userID).First(&details).Error
	switch {
	case err == nil:
		out.Details = &details
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first-time user, no farm details yet
	default:
		return Overview{}, err
	}

	var crop models.CropData
	err = db.Where("user_id = ?", userID).Order("created_at desc, id desc").First(&crop).Error
	switch {
	case err == nil:
		out.Crop = &crop
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no snapshot yet
	default:
		return Overview{}, err
	}

	return out, nil
}

// GetOverview returns the aggregated farm profile. The optional `seq` query
// parameter is echoed back so clients issuing rapid refetches can discard
// responses to superseded requests.
func GetOverview(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	overview, err := LoadProfile(config.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load farm data"})
		return
	}

	var details interface{} = gin.H{}
	if overview.Details != nil {
		details = overview.Details
	}
	var crop interface{} = gin.H{}
	if overview.Crop != nil {
		crop = overview.Crop
	}

	c.JSON(http.StatusOK, gin.H{
		"seq":     c.Query("seq"),
		"details": details,
		"crop":    crop,
	})
}
