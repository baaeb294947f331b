package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/models"
	"github.com/Dheeraj-cr7/FarmApp/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// GetClimate resolves current conditions for a free-text location. Used by
// the farm-setup screen; callers are expected to debounce input.
func GetClimate(c *gin.Context) {
	if WeatherClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Weather lookup is not configured"})
		return
	}

	climate, err := WeatherClient.FetchClimate(c.Request.Context(), c.Query("location"))
	var locErr *utils.LocationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, climate)
	case errors.Is(err, utils.ErrLocationTooShort):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Enter at least 3 characters"})
	case errors.As(err, &locErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": locErr.Message})
	default:
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Failed to fetch climate data"})
	}
}

// StartClimateRefresh schedules a periodic job that re-resolves climate for
// every farm with a known location and updates the stored defaults. Returns
// the scheduler so callers can stop it.
func StartClimateRefresh(db *gorm.DB, weather *utils.WeatherClient, interval time.Duration) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)

	s.Every(interval).Do(func() {
		refreshClimateDefaults(db, weather)
	})

	s.StartAsync()
	return s
}

func refreshClimateDefaults(db *gorm.DB, weather *utils.WeatherClient) {
	var farms []models.FarmerDetails
	if err := db.Where("farm_location <> ''").Find(&farms).Error; err != nil {
		log.Printf("climate refresh: listing farms failed: %v", err)
		return
	}

	for _, farm := range farms {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		climate, err := weather.FetchClimate(ctx, farm.FarmLocation)
		cancel()
		if err != nil {
			log.Printf("climate refresh: lookup failed for farm %d (%s): %v", farm.ID, farm.FarmLocation, err)
			continue
		}

		err = db.Model(&models.FarmerDetails{}).Where("id = ?", farm.ID).Updates(map[string]interface{}{
			"default_temp":     climate.TempC,
			"default_humidity": climate.HumidityPct,
			"default_rainfall": climate.PrecipMm,
		}).Error
		if err != nil {
			log.Printf("climate refresh: update failed for farm %d: %v", farm.ID, err)
		}
	}
}
