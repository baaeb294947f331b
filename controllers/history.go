package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/models"

	"github.com/gin-gonic/gin"
)

// GetHistory returns the user's prediction history, newest first.
func GetHistory(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records := []models.HistoryData{}
	if err := config.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// ClearHistory deletes all of the user's prediction history. Destructive and
// irreversible; clients are expected to confirm before calling.
func ClearHistory(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result := config.DB.Where("user_id = ?", userID).Delete(&models.HistoryData{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Successfully deleted all %d history records for your account", result.RowsAffected),
		"deleted_count": result.RowsAffected,
	})
}

// DownloadHistoryCSV sends the user's prediction history as a CSV file.
func DownloadHistoryCSV(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var records []models.HistoryData
	if err := config.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=prediction_history.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"created_at", "crop_name", "n", "p", "k", "ph", "soil_moisture", "predicted_disease", "predicted_health", "confidence_score", "advice_given"})
	for _, record := range records {
		writer.Write([]string{
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.CropName,
			fmt.Sprintf("%.2f", record.NInput),
			fmt.Sprintf("%.2f", record.PInput),
			fmt.Sprintf("%.2f", record.KInput),
			fmt.Sprintf("%.2f", record.PHInput),
			fmt.Sprintf("%.2f", record.SoilMoistureInput),
			record.PredictedDisease,
			record.PredictedHealth,
			fmt.Sprintf("%.2f", record.ConfidenceScore),
			record.AdviceGiven,
		})
	}
}
