package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/config"
	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/models"
	"github.com/Dheeraj-cr7/FarmApp/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotReady means the prediction preconditions are unmet (no snapshot,
	// no crop name, or readings missing). No I/O has been attempted.
	ErrNotReady = errors.New("sensor snapshot is not ready for prediction")

	// ErrNoExistingRecord means a scenario write found no snapshot to
	// overwrite; the signup flow creates the first row, not the writer.
	ErrNoExistingRecord = errors.New("no existing crop data record for user")

	// ErrSnapshotConflict means the latest snapshot changed between read and
	// update, so the conditional write matched no row.
	ErrSnapshotConflict = errors.New("snapshot was modified concurrently")

	// ErrPredictionFailed wraps failures from the prediction service.
	ErrPredictionFailed = errors.New("prediction failed")
)

// PredictionOutcome is a successful run's result plus an optional warning
// when the history write failed (a soft failure).
type PredictionOutcome struct {
	Result  models.PredictionResult `json:"result"`
	Warning string                  `json:"warning,omitempty"`
}

// snapshotReady reports whether all readings are present. A zero reading
// means the sensor never reported a value for it.
func snapshotReady(snap models.CropData) bool {
	return snap.CropName != "" &&
		snap.Nitrogen > 0 &&
		snap.Phosphorus > 0 &&
		snap.Potassium > 0 &&
		snap.PH > 0 &&
		snap.SoilMoisture > 0
}

// RunPrediction executes the full prediction workflow for the user's latest
// snapshot:
//
//  1. precondition gate (ErrNotReady, no network I/O),
//  2. call the prediction service,
//  3. derive risk and advice locally,
//  4. append a history record — failure is soft, reported as a warning,
//  5. update the snapshot's summary fields — failure is fatal, since a stale
//     summary corrupts the dashboard. The update is conditional on the
//     created_at captured at read time so a concurrent scenario write cannot
//     be silently overwritten.
func RunPrediction(ctx context.Context, db *gorm.DB, predictor *utils.Predictor, userID uint) (PredictionOutcome, error) {
	var snap models.CropData
	if err := db.Where("user_id = ?", userID).Order("created_at desc, id desc").First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PredictionOutcome{}, ErrNotReady
		}
		return PredictionOutcome{}, err
	}
	if !snapshotReady(snap) {
		return PredictionOutcome{}, ErrNotReady
	}

	requestID := uuid.NewString()
	payload := models.PredictionRequest{
		UserID:       userID,
		CropName:     snap.CropName,
		Nitrogen:     snap.Nitrogen,
		Phosphorus:   snap.Phosphorus,
		Potassium:    snap.Potassium,
		PH:           snap.PH,
		SoilMoisture: snap.SoilMoisture,
	}

	resp, err := predictor.Predict(ctx, payload)
	if err != nil {
		return PredictionOutcome{}, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	risk, advice := utils.DeriveAdvice(resp.PredictedHealth, resp.PredictedDisease)
	outcome := PredictionOutcome{
		Result: models.PredictionResult{
			RequestID:        requestID,
			PredictedDisease: resp.PredictedDisease,
			PredictedHealth:  resp.PredictedHealth,
			ConfidenceScore:  resp.ConfidenceScore,
			RiskLevel:        risk,
			Advice:           advice,
		},
	}

	history := models.HistoryData{
		RequestID:         requestID,
		UserID:            userID,
		CropName:          snap.CropName,
		NInput:            snap.Nitrogen,
		PInput:            snap.Phosphorus,
		KInput:            snap.Potassium,
		PHInput:           snap.PH,
		SoilMoistureInput: snap.SoilMoisture,
		PredictedDisease:  resp.PredictedDisease,
		PredictedHealth:   resp.PredictedHealth,
		ConfidenceScore:   resp.ConfidenceScore,
		AdviceGiven:       advice,
	}
	if err := db.Create(&history).Error; err != nil {
		log.Printf("history insert failed for user %d: %v", userID, err)
		outcome.Warning = "Prediction succeeded but history could not be saved"
	}

	update := db.Model(&models.CropData{}).
		Where("id = ? AND created_at = ?", snap.ID, snap.CreatedAt).
		Updates(map[string]interface{}{
			"predicted_disease": resp.PredictedDisease,
			"confidence_score":  resp.ConfidenceScore,
		})
	if update.Error != nil {
		return outcome, update.Error
	}
	if update.RowsAffected == 0 {
		return outcome, ErrSnapshotConflict
	}

	BroadcastPrediction(userID, outcome.Result)
	return outcome, nil
}

// Predict runs the prediction workflow for the session user.
func Predict(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := RunPrediction(c.Request.Context(), config.DB, PredictorClient, userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, outcome)
	case errors.Is(err, ErrNotReady):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Sensor data is not ready. Set up your farm first."})
	case errors.Is(err, ErrSnapshotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Sensor data changed during prediction. Refresh and try again."})
	case errors.Is(err, ErrPredictionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prediction"})
	}
}

// Scenario is a named set of synthetic sensor values used to exercise the
// prediction flow.
type Scenario struct {
	Name         string
	Nitrogen     float64
	Phosphorus   float64
	Potassium    float64
	PH           float64
	SoilMoisture float64
}

var optimalScenario = Scenario{
	Name: "Optimal", Nitrogen: 100, Phosphorus: 50, Potassium: 65, PH: 6.8, SoilMoisture: 75,
}

var problemScenarios = []Scenario{
	{Name: "Nitrogen Deficiency", Nitrogen: 15, Phosphorus: 50, Potassium: 65, PH: 6.8, SoilMoisture: 75},
	{Name: "Phosphorus Deficiency", Nitrogen: 100, Phosphorus: 15, Potassium: 65, PH: 6.8, SoilMoisture: 75},
	{Name: "Potassium Toxicity", Nitrogen: 100, Phosphorus: 50, Potassium: 200, PH: 6.8, SoilMoisture: 75},
	{Name: "pH Stress (Acidic)", Nitrogen: 100, Phosphorus: 50, Potassium: 65, PH: 4.5, SoilMoisture: 75},
}

// ApplyScenario overwrites the user's latest snapshot with the scenario
// values, clears the previous prediction and stamps a fresh created_at. The
// write is conditional on the created_at captured at read time. Callers must
// refetch to observe the change.
func ApplyScenario(db *gorm.DB, userID uint, sc Scenario) (models.CropData, error) {
	var latest models.CropData
	if err := db.Where("user_id = ?", userID).Order("created_at desc, id desc").First(&latest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CropData{}, ErrNoExistingRecord
		}
		return models.CropData{}, err
	}

	now := time.Now()
	update := db.Model(&models.CropData{}).
		Where("id = ? AND created_at = ?", latest.ID, latest.CreatedAt).
		Updates(map[string]interface{}{
			"nitrogen":          sc.Nitrogen,
			"phosphorus":        sc.Phosphorus,
			"potassium":         sc.Potassium,
			"ph":                sc.PH,
			"soil_moisture":     sc.SoilMoisture,
			"predicted_disease": "",
			"confidence_score":  0,
			"created_at":        now,
		})
	if update.Error != nil {
		return models.CropData{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.CropData{}, ErrSnapshotConflict
	}

	latest.Nitrogen = sc.Nitrogen
	latest.Phosphorus = sc.Phosphorus
	latest.Potassium = sc.Potassium
	latest.PH = sc.PH
	latest.SoilMoisture = sc.SoilMoisture
	latest.PredictedDisease = ""
	latest.ConfidenceScore = 0
	latest.CreatedAt = now

	BroadcastSnapshot(userID, latest)
	return latest, nil
}

// SetScenario applies the optimal scenario or a randomly chosen problem
// scenario to the session user's snapshot.
func SetScenario(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var scenario Scenario
	switch req.Mode {
	case "optimal":
		scenario = optimalScenario
	case "problem":
		scenario = problemScenarios[rand.Intn(len(problemScenarios))]
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be 'optimal' or 'problem'"})
		return
	}

	snapshot, err := ApplyScenario(config.DB, userID, scenario)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":  fmt.Sprintf("%s data set successfully", scenario.Name),
			"scenario": scenario.Name,
			"snapshot": snapshot,
		})
	case errors.Is(err, ErrNoExistingRecord):
		c.JSON(http.StatusNotFound, gin.H{"error": "No existing crop data for this user. Complete farm setup first."})
	case errors.Is(err, ErrSnapshotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Sensor data changed concurrently. Refresh and try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set scenario data"})
	}
}
