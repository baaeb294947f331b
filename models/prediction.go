package models

// PredictionRequest is the wire payload sent to the prediction service. The
// field names follow the service's training feature names.
type PredictionRequest struct {
	UserID       uint    `json:"user_id"`
	CropName     string  `json:"crop_name"`
	Nitrogen     float64 `json:"N"`
	Phosphorus   float64 `json:"P"`
	Potassium    float64 `json:"K"`
	PH           float64 `json:"pH"`
	SoilMoisture float64 `json:"Soil_Moisture"`
}

// PredictionResponse is the prediction service's reply. PredictedDisease is
// the specific disease label; PredictedHealth is the generic root-cause
// category ("Optimal Health", "Nitrogen Deficiency", ...) that drives advice.
type PredictionResponse struct {
	PredictedDisease string  `json:"predicted_disease"`
	PredictedHealth  string  `json:"predicted_health"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// PredictionResult is what the dashboard shows after a run: the model outputs
// plus the locally derived risk level and advice.
type PredictionResult struct {
	RequestID        string  `json:"request_id"`
	PredictedDisease string  `json:"predicted_disease"`
	PredictedHealth  string  `json:"predicted_health"`
	ConfidenceScore  float64 `json:"confidence_score"`
	RiskLevel        string  `json:"risk_level"`
	Advice           string  `json:"advice"`
}
