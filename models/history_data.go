package models

import "time"

// HistoryData records one completed prediction run: the sensor inputs it was
// made from, the model outputs and the advice shown to the user. Append-only;
// the only mutation is a per-user bulk clear.
type HistoryData struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	RequestID         string    `json:"request_id" gorm:"size:36"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	CropName          string    `json:"crop_name"`
	NInput            float64   `json:"n_input"`
	PInput            float64   `json:"p_input"`
	KInput            float64   `json:"k_input"`
	PHInput           float64   `json:"ph_input" gorm:"column:ph_input"`
	SoilMoistureInput float64   `json:"soil_moisture_input"`
	PredictedDisease  string    `json:"predicted_disease"`
	PredictedHealth   string    `json:"predicted_health"`
	ConfidenceScore   float64   `json:"confidence_score"`
	AdviceGiven       string    `json:"advice_given"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName pins the table to the hosted schema's name.
func (HistoryData) TableName() string {
	return "history_data"
}
