package models

import "time"

// CropData is a nutrient/pH/moisture snapshot for a user's field. The row
// with the greatest (created_at, id) is treated as the current snapshot; it
// is the input to predictions and the target of scenario writes.
type CropData struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	CropName         string    `json:"crop_name"`
	Nitrogen         float64   `json:"nitrogen"`
	Phosphorus       float64   `json:"phosphorus"`
	Potassium        float64   `json:"potassium"`
	PH               float64   `json:"ph" gorm:"column:ph"`
	SoilMoisture     float64   `json:"soil_moisture"`
	PredictedDisease string    `json:"predicted_disease"`
	ConfidenceScore  float64   `json:"confidence_score"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName pins the table to the hosted schema's name.
func (CropData) TableName() string {
	return "crop_data"
}
