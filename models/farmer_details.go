package models

// FarmerDetails stores the farm context collected during setup. One row per
// user; climate defaults are auto-filled from the weather lookup and
// refreshed periodically.
type FarmerDetails struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	UserID            uint    `json:"user_id" gorm:"not null;uniqueIndex"`
	CurrentCrop       string  `json:"current_crop"`
	DefaultTemp       float64 `json:"default_temp"`
	DefaultHumidity   float64 `json:"default_humidity"`
	DefaultRainfall   float64 `json:"default_rainfall"`
	FarmSizeAcres     float64 `json:"farm_size_acres"`
	FarmLocation      string  `json:"farm_location"`
	SoilType          string  `json:"soil_type"`
	FertilizerHistory string  `json:"fertilizer_history"`
}

// TableName pins the table to the hosted schema's name.
func (FarmerDetails) TableName() string {
	return "farmer_details"
}
