package utils

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/models"
)

// CropOptions and SoilOptions are the values accepted during farm setup.
var (
	CropOptions = []string{"Rice", "Wheat", "Sugarcane", "Maize", "Cotton"}
	SoilOptions = []string{"Alluvial", "Black", "Red", "Laterite", "Arid"}
)

// nutrientProfile is the healthy range per reading for a crop. The initial
// snapshot is drawn uniformly from these ranges.
type nutrientProfile struct {
	N, P, K, PH [2]float64
}

var cropProfiles = map[string]nutrientProfile{
	"rice":      {N: [2]float64{60, 100}, P: [2]float64{30, 50}, K: [2]float64{30, 50}, PH: [2]float64{5.5, 6.5}},
	"wheat":     {N: [2]float64{80, 120}, P: [2]float64{40, 60}, K: [2]float64{40, 60}, PH: [2]float64{6.0, 7.5}},
	"sugarcane": {N: [2]float64{150, 200}, P: [2]float64{40, 60}, K: [2]float64{60, 80}, PH: [2]float64{6.0, 8.0}},
	"maize":     {N: [2]float64{100, 150}, P: [2]float64{50, 80}, K: [2]float64{50, 80}, PH: [2]float64{5.5, 7.5}},
	"cotton":    {N: [2]float64{60, 90}, P: [2]float64{30, 50}, K: [2]float64{30, 50}, PH: [2]float64{6.0, 7.0}},
}

// ValidCrop reports whether the crop name is one of the supported options
// (case-insensitive).
func ValidCrop(name string) bool {
	return containsFold(CropOptions, name)
}

// ValidSoil reports whether the soil type is one of the supported options
// (case-insensitive).
func ValidSoil(name string) bool {
	return containsFold(SoilOptions, name)
}

func containsFold(options []string, name string) bool {
	for _, opt := range options {
		if strings.EqualFold(opt, name) {
			return true
		}
	}
	return false
}

// GenerateInitialSnapshot builds the first crop-data row for a new user:
// nutrients drawn from the crop's healthy profile, soil moisture between 30
// and 70 percent, no prediction yet. Unknown crops fall back to the rice
// profile.
func GenerateInitialSnapshot(userID uint, cropName string) models.CropData {
	profile, ok := cropProfiles[strings.ToLower(cropName)]
	if !ok {
		profile = cropProfiles["rice"]
	}

	return models.CropData{
		UserID:       userID,
		CropName:     cropName,
		Nitrogen:     randomIn(profile.N),
		Phosphorus:   randomIn(profile.P),
		Potassium:    randomIn(profile.K),
		PH:           randomIn(profile.PH),
		SoilMoisture: randomIn([2]float64{30, 70}),
		CreatedAt:    time.Now(),
	}
}

func randomIn(r [2]float64) float64 {
	return r[0] + rand.Float64()*(r[1]-r[0])
}
