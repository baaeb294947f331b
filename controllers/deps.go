package controllers

import (
	"github.com/Dheeraj-cr7/FarmApp/utils"
)

// Shared service clients, set once at startup (and replaced by tests).
var (
	// PredictorClient calls the crop-health prediction service.
	PredictorClient *utils.Predictor

	// WeatherClient resolves climate data for free-text farm locations. May
	// be nil when no API key is configured; climate features then degrade to
	// zero defaults.
	WeatherClient *utils.WeatherClient
)
