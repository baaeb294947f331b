package utils

import (
	"fmt"
	"strings"
)

// Risk levels attached to a prediction result.
const (
	RiskLow  = "Low"
	RiskHigh = "High"
)

// adviceRule maps a root-cause category (matched by substring, first match
// wins, case-sensitive) to a risk level and an advice template. The template
// receives the specific disease label.
type adviceRule struct {
	category string
	risk     string
	advice   string
}

var adviceRules = []adviceRule{
	{"Optimal Health", RiskLow, "Current conditions are ideal. Maintain vigilance and management practices."},
	{"Nitrogen Deficiency", RiskHigh, "Action Required: %s risk (due to low Nitrogen). Apply high-nitrogen fertilizer immediately."},
	{"Phosphorus Deficiency", RiskHigh, "Action Required: %s risk. Apply superphosphate or DAP and check soil temperature."},
	{"Potassium Toxicity", RiskHigh, "Critical Action: %s risk (Potassium Toxicity). Flush the soil thoroughly with clean water to leach excess salts."},
	{"pH Stress", RiskHigh, "Critical Action: %s risk (pH Stress). Adjust soil pH immediately using lime or sulfur."},
}

// DeriveAdvice turns the generic health category returned by the prediction
// service into a risk level and actionable advice. Categories outside the
// rule table fall through to a generic high-risk warning.
func DeriveAdvice(genericStatus, specificDisease string) (risk, advice string) {
	for _, rule := range adviceRules {
		if !strings.Contains(genericStatus, rule.category) {
			continue
		}
		if strings.Contains(rule.advice, "%s") {
			return rule.risk, fmt.Sprintf(rule.advice, specificDisease)
		}
		return rule.risk, rule.advice
	}
	return RiskHigh, fmt.Sprintf("Warning: %s detected. Immediate action required. Consult an agronomist for detailed steps.", specificDisease)
}
