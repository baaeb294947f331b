package utils

import (
	"strings"
	"testing"
)

func TestDeriveAdvice(t *testing.T) {
	tests := []struct {
		name           string
		genericStatus  string
		disease        string
		wantRisk       string
		wantAdvicePart string
	}{
		{
			name:           "optimal health with qualifier",
			genericStatus:  "Optimal Health (no stress detected)",
			disease:        "Healthy",
			wantRisk:       RiskLow,
			wantAdvicePart: "Maintain vigilance",
		},
		{
			name:           "nitrogen deficiency",
			genericStatus:  "Nitrogen Deficiency",
			disease:        "Nitrogen Blight",
			wantRisk:       RiskHigh,
			wantAdvicePart: "nitrogen fertilizer",
		},
		{
			name:           "phosphorus deficiency",
			genericStatus:  "Phosphorus Deficiency",
			disease:        "Brown Spot",
			wantRisk:       RiskHigh,
			wantAdvicePart: "superphosphate",
		},
		{
			name:           "potassium toxicity",
			genericStatus:  "Potassium Toxicity",
			disease:        "Leaf Scorch",
			wantRisk:       RiskHigh,
			wantAdvicePart: "leach excess salts",
		},
		{
			name:           "ph stress",
			genericStatus:  "pH Stress",
			disease:        "Root Rot",
			wantRisk:       RiskHigh,
			wantAdvicePart: "lime or sulfur",
		},
		{
			name:           "unknown category falls through to generic warning",
			genericStatus:  "Fungal Pressure",
			disease:        "Rust",
			wantRisk:       RiskHigh,
			wantAdvicePart: "agronomist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk, advice := DeriveAdvice(tt.genericStatus, tt.disease)
			if risk != tt.wantRisk {
				t.Errorf("risk = %q, want %q", risk, tt.wantRisk)
			}
			if !strings.Contains(advice, tt.wantAdvicePart) {
				t.Errorf("advice %q does not contain %q", advice, tt.wantAdvicePart)
			}
		})
	}
}

func TestDeriveAdviceMentionsDisease(t *testing.T) {
	_, advice := DeriveAdvice("Nitrogen Deficiency", "Nitrogen Blight")
	if !strings.Contains(advice, "Nitrogen Blight") {
		t.Errorf("advice %q does not mention the specific disease", advice)
	}
}

func TestDeriveAdviceMatchIsCaseSensitive(t *testing.T) {
	risk, advice := DeriveAdvice("optimal health", "Healthy")
	if risk != RiskHigh {
		t.Errorf("lowercase category should not match the Optimal Health rule, got risk %q", risk)
	}
	if !strings.Contains(advice, "agronomist") {
		t.Errorf("expected the generic warning, got %q", advice)
	}
}
