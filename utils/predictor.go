package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/models"
)

// Predictor calls the crop-health prediction service. Successful responses
// are not surfaced before MinWait has elapsed so the dashboard's progress
// state stays readable on fast networks.
type Predictor struct {
	URL     string
	Client  *http.Client
	MinWait time.Duration
}

// NewPredictor returns a Predictor with the production timeout and pacing.
func NewPredictor(url string) *Predictor {
	return &Predictor{
		URL:     url,
		Client:  &http.Client{Timeout: 15 * time.Second},
		MinWait: 3 * time.Second,
	}
}

type predictOutcome struct {
	resp models.PredictionResponse
	err  error
}

// Predict POSTs the snapshot to the prediction service. Errors return as soon
// as they are known; successful results wait out the remainder of MinWait.
func (p *Predictor) Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	timer := time.NewTimer(p.MinWait)
	defer timer.Stop()

	ch := make(chan predictOutcome, 1)
	go func() {
		resp, err := p.do(ctx, req)
		ch <- predictOutcome{resp: resp, err: err}
	}()

	var out predictOutcome
	select {
	case out = <-ch:
	case <-ctx.Done():
		return models.PredictionResponse{}, ctx.Err()
	}
	if out.err != nil {
		return models.PredictionResponse{}, out.err
	}

	select {
	case <-timer.C:
	case <-ctx.Done():
		return models.PredictionResponse{}, ctx.Err()
	}
	return out.resp, nil
}

func (p *Predictor) do(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.PredictionResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return models.PredictionResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return models.PredictionResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.PredictionResponse{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.PredictionResponse{}, serviceError(resp.StatusCode, raw)
	}

	var parsed models.PredictionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.PredictionResponse{}, fmt.Errorf("malformed prediction response: %w", err)
	}
	return parsed, nil
}

// serviceError extracts the structured {"error": ...} message from a non-2xx
// reply, falling back to the raw body text.
func serviceError(status int, raw []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("prediction service returned %d: %s", status, payload.Error)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(status)
	}
	return fmt.Errorf("prediction service returned %d: %s", status, text)
}
