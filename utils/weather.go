package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrLocationTooShort means the location text was too short to be worth a
// network call. It is an "input incomplete" state, not a lookup failure.
var ErrLocationTooShort = errors.New("location must be at least 3 characters")

// LocationError is a terminal lookup failure (unknown location or rejected
// key). It is never retried.
type LocationError struct {
	Message string
}

func (e *LocationError) Error() string {
	return e.Message
}

// Climate is the subset of current conditions the farm setup needs.
type Climate struct {
	TempC       float64 `json:"temp_c"`
	HumidityPct float64 `json:"humidity_pct"`
	PrecipMm    float64 `json:"precip_mm"`
}

// WeatherClient fetches current conditions for a free-text location from
// WeatherAPI.com. Transient failures (network, 5xx) are retried with
// exponential backoff behind a circuit breaker; 4xx replies are terminal.
type WeatherClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	// MaxAttempts bounds the retry loop; BackoffBase is doubled per attempt
	// (2s, 4s with the default 1s base).
	MaxAttempts int
	BackoffBase time.Duration

	circuit *gobreaker.CircuitBreaker
}

// NewWeatherClient returns a client with production retry settings.
func NewWeatherClient(apiKey, baseURL string) *WeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &WeatherClient{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Client:      &http.Client{Timeout: 10 * time.Second},
		MaxAttempts: 3,
		BackoffBase: 1 * time.Second,
		circuit:     cb,
	}
}

// FetchClimate resolves current conditions for the location text. Inputs
// shorter than 3 characters (after trimming) return ErrLocationTooShort
// without any network call.
func (w *WeatherClient) FetchClimate(ctx context.Context, location string) (Climate, error) {
	trimmed := strings.TrimSpace(location)
	if len(trimmed) < 3 {
		return Climate{}, ErrLocationTooShort
	}

	values := url.Values{}
	values.Set("key", w.APIKey)
	values.Set("q", trimmed)
	values.Set("aqi", "no")
	endpoint := fmt.Sprintf("%s?%s", w.BaseURL, values.Encode())

	var lastErr error
	for attempt := 1; attempt <= w.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return Climate{}, ctx.Err()
		}

		climate, err := w.fetchOnce(ctx, endpoint)
		if err == nil {
			return climate, nil
		}

		var locErr *LocationError
		if errors.As(err, &locErr) {
			return Climate{}, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Climate{}, err
		}

		lastErr = err
		if attempt == w.MaxAttempts {
			break
		}

		timer := time.NewTimer(w.retryDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return Climate{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Climate{}, fmt.Errorf("climate lookup failed after %d attempts: %w", w.MaxAttempts, lastErr)
}

// retryDelay returns the sleep before the attempt following `attempt`:
// BackoffBase*2 after the first failure, then doubling.
func (w *WeatherClient) retryDelay(attempt int) time.Duration {
	return w.BackoffBase * time.Duration(1<<uint(attempt))
}

func (w *WeatherClient) fetchOnce(ctx context.Context, endpoint string) (Climate, error) {
	result, err := w.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := w.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			var payload struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			msg := "Location not found or API key invalid."
			if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error.Message != "" {
				msg = payload.Error.Message
			}
			return nil, &LocationError{Message: msg}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("weather upstream returned %d", resp.StatusCode)
		}

		var payload struct {
			Current struct {
				TempC    float64 `json:"temp_c"`
				Humidity float64 `json:"humidity"`
				PrecipMm float64 `json:"precip_mm"`
			} `json:"current"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("malformed weather response: %w", err)
		}

		return Climate{
			TempC:       payload.Current.TempC,
			HumidityPct: payload.Current.Humidity,
			PrecipMm:    payload.Current.PrecipMm,
		}, nil
	})
	if err != nil {
		return Climate{}, err
	}
	return result.(Climate), nil
}
