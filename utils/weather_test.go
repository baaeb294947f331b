package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestWeatherClient(serverURL string) *WeatherClient {
	w := NewWeatherClient("test-key", serverURL)
	w.BackoffBase = time.Millisecond
	return w
}

func TestFetchClimateShortLocationMakesNoCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	w := newTestWeatherClient(server.URL)
	for _, loc := range []string{"", "ab", "  a  ", "\tx\n"} {
		_, err := w.FetchClimate(context.Background(), loc)
		if !errors.Is(err, ErrLocationTooShort) {
			t.Fatalf("location %q: expected ErrLocationTooShort, got %v", loc, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("expected zero network calls, got %d", n)
	}
}

func TestFetchClimateBadLocationIsTerminal(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer server.Close()

	w := newTestWeatherClient(server.URL)
	_, err := w.FetchClimate(context.Background(), "Nowhereville")

	var locErr *LocationError
	if !errors.As(err, &locErr) {
		t.Fatalf("expected LocationError, got %v", err)
	}
	if locErr.Message != "No matching location found." {
		t.Errorf("unexpected message %q", locErr.Message)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("400 must not be retried: expected 1 attempt, got %d", n)
	}
}

func TestFetchClimateTransientFailureRetriesThreeTimes(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w := newTestWeatherClient(server.URL)
	_, err := w.FetchClimate(context.Background(), "Chennai")
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", n)
	}
}

func TestFetchClimateRecoversAfterTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"current":{"temp_c":29.4,"humidity":61,"precip_mm":0.2}}`))
	}))
	defer server.Close()

	w := newTestWeatherClient(server.URL)
	climate, err := w.FetchClimate(context.Background(), "Chennai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if climate.TempC != 29.4 || climate.HumidityPct != 61 || climate.PrecipMm != 0.2 {
		t.Errorf("unexpected climate %+v", climate)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestRetryDelayDoublesFromTwoSeconds(t *testing.T) {
	w := NewWeatherClient("key", "http://example.invalid")
	if d := w.retryDelay(1); d != 2*time.Second {
		t.Errorf("delay after attempt 1 = %v, want 2s", d)
	}
	if d := w.retryDelay(2); d != 4*time.Second {
		t.Errorf("delay after attempt 2 = %v, want 4s", d)
	}
}

func TestFetchClimateHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w := newTestWeatherClient(server.URL)
	w.BackoffBase = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := w.FetchClimate(ctx, "Chennai")
	if err == nil {
		t.Fatal("expected an error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation took too long: %v", elapsed)
	}
}
