package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dheeraj-cr7/FarmApp/models"

	"gorm.io/gorm"
)

func seedHistory(t *testing.T, db *gorm.DB, userID uint, disease string, createdAt time.Time) {
	t.Helper()
	record := models.HistoryData{
		UserID:           userID,
		CropName:         "Rice",
		NInput:           15,
		PredictedDisease: disease,
		PredictedHealth:  "Nitrogen Deficiency",
		ConfidenceScore:  0.9,
		AdviceGiven:      "Apply high-nitrogen fertilizer immediately.",
		CreatedAt:        createdAt,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
}

func TestGetHistoryReturnsOwnRecordsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	seedHistory(t, db, 1, "Old Blight", now.Add(-time.Hour))
	seedHistory(t, db, 1, "New Blight", now)
	seedHistory(t, db, 2, "Other User Blight", now)

	router := newAuthedRouter(1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var records []models.HistoryData
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for user 1, got %d", len(records))
	}
	if records[0].PredictedDisease != "New Blight" || records[1].PredictedDisease != "Old Blight" {
		t.Errorf("records not newest-first: %q then %q", records[0].PredictedDisease, records[1].PredictedDisease)
	}
}

func TestClearHistoryThenListIsEmpty(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	seedHistory(t, db, 1, "Blight A", now.Add(-time.Minute))
	seedHistory(t, db, 1, "Blight B", now)
	seedHistory(t, db, 2, "Kept", now)

	router := newAuthedRouter(1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		DeletedCount int64 `json:"deleted_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.DeletedCount != 2 {
		t.Errorf("deleted_count = %d, want 2", resp.DeletedCount)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	var records []models.HistoryData
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty history after clear, got %d records", len(records))
	}

	// Clearing is scoped to the session user.
	var otherCount int64
	if err := db.Model(&models.HistoryData{}).Where("user_id = ?", 2).Count(&otherCount).Error; err != nil {
		t.Fatal(err)
	}
	if otherCount != 1 {
		t.Errorf("other user's history must survive, got %d records", otherCount)
	}
}

func TestDownloadHistoryCSV(t *testing.T) {
	db := newTestDB(t)
	seedHistory(t, db, 1, "Nitrogen Blight", time.Now())

	router := newAuthedRouter(1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "created_at,crop_name") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Nitrogen Blight") {
		t.Errorf("row %q missing the disease", lines[1])
	}
}
