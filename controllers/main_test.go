package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDB opens an isolated in-memory database and runs the migrations.
// The pool is capped at one connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	MigrateModels(db)
	return db
}

// newAuthedRouter builds a router whose requests are pre-authenticated as
// the given user, mirroring what the JWT middleware provides.
func newAuthedRouter(userID uint) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/overview", GetOverview)
	r.POST("/predict", Predict)
	r.POST("/scenario", SetScenario)
	r.GET("/history", GetHistory)
	r.DELETE("/history", ClearHistory)
	r.GET("/history/export", DownloadHistoryCSV)
	r.GET("/profile", GetProfile)
	return r
}
