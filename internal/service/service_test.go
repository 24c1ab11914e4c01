package service

import (
	"fmt"
	"strings"
	"testing"

	"poinku/internal/database"
	"poinku/internal/domain"
	"poinku/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database. The pool is capped at one
// connection so concurrent transactions serialize instead of hitting
// SQLITE_BUSY; the production store handles contention with row locks.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, points int64) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     domain.RoleUser,
		Points:   points,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func userPoints(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, userID).Error)
	return u.Points
}

func ledgerSum(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var sum int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error)
	return sum
}
