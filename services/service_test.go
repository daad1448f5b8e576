package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dorm-backend/config"
	"dorm-backend/models"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema
// migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory SQLite database lives per connection; pin the pool to
	// one so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createTestDorm(t *testing.T, db *gorm.DB, gender string) models.Dorm {
	t.Helper()
	dorm := models.Dorm{Name: "Test Dorm", Location: "Campus North", GenderRestriction: gender}
	require.NoError(t, db.Create(&dorm).Error)
	return dorm
}

// createTestRoom inserts a room row directly, without auto-populating
// beds, so tests can control bed state precisely.
func createTestRoom(t *testing.T, db *gorm.DB, dormID uint, number string, capacity uint) models.Room {
	t.Helper()
	room := models.Room{DormID: dormID, RoomNumber: number, Capacity: capacity, Floor: 1, Price: 500}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func createTestBed(t *testing.T, db *gorm.DB, roomID uint, number string, occupied bool) models.Bed {
	t.Helper()
	bed := models.Bed{RoomID: roomID, BedNumber: number, IsOccupied: occupied}
	require.NoError(t, db.Create(&bed).Error)
	return bed
}

func createTestStudent(t *testing.T, db *gorm.DB, code, gender string) models.User {
	t.Helper()
	user := models.User{
		StudentCode:  code,
		NationalCode: "nc-" + code,
		PhoneNumber:  "0912" + code,
		Gender:       gender,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestStaff(t *testing.T, db *gorm.DB, code string) models.User {
	t.Helper()
	user := models.User{
		StudentCode:  code,
		NationalCode: "nc-" + code,
		PhoneNumber:  "0913" + code,
		Gender:       models.GenderMale,
		IsActive:     true,
		IsStaff:      true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func reloadRoom(t *testing.T, db *gorm.DB, id uint) models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, id).Error)
	return room
}
