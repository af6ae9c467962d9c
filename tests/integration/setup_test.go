//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "temple_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	for _, table := range []string{"seva_bookings", "bookings", "halls", "sevas", "gotras"} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}

	if err := testDB.AutoMigrate(
		&models.Hall{},
		&models.Booking{},
		&models.Seva{},
		&models.Gotra{},
		&models.SevaBooking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_blocking
		ON bookings (hall_id, booking_start_date, booking_end_date)
		WHERE status <> 'cancelled'
	`)

	code := m.Run()

	for _, table := range []string{"seva_bookings", "bookings", "halls", "sevas", "gotras"} {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM seva_bookings")
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM halls")
	testDB.Exec("DELETE FROM sevas")
	testDB.Exec("DELETE FROM gotras")
	testDB.Exec("ALTER SEQUENCE IF EXISTS halls_id_seq RESTART WITH 1")
	testDB.Exec("ALTER SEQUENCE IF EXISTS sevas_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
