package database

import (
	"log"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Hall{},
		&models.Booking{},
		&models.Seva{},
		&models.Gotra{},
		&models.SevaBooking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Conflict-check fast path: blocking bookings are looked up by hall and
	// date span, so index the triple with the status filter baked in.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_blocking
		ON bookings (hall_id, booking_start_date, booking_end_date)
		WHERE status <> 'cancelled'
	`)

	return db
}
