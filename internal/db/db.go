package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glowbook/artist-scheduler/internal/config"
	"github.com/glowbook/artist-scheduler/internal/logger"
	"github.com/glowbook/artist-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Get().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		logger.Get().Fatal("failed to migrate", zap.Error(err))
	}

	// Database-level backstop against double bookings: even two
	// read-then-write sequences on separate connections cannot both
	// commit overlapping non-terminal appointments for one artist.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    artist_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status IN ('pending', 'confirmed'));
            END IF;
        END
        $$
    `)

	db.Exec(`
        UPDATE profiles
        SET timezone = 'America/New_York'
        WHERE role = 'artist' AND (timezone IS NULL OR timezone = '')
    `)

	return db
}
