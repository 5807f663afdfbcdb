package db

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MaryEddythe/Lustrea/internal/config"
	"github.com/MaryEddythe/Lustrea/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	// Parse the DSN with pgx so a malformed URL fails loudly at startup
	// instead of on the first query.
	pgxCfg, err := pgx.ParseConfig(cfg.DBUrl)
	if err != nil {
		log.Fatalf("invalid DATABASE_URL: %v", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Service{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.Message{},
		&models.Gallery{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// AutoMigrate cannot express a partial index. One active booking per
	// slot; cancelled rows do not hold the slot.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		 ON appointments (date, time) WHERE status <> 'cancelled'`,
	).Error; err != nil {
		log.Fatalf("failed to create slot index: %v", err)
	}

	return db
}
