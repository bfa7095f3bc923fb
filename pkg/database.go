package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mentorhub/matching-service/internal/config"
	"github.com/mentorhub/matching-service/internal/models"
)

// gormConfig builds the gorm configuration for the given environment.
func gormConfig(cfg *config.Config) *gorm.Config {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	return &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
		// Constraint violations from the postgres driver surface as
		// gorm.ErrDuplicatedKey only with translation enabled.
		TranslateError: true,
	}
}

// InitDatabase opens the PostgreSQL connection, configures the pool and
// runs schema migration for all entities.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.MatchRequest{},
		&models.Meeting{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// One live request per mentor and mentee pair. AutoMigrate cannot
	// express a partial index, so it is created directly.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_match_requests_live_pair
		ON match_requests (mentor_id, mentee_id)
		WHERE status IN ('pending', 'accepted')`).Error; err != nil {
		return nil, fmt.Errorf("failed to create live request index: %w", err)
	}

	return db, nil
}
