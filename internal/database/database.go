// Package database opens the GORM connection and owns the schema.
package database

import (
	"fmt"
	"time"

	"hbnb/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogWriter forwards GORM's slow-query and error lines to zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Open connects to the database selected by driver ("postgres" or "sqlite").
// SQLite only enforces foreign keys when the DSN asks for it
// (e.g. "hbnb.db?_foreign_keys=on").
// Duplicate-key errors are translated to gorm.ErrDuplicatedKey so the
// repositories can report conflicts without driver specific checks.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	if err := db.SetupJoinTable(&models.Place{}, "Amenities", &models.PlaceAmenity{}); err != nil {
		return nil, fmt.Errorf("failed to set up place_amenity join table: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users, places, amenities, reviews and
// place_amenity tables. Parents are listed before their children.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Amenity{},
		&models.Place{},
		&models.Review{},
		&models.PlaceAmenity{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
