package database

import (
	"errors"
	"fmt"

	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// RunMigrations applies pending migrations from migrationsPath. Calling it
// on an up-to-date schema is a no-op.
func RunMigrations(db *gorm.DB, migrationsPath string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: failed to get sql db: %v", apperrors.ErrSchema, err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: failed to create migration driver: %v", apperrors.ErrSchema, err)
	}

	src, err := (&file.File{}).Open(fmt.Sprintf("file://%s", migrationsPath))
	if err != nil {
		return fmt.Errorf("%w: failed to open migrations: %v", apperrors.ErrSchema, err)
	}

	// m.Close would also close sqlDB, which gorm still owns, so only the
	// source is released here.
	defer func() {
		if srcErr := src.Close(); srcErr != nil {
			logger.Warn("failed to close migration source", "error", srcErr)
		}
	}()

	m, err := migrate.NewWithInstance("file", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%w: failed to create migration instance: %v", apperrors.ErrSchema, err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to apply (database up-to-date)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to run migrations: %v", apperrors.ErrSchema, err)
	}

	version, _, _ := m.Version()
	logger.Info("applied migrations successfully", "version", version)
	return nil
}
