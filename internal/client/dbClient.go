package client

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.URL), nil
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "postgres":
		return postgres.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// gormLogWriter feeds gorm's logger into zerolog.
type gormLogWriter struct {
	logger zerolog.Logger
}

func (w gormLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// newGormLogger reports slow queries and SQL errors. Lookups that match no row
// are normal control flow and stay quiet.
func newGormLogger(zl zerolog.Logger) logger.Interface {
	return logger.New(gormLogWriter{logger: zl}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// InitDBClient opens the configured database and migrates the storefront schema.
func InitDBClient(cfg *config.Database) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: newGormLogger(log.With().Str("component", "gorm").Logger()),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
