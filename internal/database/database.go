package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"productselector/internal/config"
	"productselector/internal/models"
)

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
)

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	}

	log.Info("Connecting to database", zap.String("driver", cfg.DBDriver))

	var db *gorm.DB
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = connect(dialector, gormCfg)
		if err == nil {
			break
		}
		if attempt < maxRetries {
			log.Warn("Database connection failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("retry_in", retryDelay),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.DBDriver, maxRetries, err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		if err := limitSQLiteConnections(db); err != nil {
			return nil, err
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("Database connection established")
	return db, nil
}

// OpenSQLite opens an SQLite database, used for local runs and tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := limitSQLiteConnections(db); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate registers the shared join table and creates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Recipes", &models.ProductRecipe{}); err != nil {
		return fmt.Errorf("failed to set up product join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Recipe{}, "Products", &models.ProductRecipe{}); err != nil {
		return fmt.Errorf("failed to set up recipe join table: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Recipe{}, &models.ProductRecipe{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func connect(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLite allows a single writer, and every connection to ":memory:" is a separate database.
func limitSQLiteConnections(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}
