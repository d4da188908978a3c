package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Logger       *logrus.Logger
}

// Open connects to the configured database and applies embedded migrations
// for its dialect.
func Open(options Options) (*gorm.DB, error) {
	dialector, err := buildDialector(options)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{Logger: buildGormLogger(options.Logger)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}

	if options.MaxOpenConns > 0 {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("access sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(options.MaxOpenConns)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return Open(Options{Driver: DriverSQLite, DSN: dbPath})
}

func buildDialector(options Options) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		dbPath := strings.TrimSpace(options.DSN)
		if dbPath == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		return sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)), nil
	case DriverPostgres, "postgresql":
		if strings.TrimSpace(options.DSN) == "" {
			return nil, fmt.Errorf("postgres dsn is required")
		}
		return postgres.Open(options.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", options.Driver)
	}
}

func buildGormLogger(logger *logrus.Logger) gormlogger.Interface {
	config := gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	}
	if logger == nil {
		config.Colorful = true
		return gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), config)
	}
	return gormlogger.New(logger, config)
}
