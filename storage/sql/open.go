package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/storage"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database behind the gateway.
type Config struct {
	Driver string
	DSN    string

	// Debug turns on gorm's SQL logging.
	Debug bool
}

// Open connects to the configured database, migrates the schema and
// returns a SalesStore. The caller must Close it.
func Open(ctx context.Context, cfg Config, opts ...Option) (storage.SalesStore, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		closeDB(db)
		return nil, err
	}

	gateway, err := newGateway(db, opts...)
	if err != nil {
		closeDB(db)
		return nil, err
	}
	return gateway, nil
}

func openDB(cfg Config) (*gorm.DB, error) {
	level := gormlogger.Silent
	if cfg.Debug {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite, "":
		if cfg.DSN == "" {
			return nil, errors.New("sqlite dsn is required")
		}
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if strings.ToLower(cfg.Driver) != DriverPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&brandRow{}, &matchRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureParentDir creates the directory holding a sqlite file DSN.
func ensureParentDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
