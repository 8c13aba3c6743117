package db

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by dsn. DSNs starting with postgres:// or
// postgresql:// use Postgres; anything else is treated as a SQLite file path.
func Connect(dsn string, lg *zap.Logger) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	// Surface slow queries; the SQL itself is only logged at debug level.
	gormLogger := logger.New(
		zap.NewStdLog(lg.Named("gorm")),
		logger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	if lg.Core().Enabled(zap.DebugLevel) {
		gormLogger = gormLogger.LogMode(logger.Info)
	}

	cfg := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	postgresDSN := IsPostgresDSN(dsn)
	var dialector gorm.Dialector
	if postgresDSN {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(sqliteDSN(dsn))
	}

	d, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if postgresDSN {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// SQLite allows a single writer; serialize through one connection.
		sqlDB.SetMaxOpenConns(1)
	}

	lg.Info("connected to database", zap.Bool("postgres", postgresDSN))
	return d, nil
}

// IsPostgresDSN reports whether dsn selects the Postgres driver.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}

// Close releases the underlying connection pool.
func Close(d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
