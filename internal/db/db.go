// Package db opens the gorm connection and migrates the schema.
package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/dsn"
	"github.com/HRPortal/HRPortal/internal/db/models"
	gormadapter "github.com/HRPortal/HRPortal/internal/logger/adapter/gorm"
)

// ErrUnsupportedEngine is returned for an unknown DB.GormEngine.
var ErrUnsupportedEngine = errors.New("unsupported gorm engine")

func dialector(c *config.DB) (gorm.Dialector, error) {
	switch c.GormEngine {
	case "mysql", "":
		return gormmysql.Open(dsn.MySQL(c)), nil
	case "postgres":
		return postgres.Open(dsn.Postgres(c)), nil
	case "sqlite":
		return sqlite.Open(dsn.Create(c)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, c.GormEngine)
	}
}

// Open connects to the configured database.
// Driver specific constraint errors are translated to gorm errors.
func Open(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(&cfg.DB)
	if err != nil {
		return nil, err
	}

	l := gormadapter.New(time.Duration(cfg.Log.SlowQueryThreshold) * time.Millisecond)

	var gl gormlogger.Interface = l
	if cfg.DevMode {
		gl = l.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	return db, nil
}

// Migrate creates or updates the users, employees and audit_logs tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}

	return sqlDB.Close() //nolint:wrapcheck
}
