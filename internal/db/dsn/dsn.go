// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/HRPortal/HRPortal/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(dbCfg *config.DB) string {
	switch dbCfg.GormEngine {
	case "postgres":
		return Postgres(dbCfg)
	case "sqlite":
		return dbCfg.Name
	default:
		return MySQL(dbCfg)
	}
}

// MySQL builds a go-sql-driver DSN. parseTime is always enabled.
func MySQL(dbCfg *config.DB) string {
	extras := dbCfg.Extras
	if !strings.Contains(extras, "parseTime=") {
		extras = strings.TrimPrefix(extras+"&parseTime=true", "&")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
		extras,
	)
}

// Postgres builds a libpq keyword/value DSN.
func Postgres(dbCfg *config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += " " + dbCfg.Extras
	}

	return out
}
