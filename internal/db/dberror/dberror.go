// Package dberror classifies errors returned by the supported database engines.
package dberror

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// mysqlDuplicateEntry is ER_DUP_ENTRY.
	mysqlDuplicateEntry = 1062

	// pgUniqueViolation is the SQLSTATE for unique_violation.
	pgUniqueViolation = "23505"

	sqliteUniqueFailed = "UNIQUE constraint failed"
)

// IsUniqueViolation reports whether err was caused by a unique or primary key
// constraint. It understands gorm's translated error as well as the raw errors
// of MySQL, PostgreSQL and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), sqliteUniqueFailed)
}
