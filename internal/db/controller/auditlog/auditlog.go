// Package auditlog stores and reads the append-only audit trail.
// Entries are never updated or deleted through this package.
package auditlog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/db/models"
)

const (
	// DefaultLimit is used when a filter does not set one.
	DefaultLimit = 50
	// MaxLimit caps the number of entries returned by List.
	MaxLimit = 500
)

var (
	// ErrResourceEmpty is returned when an entry has no resource.
	ErrResourceEmpty = errors.New("audit log resource cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Filter narrows down List results. Zero fields are ignored.
type Filter struct {
	UserID     string
	Resource   string
	ResourceID string
	Limit      int
}

// Controller appends to and reads the audit_logs table.
type Controller struct {
	db *gorm.DB
}

// New returns a controller bound to db.
func New(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// Append writes entry. ID and Timestamp are filled in when empty.
func (c *Controller) Append(ctx context.Context, entry *models.AuditLog) error {
	if c.db == nil {
		return ErrDBNil
	}

	if entry.Resource == "" {
		return ErrResourceEmpty
	}

	if !entry.Action.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidAuditAction, string(entry.Action))
	}

	if err := c.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}

	return nil
}

// List returns matching entries, newest first.
func (c *Controller) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	tx := c.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}

	if f.Resource != "" {
		tx = tx.Where("resource = ?", f.Resource)
	}

	if f.ResourceID != "" {
		tx = tx.Where("resource_id = ?", f.ResourceID)
	}

	var entries []models.AuditLog

	if err := tx.Order("timestamp DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, nil
}
