package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidAuditAction is returned for actions outside the AuditAction set.
var ErrInvalidAuditAction = errors.New("invalid audit action")

// AuditAction is the kind of operation recorded in the audit log.
type AuditAction string

const (
	// AuditActionCreate records the creation of a resource.
	AuditActionCreate AuditAction = "create"
	// AuditActionUpdate records a change to a resource.
	AuditActionUpdate AuditAction = "update"
	// AuditActionDelete records the removal of a resource.
	AuditActionDelete AuditAction = "delete"
	// AuditActionView records access to a sensitive resource.
	AuditActionView AuditAction = "view"
)

// Valid reports whether a is a known action.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionView:
		return true
	default:
		return false
	}
}

// Audit resources.
const (
	AuditResourceUser     = "user"
	AuditResourceEmployee = "employee"
)

// AuditLog is one entry of the append-only compliance trail.
type AuditLog struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// UserID is the acting user; nil when the action cannot be attributed.
	UserID     *string     `gorm:"column:user_id;size:191;index" json:"userId"`
	Action     AuditAction `gorm:"type:varchar(16);not null" json:"action"`
	Resource   string      `gorm:"size:64;not null" json:"resource"`
	ResourceID *string     `gorm:"column:resource_id;size:191" json:"resourceId"`
	// Changes is an opaque payload owned by the caller, usually JSON.
	Changes   *string   `gorm:"type:text" json:"changes"`
	IPAddress *string   `gorm:"column:ip_address;size:64" json:"ipAddress"`
	UserAgent *string   `gorm:"column:user_agent;size:512" json:"userAgent"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName specifies the database table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns id and timestamp and refuses unknown actions.
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if !a.Action.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAuditAction, string(a.Action))
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}

	return nil
}
