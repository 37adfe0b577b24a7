package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/db/controller/auditlog"
	"github.com/HRPortal/HRPortal/internal/db/controller/employee"
	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

// Actor identifies who triggered a change, for the audit trail.
// A nil UserID marks a system change.
type Actor struct {
	UserID    *string
	IPAddress string
	UserAgent string
}

// ActorFromUser returns an Actor for u, which may be nil.
func ActorFromUser(u *models.User, ip, userAgent string) Actor {
	a := Actor{IPAddress: ip, UserAgent: userAgent}

	if u != nil {
		id := u.ID
		a.UserID = &id
	}

	return a
}

// RoleChange requests a role update on behalf of Actor.
type RoleChange struct {
	UserID string
	Role   models.Role
	Actor  Actor
}

// ActiveChange requests an activation update on behalf of Actor.
type ActiveChange struct {
	UserID string
	Active bool
	Actor  Actor
}

// Service updates users and keeps the audit trail.
// It does not check whether the caller may perform the update.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SetRole sets the role of the user and bumps updated_at.
// Unknown roles fail with models.ErrInvalidRole and missing users with ErrUserNotFound.
func (s *Service) SetRole(ctx context.Context, userID string, role models.Role) error {
	return mapStoreErr(user.New(s.db).SetRole(ctx, userID, role))
}

// SetActive activates or deactivates the user.
func (s *Service) SetActive(ctx context.Context, userID string, active bool) error {
	return mapStoreErr(user.New(s.db).SetActive(ctx, userID, active))
}

// ChangeRole is SetRole plus an audit entry, in one transaction.
// Setting the current role again is a no-op and writes no entry.
func (s *Service) ChangeRole(ctx context.Context, change RoleChange) (*models.User, error) {
	if !change.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRole, string(change.Role))
	}

	var updated *models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := user.New(tx)

		u, err := users.Get(ctx, change.UserID)
		if err != nil {
			return err
		}

		if u.Role == change.Role {
			updated = u
			return nil
		}

		if err = users.SetRole(ctx, change.UserID, change.Role); err != nil {
			return err
		}

		if err = appendAudit(ctx, tx, change.Actor, models.AuditActionUpdate, models.AuditResourceUser, u.ID,
			map[string]any{"role": map[string]models.Role{"from": u.Role, "to": change.Role}}); err != nil {
			return err
		}

		updated, err = users.Get(ctx, change.UserID)

		return err
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return updated, nil
}

// ChangeActive is SetActive plus an audit entry, in one transaction.
func (s *Service) ChangeActive(ctx context.Context, change ActiveChange) (*models.User, error) {
	var updated *models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := user.New(tx)

		u, err := users.Get(ctx, change.UserID)
		if err != nil {
			return err
		}

		if u.IsActive == change.Active {
			updated = u
			return nil
		}

		if err = users.SetActive(ctx, change.UserID, change.Active); err != nil {
			return err
		}

		if err = appendAudit(ctx, tx, change.Actor, models.AuditActionUpdate, models.AuditResourceUser, u.ID,
			map[string]any{"isActive": map[string]bool{"from": u.IsActive, "to": change.Active}}); err != nil {
			return err
		}

		updated, err = users.Get(ctx, change.UserID)

		return err
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return updated, nil
}

// SaveEmployee creates or replaces the employee profile of e.UserID and
// audits it as create or update.
func (s *Service) SaveEmployee(ctx context.Context, actor Actor, e *models.Employee) (bool, error) {
	var created bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := user.New(tx).Get(ctx, e.UserID); err != nil {
			return err
		}

		var err error

		created, err = employee.New(tx).Save(ctx, e)
		if err != nil {
			return err
		}

		action := models.AuditActionUpdate
		if created {
			action = models.AuditActionCreate
		}

		return appendAudit(ctx, tx, actor, action, models.AuditResourceEmployee, e.UserID, e)
	})
	if err != nil {
		return false, mapStoreErr(err)
	}

	return created, nil
}

// Record appends an audit entry outside of any update, e.g. for views.
func (s *Service) Record(
	ctx context.Context, actor Actor, action models.AuditAction, resource, resourceID string, changes any,
) error {
	return mapStoreErr(appendAudit(ctx, s.db, actor, action, resource, resourceID, changes))
}

func appendAudit(
	ctx context.Context, db *gorm.DB, actor Actor, action models.AuditAction, resource, resourceID string, changes any,
) error {
	entry := &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Resource:  resource,
		IPAddress: optional(actor.IPAddress),
		UserAgent: optional(actor.UserAgent),
	}

	if resourceID != "" {
		entry.ResourceID = &resourceID
	}

	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("failed to encode audit changes: %w", err)
		}

		entry.Changes = optional(string(b))
	}

	return auditlog.New(db).Append(ctx, entry) //nolint:wrapcheck
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrInvalidRole):
		return err
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrIDEmpty):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
