// Package user provides persistence operations for users synced from the
// identity provider.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/db/dberror"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

const (
	whereID    = "id = ?"
	whereEmail = "email = ?"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup or update.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a create collides with an existing id, email or linked account.
	ErrUserExists = errors.New("user already exists")
	// ErrIDEmpty is returned when the user id is empty.
	ErrIDEmpty = errors.New("user id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Controller reads and writes the users table.
type Controller struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a controller bound to db.
func New(db *gorm.DB) *Controller {
	return &Controller{db: db, now: time.Now}
}

// Get returns the user with the given id.
func (c *Controller) Get(ctx context.Context, id string) (*models.User, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	return c.first(ctx, whereID, id)
}

// GetByEmail returns the user owning the given email address.
func (c *Controller) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	return c.first(ctx, whereEmail, email)
}

func (c *Controller) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User

	err := c.db.WithContext(ctx).Where(query, arg).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// List returns all users, newest first.
func (c *Controller) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var users []models.User

	err := c.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Count returns the number of users.
func (c *Controller) Count(ctx context.Context) (int64, error) {
	if c.db == nil {
		return 0, ErrDBNil
	}

	var n int64

	if err := c.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return n, nil
}

// Create inserts u. A collision on any unique column yields ErrUserExists so
// callers can tell a lost creation race from a broken store.
func (c *Controller) Create(ctx context.Context, u *models.User) error {
	if c.db == nil {
		return ErrDBNil
	}

	if u.ID == "" {
		return ErrIDEmpty
	}

	if !u.Role.Valid() {
		return fmt.Errorf("failed to create user: %w", models.ErrInvalidRole)
	}

	now := c.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}

	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	err := c.db.WithContext(ctx).Create(u).Error
	if dberror.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrUserExists, u.ID)
	}

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// SetRole changes the role of the user and bumps updated_at.
func (c *Controller) SetRole(ctx context.Context, id string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidRole, string(role))
	}

	return c.update(ctx, id, map[string]any{"role": role})
}

// SetActive activates or deactivates the user.
func (c *Controller) SetActive(ctx context.Context, id string, active bool) error {
	return c.update(ctx, id, map[string]any{"is_active": active})
}

func (c *Controller) update(ctx context.Context, id string, updates map[string]any) error {
	if c.db == nil {
		return ErrDBNil
	}

	if id == "" {
		return ErrIDEmpty
	}

	updates["updated_at"] = c.now()

	result := c.db.WithContext(ctx).
		Model(&models.User{}).
		Where(whereID, id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
