// Package employee provides persistence operations for employee HR profiles.
package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HRPortal/HRPortal/internal/db/models"
)

var (
	// ErrEmployeeNotFound is returned when the user has no employee profile.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrUserIDEmpty is returned when the owning user id is missing.
	ErrUserIDEmpty = errors.New("employee user id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Controller reads and writes the employees table.
type Controller struct {
	db *gorm.DB
}

// New returns a controller bound to db.
func New(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// GetByUserID returns the profile owned by the given user.
func (c *Controller) GetByUserID(ctx context.Context, userID string) (*models.Employee, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	if userID == "" {
		return nil, ErrUserIDEmpty
	}

	var e models.Employee

	err := c.db.WithContext(ctx).Where("user_id = ?", userID).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}

	return &e, nil
}

// List returns a page of profiles ordered by user id.
func (c *Controller) List(ctx context.Context, limit, offset int) ([]models.Employee, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var employees []models.Employee

	if err := c.db.WithContext(ctx).Order("user_id").Limit(limit).Offset(offset).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// ListByManager returns the profiles reporting to the given user.
func (c *Controller) ListByManager(ctx context.Context, managerID string) ([]models.Employee, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var employees []models.Employee

	if err := c.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("user_id").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Save creates the profile of e.UserID or overwrites the existing one.
// It reports whether a new row was created.
func (c *Controller) Save(ctx context.Context, e *models.Employee) (bool, error) {
	if c.db == nil {
		return false, ErrDBNil
	}

	if e.UserID == "" {
		return false, ErrUserIDEmpty
	}

	var created bool

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Employee

		err := tx.Where("user_id = ?", e.UserID).Take(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		default:
			e.ID = existing.ID
		}

		e.UpdatedAt = time.Now()

		return tx.Omit(clause.Associations).Save(e).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to save employee: %w", err)
	}

	return created, nil
}
