// Package user provides the admin endpoints for listing users and changing
// their role or activation.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	usercontroller "github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/web/handler"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
)

const (
	// Path is the base path for user management.
	Path = handler.AdminPath + "/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
	// MaxPageSize caps the page size a client may ask for.
	MaxPageSize = 200
)

// RoleInput is the body of a role update.
type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin national_leader manager employee"`
}

// ActiveInput is the body of an activation update.
type ActiveInput struct {
	Active *bool `json:"active" validate:"required"`
}

// ListResponse is one page of users.
type ListResponse struct {
	Users    []models.User `json:"users"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// Service provides the user admin endpoints.
type Service struct {
	handler.Service
	users       *usercontroller.Controller
	authService *auth.Service
	validator   *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Access to Path is gated by the access rules.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.users = usercontroller.New(db)
	s.authService = authService
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Put(Path+"/:id/role", s.UpdateRole)
	app.Put(Path+"/:id/active", s.UpdateActive)
}

// List answers a page of users, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	size := c.QueryInt("pageSize", DefaultPageSize)
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}

	users, err := s.users.List(c.UserContext(), size, (page-1)*size)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return err
	}

	total, err := s.users.Count(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")
		return err
	}

	return c.JSON(ListResponse{Users: users, Total: total, Page: page, PageSize: size})
}

// UpdateRole sets the role of the user in the path.
func (s *Service) UpdateRole(c *fiber.Ctx) error {
	var in RoleInput
	if err := c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid role")
	}

	u, err := s.authService.ChangeRole(c.UserContext(), auth.RoleChange{
		UserID: c.Params("id"),
		Role:   models.Role(in.Role),
		Actor:  s.actor(c),
	})

	return s.respond(c, u, err)
}

// UpdateActive activates or deactivates the user in the path.
func (s *Service) UpdateActive(c *fiber.Ctx) error {
	var in ActiveInput
	if err := c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "active is required")
	}

	u, err := s.authService.ChangeActive(c.UserContext(), auth.ActiveChange{
		UserID: c.Params("id"),
		Active: *in.Active,
		Actor:  s.actor(c),
	})

	return s.respond(c, u, err)
}

func (s *Service) actor(c *fiber.Ctx) auth.Actor {
	return auth.ActorFromUser(authmiddleware.CurrentUser(c), c.IP(), c.Get(fiber.HeaderUserAgent))
}

func (s *Service) respond(c *fiber.Ctx, u *models.User, err error) error {
	switch {
	case err == nil:
		return c.JSON(u)
	case errors.Is(err, auth.ErrUserNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, models.ErrInvalidRole):
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid role")
	default:
		log.Error().Err(err).Str("userId", c.Params("id")).Msg("failed to update user")
		return err
	}
}
