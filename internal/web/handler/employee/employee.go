// Package employee serves the signed-in user's own HR profile.
package employee

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	employeecontroller "github.com/HRPortal/HRPortal/internal/db/controller/employee"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/web/handler"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
)

// Path is the own profile endpoint.
const Path = handler.RootPath + "employees/me"

// Service is the employee handler service.
type Service struct {
	handler.Service
	employees   *employeecontroller.Controller
	authService *auth.Service
}

// Handler is the employee handler.
var Handler = Service{}

// Init registers the profile route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.employees = employeecontroller.New(db)
	s.authService = authService

	app.Get(Path, s.Me)
}

// Me answers the profile of the current user and records the view.
func (s *Service) Me(c *fiber.Ctx) error {
	u := authmiddleware.CurrentUser(c)
	if u == nil {
		return handler.JSONError(c, fiber.StatusUnauthorized, "sign in required")
	}

	e, err := s.employees.GetByUserID(c.UserContext(), u.ID)
	if errors.Is(err, employeecontroller.ErrEmployeeNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, "no employee profile")
	}

	if err != nil {
		return err
	}

	actor := auth.ActorFromUser(u, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err = s.authService.Record(c.UserContext(), actor, models.AuditActionView,
		models.AuditResourceEmployee, u.ID, nil); err != nil {
		log.Error().Err(err).Str("userId", u.ID).Msg("failed to record profile view")
	}

	return c.JSON(e)
}
