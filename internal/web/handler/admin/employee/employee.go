// Package employee lets administrators read and maintain HR profiles.
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

const (
	// Path is the base path of the employee admin endpoints.
	Path = handler.AdminPath + "/employees"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25
	// MaxPageSize caps the page size a client may ask for.
	MaxPageSize = 200
)

// Service is the employee admin handler service.
type Service struct {
	handler.Service
	employees   *employeecontroller.Controller
	authService *auth.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.employees = employeecontroller.New(db)
	s.authService = authService

	app.Get(Path, s.List)
	app.Get(Path+"/:userId", s.Get)
	app.Put(Path+"/:userId", s.Put)
}

// List answers the profiles reporting to the managerId query parameter, or a
// page of all profiles when it is absent.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		employees []models.Employee
		err       error
	)

	if managerID := c.Query("managerId"); managerID != "" {
		employees, err = s.employees.ListByManager(c.UserContext(), managerID)
	} else {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}

		size := c.QueryInt("pageSize", DefaultPageSize)
		if size < 1 || size > MaxPageSize {
			size = DefaultPageSize
		}

		employees, err = s.employees.List(c.UserContext(), size, (page-1)*size)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to list employees")
		return err
	}

	return c.JSON(employees)
}

// Get answers the profile of the user in the path.
func (s *Service) Get(c *fiber.Ctx) error {
	e, err := s.employees.GetByUserID(c.UserContext(), c.Params("userId"))
	if errors.Is(err, employeecontroller.ErrEmployeeNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, "no employee profile")
	}

	if err != nil {
		return err
	}

	return c.JSON(e)
}

// Put creates or replaces the profile of the user in the path. It answers
// 201 when the profile was created.
func (s *Service) Put(c *fiber.Ctx) error {
	var e models.Employee
	if err := c.BodyParser(&e); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	e.ID = ""
	e.UserID = c.Params("userId")

	actor := auth.ActorFromUser(authmiddleware.CurrentUser(c), c.IP(), c.Get(fiber.HeaderUserAgent))

	created, err := s.authService.SaveEmployee(c.UserContext(), actor, &e)
	if errors.Is(err, auth.ErrUserNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, "user not found")
	}

	if err != nil {
		log.Error().Err(err).Str("userId", e.UserID).Msg("failed to save employee")
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(e)
}
