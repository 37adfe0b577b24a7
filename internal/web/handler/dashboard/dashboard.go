// Package dashboard provides the landing page of signed-in users.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/web/handler"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
	"github.com/HRPortal/HRPortal/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"
)

// Data is the dashboard payload.
type Data struct {
	User *models.User `json:"user"`
	// Error echoes the error query parameter, e.g. "forbidden" after a denied request.
	Error string `json:"error,omitempty"`
	// Admin tells the client whether to show administration links.
	Admin bool `json:"admin"`
	// Navigation lists the links the user may follow.
	Navigation []navigation.Link `json:"navigation"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	rules *auth.AccessRules
}

// New returns the dashboard handler. rules filter the navigation links and
// must be the table the request pipeline gates with.
func New(rules *auth.AccessRules) *Service {
	return &Service{rules: rules}
}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	if s.rules == nil {
		log.Fatal().Msg("dashboard access rules are nil")
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get answers the dashboard data of the current user.
func (s *Service) Get(c *fiber.Ctx) error {
	u := authmiddleware.CurrentUser(c)
	if u == nil {
		return handler.JSONError(c, fiber.StatusUnauthorized, "sign in required")
	}

	role, ok := auth.ResolveRole(u)

	return c.JSON(Data{
		User:       u,
		Error:      c.Query("error"),
		Admin:      role == models.RoleAdmin,
		Navigation: navigation.Build(s.rules, navigation.DefaultLinks, role, ok, Path),
	})
}
