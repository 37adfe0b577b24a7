// Package layout serves the session bootstrap every page layout loads first.
package layout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/web/handler"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
)

// Path is the session bootstrap endpoint.
const Path = handler.RootPath + "api/session"

// Props are the layout properties. All fields are null for anonymous requests.
type Props struct {
	UserID    *string      `json:"userId"`
	SessionID *string      `json:"sessionId"`
	User      *models.User `json:"user"`
}

// Service is the layout handler service.
type Service struct {
	handler.Service
}

// Handler is the layout handler.
var Handler = Service{}

// Init registers the bootstrap route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	app.Get(Path, s.Get)
}

// Get answers the layout properties of the request.
func (s *Service) Get(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")

	return c.JSON(PropsFrom(c))
}

// PropsFrom builds Props from the request pipeline locals.
func PropsFrom(c *fiber.Ctx) Props {
	var p Props

	sess := authmiddleware.SessionFrom(c)
	if sess.Authenticated() {
		userID := sess.UserID
		p.UserID = &userID

		if sess.SessionID != "" {
			sessionID := sess.SessionID
			p.SessionID = &sessionID
		}
	}

	p.User = authmiddleware.CurrentUser(c)

	return p
}
