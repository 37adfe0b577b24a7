// Package auditlog serves the audit trail to administrators.
package auditlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	auditlogcontroller "github.com/HRPortal/HRPortal/internal/db/controller/auditlog"
	"github.com/HRPortal/HRPortal/internal/web/handler"
)

// Path is the audit log endpoint.
const Path = handler.AdminPath + "/audit-logs"

// Service is the audit log handler service.
type Service struct {
	handler.Service
	logs *auditlogcontroller.Controller
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the audit log route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.logs = auditlogcontroller.New(db)

	app.Get(Path, s.List)
}

// List answers the newest entries matching the userId, resource and
// resourceId query parameters.
func (s *Service) List(c *fiber.Ctx) error {
	entries, err := s.logs.List(c.UserContext(), auditlogcontroller.Filter{
		UserID:     c.Query("userId"),
		Resource:   c.Query("resource"),
		ResourceID: c.Query("resourceId"),
		Limit:      c.QueryInt("limit", auditlogcontroller.DefaultLimit),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list audit logs")
		return err
	}

	return c.JSON(entries)
}
