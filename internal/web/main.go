package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/identity"
	fiberlogger "github.com/HRPortal/HRPortal/internal/logger/adapter/fiber"
	"github.com/HRPortal/HRPortal/internal/web/handler"
	"github.com/HRPortal/HRPortal/internal/web/handler/admin/auditlog"
	adminemployee "github.com/HRPortal/HRPortal/internal/web/handler/admin/employee"
	adminuser "github.com/HRPortal/HRPortal/internal/web/handler/admin/user"
	"github.com/HRPortal/HRPortal/internal/web/handler/dashboard"
	"github.com/HRPortal/HRPortal/internal/web/handler/employee"
	"github.com/HRPortal/HRPortal/internal/web/handler/layout"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
)

// MetricsPath serves the Prometheus exposition.
const MetricsPath = "/metrics"

// Deps are the collaborators of the request pipeline.
type Deps struct {
	Decoder     identity.SessionDecoder
	Syncer      authmiddleware.UserSyncer
	Rules       *auth.AccessRules
	AuthService *auth.Service
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the check alive endpoint answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates the web service: ambient middleware, the auth pipeline and
// every handler.
func New(cfg *config.Config, db *gorm.DB, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if deps.Decoder == nil || deps.Syncer == nil || deps.Rules == nil || deps.AuthService == nil {
		panic("web dependencies cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
		UserID:        authmiddleware.UserID,
	}))

	// registered ahead of the auth pipeline, probes carry no session
	app.Get(cfg.Webserver.CheckAliveURI, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	mw := authmiddleware.ConfigFrom(cfg)
	app.Use(
		authmiddleware.Session(deps.Decoder, mw),
		authmiddleware.Sync(deps.Syncer),
		authmiddleware.Guard(deps.Rules, mw),
	)

	handlers := []handler.Service{
		dashboard.New(deps.Rules),
		&layout.Handler,
		&employee.Handler,
		&adminuser.Handler,
		&adminemployee.Handler,
		&auditlog.Handler,
	}

	for _, h := range handlers {
		h.Init(app, cfg, db, deps.AuthService)
	}

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path, fiber.StatusSeeOther)
	})

	return service
}
