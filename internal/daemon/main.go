// Package daemon wires the store, the identity provider and the web service
// into the running application.
package daemon

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db"
	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/identity"
	"github.com/HRPortal/HRPortal/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves HTTP until a shutdown signal arrives, then closes the store.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	if err := d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port)); err != nil {
		return err
	}

	return db.Close(d.db)
}

// New opens and migrates the store, promotes the bootstrap admins and builds
// the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	return build(ctx, cfg, conn)
}

// build takes ownership of conn and closes it when the daemon can not be built.
func build(ctx context.Context, cfg *config.Config, conn *gorm.DB) (*Daemon, error) {
	authService := auth.NewService(conn)

	rules, err := prepare(ctx, cfg, conn, authService)
	if err != nil {
		if cerr := db.Close(conn); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close database")
		}

		return nil, err
	}

	profiles := identity.NewClient(ctx, cfg.IdentityProvider)

	return &Daemon{
		cfg: cfg,
		db:  conn,
		webService: web.New(cfg, conn, web.Deps{
			Decoder:     sessionDecoder(ctx, cfg),
			Syncer:      auth.NewSyncer(user.New(conn), profiles, cfg.IdentityProvider.LinkedAccountProvider),
			Rules:       rules,
			AuthService: authService,
		}),
	}, nil
}

// prepare migrates and seeds the store and loads the access rules.
func prepare(ctx context.Context, cfg *config.Config, conn *gorm.DB, authService *auth.Service) (*auth.AccessRules, error) {
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}

	if err := seed(ctx, cfg, conn, authService); err != nil {
		return nil, err
	}

	return auth.NewAccessRules(cfg.Access.Rules)
}

// sessionDecoder verifies against the provider JWKS, or against the shared
// dev secret when dev mode has one.
func sessionDecoder(ctx context.Context, cfg *config.Config) identity.SessionDecoder {
	idp := cfg.IdentityProvider

	if cfg.DevMode && idp.DevSessionSecret != "" {
		log.Warn().Msg("dev mode: accepting HS256 session tokens signed with the dev secret")
		return identity.NewHMACDecoder(idp.DevSessionSecret, idp.Issuer)
	}

	return identity.NewOIDCDecoder(ctx, idp)
}
