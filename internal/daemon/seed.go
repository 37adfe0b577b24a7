package daemon

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

// seed promotes Access.BootstrapAdmins, given as user ids or emails. Users
// that have not signed in yet are skipped; they are promoted on a later start.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	users := user.New(db)

	for _, ref := range cfg.Access.BootstrapAdmins {
		u, err := lookup(ctx, users, ref)
		if errors.Is(err, user.ErrUserNotFound) {
			log.Warn().Str("user", ref).Msg("bootstrap admin has not signed in yet")
			continue
		}

		if err != nil {
			return err
		}

		if u.Role == models.RoleAdmin {
			continue
		}

		if _, err = authService.ChangeRole(ctx, auth.RoleChange{UserID: u.ID, Role: models.RoleAdmin}); err != nil {
			return err
		}

		log.Info().Str("userId", u.ID).Msg("promoted bootstrap admin")
	}

	return nil
}

func lookup(ctx context.Context, users *user.Controller, ref string) (*models.User, error) {
	u, err := users.Get(ctx, ref)
	if errors.Is(err, user.ErrUserNotFound) {
		return users.GetByEmail(ctx, ref)
	}

	return u, err
}
