package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	coreauth "github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/identity"
)

const (
	// LocalsSession holds the identity.Session of the request.
	LocalsSession = "auth"

	// LocalsUser holds the *models.User of the request, unset when anonymous.
	LocalsUser = "CurrentUser"

	// ForbiddenError is the error query value of a denied request's redirect.
	ForbiddenError = "forbidden"

	bearerPrefix = "Bearer "
)

// UserSyncer resolves the local user of a session subject.
type UserSyncer interface {
	SyncUser(ctx context.Context, subject string) (*models.User, error)
}

// Config controls the pipeline.
type Config struct {
	// SessionCookie carries the session token when no bearer header is sent.
	SessionCookie string
	// SignInURL receives anonymous requests to SignInPaths.
	SignInURL string
	// SignInPaths are prefixes that need a session.
	SignInPaths []string
	// ForbiddenPath receives denied requests.
	ForbiddenPath string
	// BaseURL makes the sign-in redirect_url absolute when set.
	BaseURL string
}

// ConfigFrom extracts the pipeline settings from the service config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		SessionCookie: cfg.IdentityProvider.SessionCookie,
		SignInURL:     cfg.Access.SignInURL,
		SignInPaths:   cfg.Access.SignInPaths,
		ForbiddenPath: cfg.Access.ForbiddenPath,
		BaseURL:       cfg.Webserver.URL,
	}
}

// Session decodes the request's session token into LocalsSession.
// Invalid tokens are logged at debug level and treated as absent.
func Session(decoder identity.SessionDecoder, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sess identity.Session

		if token := sessionToken(c, cfg.SessionCookie); token != "" {
			decoded, err := decoder.Decode(c.UserContext(), token)
			if err != nil {
				log.Debug().Err(fmt.Errorf("%w: %w", coreauth.ErrSessionInvalid, err)).
					Str("path", c.Path()).
					Msg("continuing as anonymous")
			} else {
				sess = decoded
			}
		}

		c.Locals(LocalsSession, sess)

		if !sess.Authenticated() && underAny(c.Path(), cfg.SignInPaths) {
			back := strings.TrimSuffix(cfg.BaseURL, "/") + c.OriginalURL()
			target := cfg.SignInURL + "?redirect_url=" + url.QueryEscape(back)

			return c.Redirect(target, fiber.StatusSeeOther)
		}

		return c.Next()
	}
}

// Sync stores the local user of the session subject in LocalsUser.
// Anonymous requests pass without touching the store. Sync failures end the
// request with an error wrapping ErrAuthSync.
func Sync(syncer UserSyncer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFrom(c)
		if !sess.Authenticated() {
			return c.Next()
		}

		u, err := syncer.SyncUser(c.UserContext(), sess.UserID)
		if err != nil {
			return fmt.Errorf("%w: %w", coreauth.ErrAuthSync, err)
		}

		c.Locals(LocalsUser, u)

		return c.Next()
	}
}

// Guard redirects requests the access rules deny to ForbiddenPath with
// error=forbidden and status 303.
func Guard(rules *coreauth.AccessRules, cfg Config) fiber.Handler {
	target := cfg.ForbiddenPath
	if strings.Contains(target, "?") {
		target += "&error=" + ForbiddenError
	} else {
		target += "?error=" + ForbiddenError
	}

	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		role, ok := coreauth.ResolveRole(u)

		d := rules.Evaluate(c.Path(), role, ok)
		if d.Allowed {
			return c.Next()
		}

		event := log.Warn().Str("path", c.Path()).Str("role", string(role))
		if u != nil {
			event = event.Str("userId", u.ID)
		}

		if d.Rule != nil {
			event = event.Str("requiredRole", string(d.Rule.Role))
		}

		event.Msg("access denied")

		return c.Redirect(target, fiber.StatusSeeOther)
	}
}

// CurrentUser returns the synced user of the request, nil when anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(LocalsUser).(*models.User)
	return u
}

// SessionFrom returns the decoded session of the request.
func SessionFrom(c *fiber.Ctx) identity.Session {
	s, _ := c.Locals(LocalsSession).(identity.Session)
	return s
}

// UserID returns the id of the current user, empty when anonymous.
func UserID(c *fiber.Ctx) string {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}

	return ""
}

func sessionToken(c *fiber.Ctx, cookie string) string {
	if h := c.Get(fiber.HeaderAuthorization); len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}

	if cookie == "" {
		return ""
	}

	return c.Cookies(cookie)
}

func underAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if (coreauth.Rule{Prefix: p}).Matches(path) {
			return true
		}
	}

	return false
}
