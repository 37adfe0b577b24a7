package config

import (
	"time"

	"github.com/HRPortal/HRPortal/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode          bool // enable dev mode for development
	DB               DB
	Log              logger.Log
	Title            string
	Webserver        Webserver
	IdentityProvider IdentityProvider
	Access           Access
}

// DB holds the database configuration settings.
type DB struct {
	GormEngine   string // mysql, postgres or sqlite
	Host         string
	Port         int
	User         string
	Password     string
	Name         string // database name, or the file path for sqlite
	Extras       string // driver specific DSN parameters
	MaxOpenConns int
	MaxIdleConns int
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	CheckAliveURI  string // load balancer health check path
}

// IdentityProvider holds the settings of the external identity provider.
type IdentityProvider struct {
	// APIURL is the base URL of the provider's backend API.
	APIURL string
	// SecretKey authenticates profile fetches against the backend API.
	SecretKey string
	// Timeout bounds a single profile fetch.
	Timeout time.Duration
	// Issuer is the expected "iss" claim of session tokens.
	Issuer string
	// JWKSURL serves the keys session tokens are signed with.
	// Defaults to Issuer + "/.well-known/jwks.json".
	JWKSURL string
	// AuthorizedParties restricts the "azp" claim when not empty.
	AuthorizedParties []string
	// SessionCookie is the cookie carrying the session token.
	SessionCookie string
	// LinkedAccountProvider selects the external account stored as GoogleID.
	LinkedAccountProvider string
	// DevSessionSecret enables HS256 session tokens in dev mode.
	DevSessionSecret string
}

// Access holds the route protection table.
type Access struct {
	// SignInURL is where anonymous requests to SignInPaths are sent.
	SignInURL string
	// SignInPaths require an authenticated session.
	SignInPaths []string
	// ForbiddenPath is where denied requests are redirected.
	ForbiddenPath string
	// Rules are evaluated in order, the first matching prefix wins.
	Rules []AccessRule
	// BootstrapAdmins are user ids or emails promoted to admin at start.
	BootstrapAdmins []string
}

// AccessRule restricts a path prefix to a role.
type AccessRule struct {
	PathPrefix   string
	RequiredRole string
}
