package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnsupportedGormEngine error if config db.gormEngine is not known.
	ErrUnsupportedGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrInvalidPathPrefix error if an access rule prefix does not start with a slash.
	ErrInvalidPathPrefix = errors.New("toml config access.rules.pathPrefix must start with /")

	// ErrInvalidRequiredRole error if an access rule names an unknown role.
	ErrInvalidRequiredRole = errors.New("toml config access.rules.requiredRole is not a known role")

	// ErrEmptyIssuer error if no session decoder can be configured.
	ErrEmptyIssuer = errors.New("toml config identityProvider.issuer can not be empty outside dev mode")
)
