// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/HRPortal/HRPortal/internal/db/models"
)

const (
	// EnvConfigJSON holds a JSON document merged over the TOML file.
	EnvConfigJSON = "HRPORTAL_CONFIG_JSON"

	// MainFile is the name of the configuration file inside the config dir.
	MainFile = "main.toml"

	defaultShutDownTime          = 5
	defaultCheckAliveURI         = "/checkalive"
	defaultSessionCookie         = "__session"
	defaultLinkedAccountProvider = "google"
	defaultProviderTimeout       = 10 * time.Second
	defaultSignInURL             = "/sign-in"
	defaultForbiddenPath         = "/dashboard"
	defaultGormEngine            = "mysql"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	if _, err = toml.DecodeFile(path+MainFile, &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not run without and fills in
// defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = defaultGormEngine
	case "mysql", "postgres", "sqlite":
	default:
		return errors.Wrap(ErrUnsupportedGormEngine, invalidErrMessage)
	}

	if err := validateIdentityProvider(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if err := validateAccess(&c.Access); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}

func validateIdentityProvider(c *Config) error {
	idp := &c.IdentityProvider

	if idp.Issuer == "" && (!c.DevMode || idp.DevSessionSecret == "") {
		return ErrEmptyIssuer
	}

	if idp.JWKSURL == "" && idp.Issuer != "" {
		idp.JWKSURL = strings.TrimSuffix(idp.Issuer, "/") + "/.well-known/jwks.json"
	}

	if idp.SessionCookie == "" {
		idp.SessionCookie = defaultSessionCookie
	}

	if idp.LinkedAccountProvider == "" {
		idp.LinkedAccountProvider = defaultLinkedAccountProvider
	}

	if idp.Timeout == 0 {
		idp.Timeout = defaultProviderTimeout
	}

	return nil
}

func validateAccess(a *Access) error {
	if a.SignInURL == "" {
		a.SignInURL = defaultSignInURL
	}

	if a.ForbiddenPath == "" {
		a.ForbiddenPath = defaultForbiddenPath
	}

	for i, rule := range a.Rules {
		if !strings.HasPrefix(rule.PathPrefix, "/") {
			return fmt.Errorf("rule %d (%q): %w", i, rule.PathPrefix, ErrInvalidPathPrefix)
		}

		if _, err := models.ParseRole(rule.RequiredRole); err != nil {
			return fmt.Errorf("rule %d (%q): %w", i, rule.RequiredRole, ErrInvalidRequiredRole)
		}
	}

	for i, p := range a.SignInPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("sign-in path %d (%q): %w", i, p, ErrInvalidPathPrefix)
		}
	}

	return nil
}
