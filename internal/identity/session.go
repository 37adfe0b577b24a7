package identity

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"

	"github.com/HRPortal/HRPortal/internal/config"
)

// Session is the decoded state of a session token.
// The zero value is an anonymous session.
type Session struct {
	UserID    string
	SessionID string
	Claims    map[string]any
}

// Authenticated reports whether the session names a subject.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// SessionDecoder turns a raw session token into a Session.
type SessionDecoder interface {
	Decode(ctx context.Context, token string) (Session, error)
}

// OIDCDecoder verifies provider issued JWTs against the provider's JWKS.
type OIDCDecoder struct {
	verifier          *oidc.IDTokenVerifier
	authorizedParties []string
}

// NewOIDCDecoder builds a decoder for cfg.Issuer using the keys at cfg.JWKSURL.
// ctx bounds the background key fetches and should live as long as the decoder.
func NewOIDCDecoder(ctx context.Context, cfg config.IdentityProvider) *OIDCDecoder {
	keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)

	return &OIDCDecoder{
		// session tokens have no audience, azp is checked instead
		verifier:          oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{SkipClientIDCheck: true}),
		authorizedParties: cfg.AuthorizedParties,
	}
}

// Decode implements SessionDecoder.
func (d *OIDCDecoder) Decode(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrEmptyToken
	}

	idToken, err := d.verifier.Verify(ctx, token)
	if err != nil {
		return Session{}, fmt.Errorf("failed to verify session token: %w", err)
	}

	var claims map[string]any
	if err = idToken.Claims(&claims); err != nil {
		return Session{}, fmt.Errorf("failed to parse session claims: %w", err)
	}

	return sessionFromClaims(idToken.Subject, claims, d.authorizedParties)
}

// HMACDecoder accepts HS256 tokens signed with a shared secret.
type HMACDecoder struct {
	secret []byte
	issuer string
}

// NewHMACDecoder returns a decoder for tokens signed with secret. When issuer
// is not empty the iss claim must match it.
func NewHMACDecoder(secret, issuer string) *HMACDecoder {
	return &HMACDecoder{secret: []byte(secret), issuer: issuer}
}

// Decode implements SessionDecoder.
func (d *HMACDecoder) Decode(_ context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrEmptyToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if d.issuer != "" {
		opts = append(opts, jwt.WithIssuer(d.issuer))
	}

	claims := jwt.MapClaims{}

	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return d.secret, nil
	}, opts...); err != nil {
		return Session{}, fmt.Errorf("failed to verify session token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Session{}, fmt.Errorf("failed to read subject: %w", err)
	}

	return sessionFromClaims(sub, claims, nil)
}

// SignDevSession issues an HS256 session token for subject, valid for ttl.
func SignDevSession(secret, issuer, subject, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": subject,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	if issuer != "" {
		claims["iss"] = issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func sessionFromClaims(subject string, claims map[string]any, authorizedParties []string) (Session, error) {
	if strings.TrimSpace(subject) == "" {
		return Session{}, ErrMissingSubject
	}

	if len(authorizedParties) > 0 {
		azp, _ := claims["azp"].(string)
		if azp != "" && !slices.Contains(authorizedParties, azp) {
			return Session{}, fmt.Errorf("%w: %s", ErrUnauthorizedParty, azp)
		}
	}

	sid, _ := claims["sid"].(string)

	return Session{UserID: subject, SessionID: sid, Claims: claims}, nil
}
