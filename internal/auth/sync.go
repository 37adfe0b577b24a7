package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/identity"
)

// UserStore is the part of the user controller the syncer needs.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// ProfileFetcher loads a subject's profile from the identity provider.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, subject string) (*identity.Profile, error)
}

// Syncer materializes local users from provider profiles.
type Syncer struct {
	users          UserStore
	profiles       ProfileFetcher
	linkedProvider string
}

// NewSyncer returns a syncer storing the account of linkedProvider as GoogleID.
func NewSyncer(users UserStore, profiles ProfileFetcher, linkedProvider string) *Syncer {
	if linkedProvider == "" {
		linkedProvider = "google"
	}

	return &Syncer{users: users, profiles: profiles, linkedProvider: linkedProvider}
}

// SyncUser returns the local user of subject, creating it on first sight.
// An existing row is returned unchanged without contacting the provider.
func (s *Syncer) SyncUser(ctx context.Context, subject string) (*models.User, error) {
	u, err := s.users.Get(ctx, subject)

	switch {
	case err == nil:
		syncCounter.WithLabelValues(syncHit).Inc()
		return u, nil
	case !errors.Is(err, user.ErrUserNotFound):
		syncCounter.WithLabelValues(syncError).Inc()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	profile, err := s.profiles.FetchProfile(ctx, subject)
	if err != nil {
		syncCounter.WithLabelValues(syncError).Inc()
		log.Error().Err(err).Str("subject", subject).Msg("failed to fetch identity profile")

		return nil, fmt.Errorf("%w: %w", ErrIdentityProviderUnavailable, err)
	}

	u, err = s.newUser(subject, profile)
	if err != nil {
		syncCounter.WithLabelValues(syncError).Inc()
		return nil, err
	}

	err = s.create(ctx, u)

	switch {
	case err == nil:
		syncCounter.WithLabelValues(syncCreated).Inc()
		log.Info().Str("subject", subject).Str("email", u.Email).Msg("user created from identity profile")

		return u, nil
	case errors.Is(err, ErrConflictOnCreate):
		return s.resolveConflict(ctx, subject, err)
	default:
		syncCounter.WithLabelValues(syncError).Inc()
		log.Error().Err(err).Str("subject", subject).Msg("failed to create user")

		return nil, err
	}
}

func (s *Syncer) create(ctx context.Context, u *models.User) error {
	err := s.users.Create(ctx, u)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrUserExists):
		return fmt.Errorf("%w: %w", ErrConflictOnCreate, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

// resolveConflict re-reads once after a lost insert. Finding nothing means the
// collision was on another subject's unique value, which is a store problem
// rather than an absent user.
func (s *Syncer) resolveConflict(ctx context.Context, subject string, conflict error) (*models.User, error) {
	syncCounter.WithLabelValues(syncConflict).Inc()
	log.Warn().Err(conflict).Str("subject", subject).Msg("user create conflicted, re-reading")

	u, err := s.users.Get(ctx, subject)
	if err == nil {
		return u, nil
	}

	syncCounter.WithLabelValues(syncError).Inc()

	if errors.Is(err, user.ErrUserNotFound) {
		log.Error().Err(conflict).Str("subject", subject).Msg("user create conflicted with another subject")

		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, user.ErrUserExists)
	}

	return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func (s *Syncer) newUser(subject string, p *identity.Profile) (*models.User, error) {
	email := p.PrimaryEmail()
	if email == "" {
		return nil, fmt.Errorf("%w: %w", ErrIdentityProviderUnavailable, identity.ErrNoEmailAddress)
	}

	u := &models.User{
		ID:       subject,
		Email:    email,
		Name:     DeriveName(p.FirstName, p.LastName, email),
		Role:     models.RoleEmployee,
		IsActive: true,
	}

	if p.ImageURL != "" {
		avatar := p.ImageURL
		u.AvatarURL = &avatar
	}

	if id := p.LinkedAccountID(s.linkedProvider); id != "" {
		u.GoogleID = &id
	}

	return u, nil
}

// DeriveName joins first and last name. When both are blank it falls back to
// the local part of email.
func DeriveName(first, last, email string) string {
	if name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last)); name != "" {
		return name
	}

	local, _, _ := strings.Cut(email, "@")

	return local
}
