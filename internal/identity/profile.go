package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/HRPortal/HRPortal/internal/config"
)

// EmailAddress is one address attached to a profile.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// ExternalAccount is a social login linked to a profile.
type ExternalAccount struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"provider_user_id"`
}

// Profile is the provider's view of a user.
type Profile struct {
	ID                    string            `json:"id"`
	EmailAddresses        []EmailAddress    `json:"email_addresses"`
	PrimaryEmailAddressID string            `json:"primary_email_address_id"`
	FirstName             string            `json:"first_name"`
	LastName              string            `json:"last_name"`
	ImageURL              string            `json:"image_url"`
	ExternalAccounts      []ExternalAccount `json:"external_accounts"`
}

// PrimaryEmail returns the address flagged as primary, falling back to the
// first listed one. It is empty when the profile has no address.
func (p *Profile) PrimaryEmail() string {
	for _, e := range p.EmailAddresses {
		if p.PrimaryEmailAddressID != "" && e.ID == p.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}

	if len(p.EmailAddresses) > 0 {
		return p.EmailAddresses[0].EmailAddress
	}

	return ""
}

// LinkedAccountID returns the provider user id of the first external account
// of the given provider. Both "google" and "oauth_google" match "google".
func (p *Profile) LinkedAccountID(provider string) string {
	provider = strings.TrimPrefix(provider, "oauth_")

	for _, a := range p.ExternalAccounts {
		if strings.TrimPrefix(a.Provider, "oauth_") == provider && a.ProviderUserID != "" {
			return a.ProviderUserID
		}
	}

	return ""
}

// Client fetches profiles from the provider's backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client authenticating with cfg.SecretKey as bearer token.
func NewClient(ctx context.Context, cfg config.IdentityProvider) *Client {
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.SecretKey,
		TokenType:   "Bearer",
	}))

	hc.Timeout = cfg.Timeout
	if hc.Timeout == 0 {
		hc.Timeout = 10 * time.Second //nolint:mnd
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.APIURL, "/"),
		http:    hc,
	}
}

// FetchProfile returns the profile of subject.
func (c *Client) FetchProfile(ctx context.Context, subject string) (*Profile, error) {
	endpoint := c.baseURL + "/v1/users/" + url.PathEscape(subject)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, subject)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:mnd
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var p Profile
	if err = json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if p.PrimaryEmail() == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoEmailAddress, subject)
	}

	return &p, nil
}
