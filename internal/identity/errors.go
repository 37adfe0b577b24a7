package identity

import "errors"

var (
	// ErrProfileNotFound is returned when the provider does not know the subject.
	ErrProfileNotFound = errors.New("identity provider: profile not found")

	// ErrUnexpectedStatus is returned for any other non-2xx provider answer.
	ErrUnexpectedStatus = errors.New("identity provider: unexpected status")

	// ErrNoEmailAddress is returned when a profile carries no email address.
	ErrNoEmailAddress = errors.New("identity provider: profile has no email address")

	// ErrEmptyToken is returned when there is no token to decode.
	ErrEmptyToken = errors.New("session token is empty")

	// ErrMissingSubject is returned when a valid token carries no subject.
	ErrMissingSubject = errors.New("session token has no subject")

	// ErrUnauthorizedParty is returned when the azp claim is not allowed.
	ErrUnauthorizedParty = errors.New("session token issued for an unauthorized party")
)
