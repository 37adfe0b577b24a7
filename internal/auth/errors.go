package auth

import "errors"

var (
	// ErrSessionInvalid marks a missing, malformed or unverifiable session token.
	// The request continues as anonymous.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrIdentityProviderUnavailable is returned when the profile of a new
	// subject can not be fetched or lacks the data a user record needs.
	ErrIdentityProviderUnavailable = errors.New("identity provider unavailable")

	// ErrStoreUnavailable is returned when the user store fails to read or write.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrConflictOnCreate is returned by a create that lost a race or collided
	// with another row's unique value. SyncUser recovers from it internally.
	ErrConflictOnCreate = errors.New("conflict on user create")

	// ErrAuthSync wraps sync failures inside the request pipeline.
	ErrAuthSync = errors.New("authentication sync failed")

	// ErrUserNotFound is returned when a role or status update targets no row.
	ErrUserNotFound = errors.New("user not found")
)
