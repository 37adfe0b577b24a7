package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRole is returned when a value is not one of the known roles.
var ErrInvalidRole = errors.New("invalid role")

// Role is the authorization level of a user.
// It is stored as a plain string column but only the values below are accepted.
type Role string

const (
	// RoleAdmin grants access to the administration area.
	RoleAdmin Role = "admin"
	// RoleNationalLeader is the country-wide leadership role.
	RoleNationalLeader Role = "national_leader"
	// RoleManager is assigned to people managing a team.
	RoleManager Role = "manager"
	// RoleEmployee is the default role of every newly synced user.
	RoleEmployee Role = "employee"
)

// Roles lists every known role, highest privilege first.
var Roles = []Role{RoleAdmin, RoleNationalLeader, RoleManager, RoleEmployee} //nolint:gochecknoglobals

// ParseRole converts s into a Role. Unknown values are rejected.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}

	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleNationalLeader, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
	}

	return string(r), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src any) error {
	var s string

	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("%w: null", ErrInvalidRole)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidRole, src)
	}

	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}
