package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "admin", input: "admin", want: RoleAdmin},
		{name: "national leader", input: "national_leader", want: RoleNationalLeader},
		{name: "manager with spaces", input: "  manager ", want: RoleManager},
		{name: "employee", input: "employee", want: RoleEmployee},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "superadmin", wantErr: true},
		{name: "case sensitive", input: "Admin", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				assert.Empty(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRoleScan(t *testing.T) {
	var r Role

	require.NoError(t, r.Scan("manager"))
	assert.Equal(t, RoleManager, r)

	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, RoleAdmin, r)

	require.ErrorIs(t, r.Scan("root"), ErrInvalidRole)
	require.ErrorIs(t, r.Scan(nil), ErrInvalidRole)
	require.ErrorIs(t, r.Scan(42), ErrInvalidRole)
}

func TestRoleValue(t *testing.T) {
	v, err := RoleEmployee.Value()
	require.NoError(t, err)
	assert.Equal(t, "employee", v)

	_, err = Role("owner").Value()
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuditActionValid(t *testing.T) {
	for _, a := range []AuditAction{AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionView} {
		assert.True(t, a.Valid(), a)
	}

	assert.False(t, AuditAction("login").Valid())
}
