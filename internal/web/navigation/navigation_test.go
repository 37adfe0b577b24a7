package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

func titles(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}

	return out
}

func TestBuild(t *testing.T) {
	rules, err := auth.NewAccessRules([]config.AccessRule{{PathPrefix: "/admin", RequiredRole: "admin"}})
	require.NoError(t, err)

	admin := Build(rules, DefaultLinks, models.RoleAdmin, true, "/admin/users")
	assert.Equal(t, []string{"Dashboard", "My profile", "Users", "Employees", "Audit log"}, titles(admin))
	assert.True(t, admin[2].Active)
	assert.False(t, admin[0].Active)

	employee := Build(rules, DefaultLinks, models.RoleEmployee, true, "/dashboard")
	assert.Equal(t, []string{"Dashboard", "My profile"}, titles(employee))
	assert.True(t, employee[0].Active)

	anonymous := Build(rules, DefaultLinks, "", false, "")
	assert.Len(t, anonymous, 2)
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	rules, err := auth.NewAccessRules(nil)
	require.NoError(t, err)

	all := []Link{{Title: "Dashboard", URL: "/dashboard"}}
	links := Build(rules, all, models.RoleEmployee, true, "/dashboard")

	assert.True(t, links[0].Active)
	assert.False(t, all[0].Active)
}
