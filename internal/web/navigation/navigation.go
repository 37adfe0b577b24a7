// Package navigation builds the link list a signed-in user may follow.
package navigation

import (
	"github.com/HRPortal/HRPortal/internal/db/models"
)

// Permitter decides whether role may request path.
type Permitter interface {
	Permits(path string, role models.Role, ok bool) bool
}

// Link is a single navigation entry.
type Link struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// DefaultLinks is the full menu before filtering.
var DefaultLinks = []Link{ //nolint:gochecknoglobals
	{Title: "Dashboard", URL: "/dashboard"},
	{Title: "My profile", URL: "/employees/me"},
	{Title: "Users", URL: "/admin/users"},
	{Title: "Employees", URL: "/admin/employees"},
	{Title: "Audit log", URL: "/admin/audit-logs"},
}

// Build returns the links of all that the caller may follow, marking the one
// at current as active. ok is false for unauthenticated callers.
func Build(p Permitter, all []Link, role models.Role, ok bool, current string) []Link {
	links := make([]Link, 0, len(all))

	for _, l := range all {
		if !p.Permits(l.URL, role, ok) {
			continue
		}

		l.Active = l.URL == current
		links = append(links, l)
	}

	return links
}
