package auth

import (
	"fmt"
	"strings"

	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

// Rule restricts every path under Prefix to Role.
type Rule struct {
	Prefix string
	Role   models.Role
}

// Matches reports whether path is Prefix or lies below it.
// "/admin" matches "/admin" and "/admin/users" but not "/administrator".
func (r Rule) Matches(path string) bool {
	if !strings.HasPrefix(path, r.Prefix) {
		return false
	}

	if len(path) == len(r.Prefix) || strings.HasSuffix(r.Prefix, "/") {
		return true
	}

	return path[len(r.Prefix)] == '/'
}

// Decision is the outcome of AccessRules.Evaluate.
type Decision struct {
	Allowed bool
	// Rule is the rule that decided, nil when no rule matched.
	Rule *Rule
}

// AccessRules is an ordered restricted-path table.
type AccessRules struct {
	rules []Rule
}

// NewAccessRules converts the configured table, keeping its order.
func NewAccessRules(cfg []config.AccessRule) (*AccessRules, error) {
	rules := make([]Rule, 0, len(cfg))

	for i, c := range cfg {
		role, err := models.ParseRole(c.RequiredRole)
		if err != nil {
			return nil, fmt.Errorf("access rule %d: %w", i, err)
		}

		if !strings.HasPrefix(c.PathPrefix, "/") {
			return nil, fmt.Errorf("access rule %d: %w", i, config.ErrInvalidPathPrefix)
		}

		rules = append(rules, Rule{Prefix: c.PathPrefix, Role: role})
	}

	return &AccessRules{rules: rules}, nil
}

// Permits is Evaluate without counting the decision. It serves link
// filtering, not request gating.
func (a *AccessRules) Permits(path string, role models.Role, ok bool) bool {
	for i := range a.rules {
		if a.rules[i].Matches(path) {
			return ok && role == a.rules[i].Role
		}
	}

	return true
}

// Evaluate decides whether a caller with role may request path. The first
// matching rule decides; a path no rule matches is allowed. ok is false for
// unauthenticated callers, who pass only unrestricted paths.
func (a *AccessRules) Evaluate(path string, role models.Role, ok bool) Decision {
	for i := range a.rules {
		r := &a.rules[i]
		if !r.Matches(path) {
			continue
		}

		allowed := ok && role == r.Role

		if allowed {
			decisionCounter.WithLabelValues(decisionAllowed).Inc()
		} else {
			decisionCounter.WithLabelValues(decisionDenied).Inc()
		}

		return Decision{Allowed: allowed, Rule: r}
	}

	decisionCounter.WithLabelValues(decisionAllowed).Inc()

	return Decision{Allowed: true}
}
