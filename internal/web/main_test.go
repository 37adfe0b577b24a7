package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/identity"
	"github.com/HRPortal/HRPortal/internal/web/handler/dashboard"
)

const (
	testSecret = "test-secret"
	testIssuer = "https://issuer.test"
)

type noProfiles struct{}

func (noProfiles) FetchProfile(context.Context, string) (*identity.Profile, error) {
	return nil, identity.ErrProfileNotFound
}

// setupService builds the web service. extra rules go to the pipeline only,
// not to the loaded config.
func setupService(t *testing.T, extra ...config.AccessRule) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}, &models.AuditLog{}))

	users := user.New(db)
	require.NoError(t, users.Create(context.Background(),
		&models.User{ID: "admin_1", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, IsActive: true}))
	require.NoError(t, users.Create(context.Background(),
		&models.User{ID: "user_1", Email: "jane@example.com", Name: "Jane", Role: models.RoleEmployee, IsActive: true}))

	cfg := &config.Config{
		Title: "HRPortal test",
		Webserver: config.Webserver{
			CheckAliveURI: "/checkalive",
		},
		IdentityProvider: config.IdentityProvider{SessionCookie: "__session"},
		Access: config.Access{
			SignInURL:     "/sign-in",
			SignInPaths:   []string{"/dashboard"},
			ForbiddenPath: "/dashboard",
			Rules:         []config.AccessRule{{PathPrefix: "/admin", RequiredRole: "admin"}},
		},
	}

	rules, err := auth.NewAccessRules(append(append([]config.AccessRule(nil), cfg.Access.Rules...), extra...))
	require.NoError(t, err)

	return New(cfg, db, Deps{
		Decoder:     identity.NewHMACDecoder(testSecret, testIssuer),
		Syncer:      auth.NewSyncer(users, noProfiles{}, ""),
		Rules:       rules,
		AuthService: auth.NewService(db),
	})
}

func get(t *testing.T, s *Service, path, subject string) (int, string, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)

	if subject != "" {
		token, err := identity.SignDevSession(testSecret, testIssuer, subject, "sess_"+subject, time.Minute)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, resp.Header.Get(fiber.HeaderLocation), string(body)
}

func TestCheckAlive(t *testing.T) {
	s := setupService(t)

	status, _, body := get(t, s, "/checkalive", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body)
	assert.True(t, s.Alive())

	s.alive.Store(false)

	status, _, _ = get(t, s, "/checkalive", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestMetrics(t *testing.T) {
	s := setupService(t)

	get(t, s, "/admin/users", "user_1")

	status, _, body := get(t, s, MetricsPath, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "hrportal_access_decisions_total")
}

func TestRootRedirect(t *testing.T) {
	status, location, _ := get(t, setupService(t), "/", "")
	assert.Equal(t, fiber.StatusSeeOther, status)
	assert.Equal(t, "/dashboard", location)
}

func TestPipeline(t *testing.T) {
	s := setupService(t)

	tests := []struct {
		name     string
		path     string
		subject  string
		status   int
		location string
	}{
		{"anonymous dashboard", "/dashboard", "", fiber.StatusSeeOther, "/sign-in?redirect_url=%2Fdashboard"},
		{"employee dashboard", "/dashboard", "user_1", fiber.StatusOK, ""},
		{"employee admin", "/admin/users", "user_1", fiber.StatusSeeOther, "/dashboard?error=forbidden"},
		{"admin admin", "/admin/users", "admin_1", fiber.StatusOK, ""},
		{"anonymous session", "/api/session", "", fiber.StatusOK, ""},
		{"unknown subject", "/api/session", "user_404", fiber.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, location, _ := get(t, s, tt.path, tt.subject)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.location, location)
		})
	}
}

func TestNewPanicsOnMissingDeps(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil, Deps{}) })
	assert.Panics(t, func() { New(&config.Config{}, &gorm.DB{}, Deps{}) })
}

func TestDashboardNavigationFollowsPipelineRules(t *testing.T) {
	s := setupService(t, config.AccessRule{PathPrefix: "/employees", RequiredRole: "manager"})

	status, _, body := get(t, s, "/dashboard", "user_1")
	require.Equal(t, fiber.StatusOK, status)

	var data dashboard.Data
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	require.Len(t, data.Navigation, 1)
	assert.Equal(t, "/dashboard", data.Navigation[0].URL)

	status, location, _ := get(t, s, "/employees/me", "user_1")
	assert.Equal(t, fiber.StatusSeeOther, status)
	assert.Equal(t, "/dashboard?error=forbidden", location)
}
