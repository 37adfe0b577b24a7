package auditlog

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}, &models.AuditLog{}))

	return db
}

func TestList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	authService := auth.NewService(db)

	admin := "admin_1"

	for _, id := range []string{"user_1", "user_2", "user_1"} {
		require.NoError(t, authService.Record(ctx, auth.Actor{UserID: &admin},
			models.AuditActionView, models.AuditResourceEmployee, id, nil))
	}

	app := fiber.New()
	s := &Service{}
	s.Init(app, &config.Config{}, db, authService)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?resourceId=user_1", 2},
		{"?resource=user", 0},
		{"?userId=admin_1&limit=1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var entries []models.AuditLog
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
			assert.Len(t, entries, tt.want)
		})
	}
}
