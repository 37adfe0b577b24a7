package employee

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/db/controller/auditlog"
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

func TestPutThenGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.User{
		ID: "user_1", Email: "jane@example.com", Name: "Jane", Role: models.RoleEmployee, IsActive: true,
	}).Error)

	app := fiber.New()
	s := &Service{}
	s.Init(app, &config.Config{}, db, auth.NewService(db))

	put := func(userID, body string) int {
		req := httptest.NewRequest(fiber.MethodPut, Path+"/"+userID, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)

		return resp.StatusCode
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path+"/user_1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, fiber.StatusCreated, put("user_1", `{"position":"Engineer","userId":"someone_else"}`))
	assert.Equal(t, fiber.StatusOK, put("user_1", `{"position":"Lead","department":"Platform"}`))
	assert.Equal(t, fiber.StatusNotFound, put("ghost", `{"position":"Engineer"}`))
	assert.Equal(t, fiber.StatusBadRequest, put("user_1", `{`))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, Path+"/user_1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var e models.Employee
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "user_1", e.UserID)
	assert.Equal(t, "Lead", *e.Position)
	assert.Equal(t, "Platform", *e.Department)

	entries, err := auditlog.New(db).List(context.Background(), auditlog.Filter{Resource: models.AuditResourceEmployee})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	authService := auth.NewService(db)

	boss := "boss"

	for _, id := range []string{"boss", "user_1", "user_2"} {
		require.NoError(t, db.Create(&models.User{
			ID: id, Email: id + "@example.com", Name: id, Role: models.RoleEmployee, IsActive: true,
		}).Error)

		e := &models.Employee{UserID: id}
		if id != boss {
			e.ManagerID = &boss
		}

		_, err := authService.SaveEmployee(ctx, auth.Actor{}, e)
		require.NoError(t, err)
	}

	app := fiber.New()
	s := &Service{}
	s.Init(app, &config.Config{}, db, authService)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"boss", "user_1", "user_2"}},
		{"?managerId=boss", []string{"user_1", "user_2"}},
		{"?managerId=user_1", []string{}},
		{"?page=2&pageSize=2", []string{"user_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var employees []models.Employee
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&employees))

			ids := make([]string, 0, len(employees))
			for _, e := range employees {
				ids = append(ids, e.UserID)
			}

			assert.Equal(t, tt.want, ids)
		})
	}
}
