package layout

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/identity"
	authmiddleware "github.com/HRPortal/HRPortal/internal/web/middleware/auth"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		sess identity.Session
		user *models.User
		want string
	}{
		{
			name: "anonymous",
			want: `{"userId":null,"sessionId":null,"user":null}`,
		},
		{
			name: "signed in",
			sess: identity.Session{UserID: "user_1", SessionID: "sess_1"},
			user: &models.User{ID: "user_1", Email: "jane@example.com", Name: "Jane Doe", Role: models.RoleEmployee, IsActive: true},
			want: `{"userId":"user_1","sessionId":"sess_1","user":{
				"id":"user_1","email":"jane@example.com","name":"Jane Doe","avatarUrl":null,
				"role":"employee","isActive":true,"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals(authmiddleware.LocalsSession, tt.sess)

				if tt.user != nil {
					c.Locals(authmiddleware.LocalsUser, tt.user)
				}

				return c.Next()
			})
			app.Get(Path, Handler.Get)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}
