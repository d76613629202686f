package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(JwtMiddleware(testSecret), RequireRole("admin"))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(UserId(ctx).String())
	})

	userId := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name  string
		token string
		code  int
	}{
		{"missing header", "", 401},
		{"admin", sign(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "role": "admin", "exp": exp}), 200},
		{"plain user", sign(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "role": "user", "exp": exp}), 403},
		{"no role", sign(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "exp": exp}), 403},
		{"wrong secret", sign(t, "other", jwt.MapClaims{"user_id": userId.String(), "role": "admin", "exp": exp}), 401},
		{"expired", sign(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}), 401},
		{"no expiry", sign(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "role": "admin"}), 401},
		{"bad user id", sign(t, testSecret, jwt.MapClaims{"user_id": "42", "role": "admin", "exp": exp}), 401},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}
