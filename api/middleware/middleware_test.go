package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/HermawanSutanto/sertifikat-lokal2/api/handler"
	"github.com/HermawanSutanto/sertifikat-lokal2/common"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useSecret(t *testing.T, secret string) {
	t.Helper()
	previous := common.Config
	common.Config = &shared.Config{JWTSecret: &secret}
	t.Cleanup(func() { common.Config = previous })
}

func TestAuthMiddleware(t *testing.T) {
	useSecret(t, "middleware-secret")

	token, err := util.GenerateAuthToken("user-7")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", AuthMiddleware(), func(c *fiber.Ctx) error {
		id, ok := GetUserFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(id)
	})

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid token", "Bearer " + token, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"malformed header", "Token " + token, fiber.StatusUnauthorized},
		{"invalid token", "Bearer abc.def.ghi", fiber.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetUserFromContext(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := GetUserFromContext(c)
		assert.False(t, ok)
		c.Locals("user_id", 42)
		_, ok = GetUserFromContext(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRecover(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handler.HandleError})
	app.Use(Recover())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("render exploded")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestCors(t *testing.T) {
	origin := "https://sertifikat.test"
	app := fiber.New()
	app.Use(Cors([]*string{&origin}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", origin)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://elsewhere.test")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
