package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"notes-admin-be/internal/entity"
	"notes-admin-be/pkg/admin/changelist"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{entity.ErrNoteNotFound, 404},
		{fmt.Errorf("load: %w", entity.ErrUserNotFound), 404},
		{&entity.FieldError{Field: "title", Err: entity.ErrTooLong, Limit: 200}, 400},
		{entity.NewFieldError("owner", entity.ErrDanglingReference), 400},
		{fmt.Errorf("%w: bad", ErrInvalidRequest), 400},
		{fmt.Errorf("%w: updated_at=tomorrow", changelist.ErrInvalidFilter), 400},
		{fmt.Errorf("%w: Key (username)=(ada)", entity.ErrUsernameTaken), 409},
		{entity.ErrInvalidCredentials, 401},
		{entity.ErrForbidden, 403},
		{fiber.ErrMethodNotAllowed, 405},
		{errors.New("connection reset"), 500},
	}
	for _, tc := range cases {
		code, _ := StatusFor(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
	}

	_, message := StatusFor(errors.New("pq: secret detail"))
	assert.Equal(t, "Internal server error", message)

	_, message = StatusFor(fmt.Errorf("%w: Key (username)=(ada)", entity.ErrUsernameTaken))
	assert.Equal(t, "username already exists", message)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return fmt.Errorf("find: %w", entity.ErrNoteNotFound)
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("fine", 1))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "find: note not found", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var ok BaseResponse[int]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.True(t, ok.Success)
	assert.Equal(t, 1, ok.Data)

	resp, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
