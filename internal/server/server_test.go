package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes-admin-be/internal/bootstrap"
	"notes-admin-be/internal/config"
	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/pkg/serverutils"
	"notes-admin-be/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Port: "0", Environment: "test", CorsAllowedOrigins: "http://localhost:5173"},
		Jwt:   config.JwtConfig{Secret: "server_test_secret", TTL: time.Hour},
		Admin: config.AdminConfig{TimeZone: "UTC", ListPerPage: 100},
	}
}

func call[T any](t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, serverutils.BaseResponse[T]) {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAdminConsoleEndToEnd(t *testing.T) {
	db := testutil.NewDB(t)
	container, err := bootstrap.NewContainer(db, testConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	defer container.Close()
	app := New(testConfig(), container).GetApp()

	admin := testutil.CreateUser(t, db, "admin", "admin-pass")
	owner := testutil.CreateUser(t, db, "user", "")
	token := testutil.UniqueToken()

	// 1. Login
	code, login := call[dto.AdminLoginResponse](t, app, "POST", "/api/admin/login", "",
		dto.AdminLoginRequest{Username: admin.Username, Password: "admin-pass"})
	require.Equal(t, 200, code)
	access := login.Data.AccessToken
	require.NotEmpty(t, access)

	// 2. Add a note
	content := "buy " + token
	code, created := call[dto.NoteResponse](t, app, "POST", "/api/admin/notes", access,
		dto.AdminCreateNoteRequest{Title: "Groceries", Content: &content, OwnerId: owner.Id})
	require.Equal(t, 201, code)
	noteId := created.Data.Id

	// 3. Find it through the change list, by content and case-insensitively
	code, list := call[dto.ChangeListResponse](t, app, "GET", "/api/admin/notes?q="+strings.ToUpper(token)+"&updated_at=today", access, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, []string{"id", "title", "owner", "updated_at"}, list.Data.Columns)
	require.Len(t, list.Data.Rows, 1)
	row := list.Data.Rows[0]
	assert.Equal(t, noteId.String(), row.Pk)
	require.Len(t, row.Cells, 4)
	assert.Equal(t, "Groceries", row.Cells[1])
	assert.Equal(t, owner.Username, row.Cells[2])

	code, _ = call[any](t, app, "GET", "/api/admin/notes?updated_at=someday", access, nil)
	assert.Equal(t, 400, code)

	// 4. Change it and read the history
	title := "Groceries for the week"
	code, patched := call[dto.NoteResponse](t, app, "PATCH", fmt.Sprintf("/api/admin/notes/%s", noteId), access,
		dto.AdminPatchNoteRequest{Title: &title})
	require.Equal(t, 200, code)
	assert.Equal(t, title, patched.Data.Title)
	assert.Equal(t, content, patched.Data.Content)

	code, history := call[[]dto.AdminLogEntryResponse](t, app, "GET", fmt.Sprintf("/api/admin/notes/%s/history", noteId), access, nil)
	require.Equal(t, 200, code)
	require.Len(t, history.Data, 2)
	assert.Equal(t, "change", history.Data[0].Action)
	assert.Equal(t, "addition", history.Data[1].Action)

	// 5. Deleting the owner deletes the note
	code, deleted := call[dto.AdminDeleteUserResponse](t, app, "DELETE", fmt.Sprintf("/api/admin/users/%s", owner.Id), access, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), deleted.Data.NotesDeleted)

	code, _ = call[any](t, app, "GET", fmt.Sprintf("/api/admin/notes/%s", noteId), access, nil)
	assert.Equal(t, 404, code)
}
