package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"todoapi/internal/logging"
	"todoapi/internal/server/config"
	"todoapi/internal/server/services"
	"todoapi/internal/server/shared/db"
)

const (
	testUsername = "svc"
	testPassword = "pw"
	testSecret   = "httpapi-test-secret"
)

// newTestHandler builds the full middleware-wrapped handler over an
// on-disk sqlite database, so requests exercise the real acquire → query
// → release path end to end.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "todo_test.db") +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = sqlDB.Exec(`CREATE TABLE todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flag INTEGER NOT NULL DEFAULT 0,
		plan TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL DEFAULT ''
	)`)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AuthUsername = testUsername
	cfg.AuthPassword = testPassword
	cfg.SecretKey = testSecret

	logger := logging.NewJSON(io.Discard)
	provider := db.NewProvider(sqlDB, logger)

	srv, err := NewServer(":0", logger,
		services.NewUserService(cfg),
		services.NewTodoService(provider, cfg),
		cfg.SecretKey)
	require.NoError(t, err)

	return srv.Handler()
}

// doRequest runs one request through the handler. A non-empty token is
// sent as a bearer credential; a non-empty body is sent as JSON.
func doRequest(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// loginToken logs in with the test credentials and returns the issued token.
func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := doRequest(t, h, http.MethodPost, "/login", "",
		`{"username":"`+testUsername+`","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
