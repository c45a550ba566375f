package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyguard/internal/logging"
	"github.com/dmitrijs2005/warrantyguard/internal/server/metrics"
	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
	"github.com/dmitrijs2005/warrantyguard/internal/server/repositories/backups"
	"github.com/dmitrijs2005/warrantyguard/internal/server/services"
)

type failingRepo struct {
	backups.Repository
	err error
}

func (f failingRepo) Put(context.Context, string, *models.Backup) error { return f.err }
func (f failingRepo) Get(context.Context, string) (*models.Backup, error) {
	return nil, f.err
}

func newTestServer(t *testing.T, repo backups.Repository) *HTTPServer {
	t.Helper()
	m := metrics.New("test")
	bs := services.NewBackupService(repo, m, logging.Nop())
	return NewHTTPServer(":0", logging.Nop(), bs, m, time.Second)
}

func newFileServer(t *testing.T) (*HTTPServer, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := backups.NewFileRepository(dir)
	require.NoError(t, err)
	return newTestServer(t, repo), dir
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestBackup_Responses(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "ok",
			method:     http.MethodPost,
			body:       `{"userId":"alice","products":[],"date":"2024-06-01T00:00:00Z"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"message": "Backup successful"},
		},
		{
			name:       "put accepted",
			method:     http.MethodPut,
			body:       `{"userId":"alice","products":[]}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"message": "Backup successful"},
		},
		{
			name:       "missing products",
			method:     http.MethodPost,
			body:       `{"userId":"alice"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Missing userId or products"},
		},
		{
			name:       "null products",
			method:     http.MethodPost,
			body:       `{"userId":"alice","products":null}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Missing userId or products"},
		},
		{
			name:       "missing user",
			method:     http.MethodPost,
			body:       `{"products":[]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Missing userId or products"},
		},
		{
			name:       "path traversal user",
			method:     http.MethodPost,
			body:       `{"userId":"../../etc/passwd","products":[]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid userId"},
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			body:       `{"userId":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid request body"},
		},
		{
			name:       "products not a list",
			method:     http.MethodPost,
			body:       `{"userId":"alice","products":{"id":"x"}}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newFileServer(t)

			rec := do(t, srv.Handler(), tt.method, "/api/backup", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
		})
	}
}

func TestBackup_WritesIndentedFile(t *testing.T) {
	srv, dir := newFileServer(t)

	rec := do(t, srv.Handler(), http.MethodPost, "/api/backup",
		`{"userId":"alice","products":[{"id":"p1","name":"TV","serialNumber":"","purchaseDate":"2024-01-15","warrantyMonths":12,"category":"electronics"}],"date":"2024-06-01T00:00:00.000Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := os.ReadFile(filepath.Join(dir, "alice.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"lastUpdated\": \"2024-06-01T00:00:00.000Z\"")
	assert.Contains(t, string(raw), "\"name\": \"TV\"")
}

func TestBackup_StorageFailure(t *testing.T) {
	srv := newTestServer(t, failingRepo{err: errors.New("disk full")})

	rec := do(t, srv.Handler(), http.MethodPost, "/api/backup", `{"userId":"alice","products":[]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to save backup"}, decodeBody(t, rec))
}

func TestRestore_Responses(t *testing.T) {
	srv, _ := newFileServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/api/restore/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "No backup found for this user"}, decodeBody(t, rec))

	rec = do(t, h, http.MethodGet, "/api/restore/..", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "Invalid userId"}, decodeBody(t, rec))

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/backup", `{"userId":"alice","products":[]}`).Code)

	rec = do(t, h, http.MethodGet, "/api/restore/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{}, body["products"])
	assert.NotEmpty(t, body["lastUpdated"])
}

func TestRestore_StorageFailure(t *testing.T) {
	srv := newTestServer(t, failingRepo{err: errors.New("corrupt")})

	rec := do(t, srv.Handler(), http.MethodGet, "/api/restore/alice", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to read backup"}, decodeBody(t, rec))
}

func TestHealthAndMiddleware(t *testing.T) {
	srv, _ := newFileServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, decodeBody(t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(t, srv.Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestRun_StopsOnCancel(t *testing.T) {
	m := metrics.New("test")
	repo, err := backups.NewFileRepository(t.TempDir())
	require.NoError(t, err)
	srv := NewHTTPServer("127.0.0.1:0", logging.Nop(), services.NewBackupService(repo, m, logging.Nop()), m, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
