package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillermoBallester/hzmeta/internal/adapter/rowconv"
	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/port"
	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// --- mock QueryExecutor ---

type mockExecutor struct {
	rows    []rowconv.Row
	err     error
	lastArg []any
}

func (m *mockExecutor) Query(_ context.Context, _ string, args ...any) (port.RowCursor, error) {
	m.lastArg = args
	if m.err != nil {
		return nil, m.err
	}
	return &mockCursor{rows: m.rows, pos: -1}, nil
}

type mockCursor struct {
	rows []rowconv.Row
	pos  int
}

func (c *mockCursor) Next() bool {
	c.pos++
	return c.pos < len(c.rows)
}

func (c *mockCursor) String(i int) (string, error) { return c.rows[c.pos].String(i) }
func (c *mockCursor) Bool(i int) (bool, error)     { return c.rows[c.pos].Bool(i) }
func (c *mockCursor) Int(i int) (int64, error)     { return c.rows[c.pos].Int(i) }
func (c *mockCursor) Err() error                   { return nil }
func (c *mockCursor) Close() error                 { return nil }

// --- helpers ---

func newTestServer(exec *mockExecutor, cfg Config) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewMetadataService(
		exec,
		service.NewCatalogQueryBuilder(service.Dollar),
		service.NewMaterializer(domain.StandardTypes(), service.NewStandardCodec()),
		domain.NewEngineInfo("test"),
		logger,
	)
	return New(cfg, svc, nil, logger)
}

type rowSetBody struct {
	Columns []domain.ColumnDescriptor `json:"columns"`
	Rows    [][]any                   `json:"rows"`
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "10.0.0.1:4000"
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) rowSetBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body rowSetBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- tests ---

func TestHealth(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{})
	w := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStaticEndpoints(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{})

	body := decodeBody(t, get(t, s, "/v1/catalogs"))
	assert.Equal(t, [][]any{{"hazelcast"}}, body.Rows)

	body = decodeBody(t, get(t, s, "/v1/schemas"))
	assert.Equal(t, [][]any{{"hazelcast", "public"}}, body.Rows)

	body = decodeBody(t, get(t, s, "/v1/table-types"))
	assert.Equal(t, [][]any{{"BASE TABLE"}, {"VIEW"}}, body.Rows)

	body = decodeBody(t, get(t, s, "/v1/type-info"))
	assert.Len(t, body.Rows, 15)
	assert.Len(t, body.Columns, 18)
}

func TestTables_QueryParameters(t *testing.T) {
	exec := &mockExecutor{rows: []rowconv.Row{{"hazelcast", "public", "person", "VIEW"}}}
	s := newTestServer(exec, Config{})

	body := decodeBody(t, get(t, s, "/v1/tables?table=per%25&type=VIEW&type=BASE+TABLE,"))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "person", body.Rows[0][2])
	assert.Equal(t, []any{"%", "%", "per%", "VIEW", "BASE TABLE"}, exec.lastArg)
}

func TestColumns_QueryParameters(t *testing.T) {
	exec := &mockExecutor{rows: []rowconv.Row{
		{"hazelcast", "public", "person", "age", "INTEGER", "NO", int64(2)},
	}}
	s := newTestServer(exec, Config{})

	body := decodeBody(t, get(t, s, "/v1/columns?table=person&column=age"))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "NO", body.Rows[0][17])
	assert.Equal(t, []any{"%", "%", "person", "age"}, exec.lastArg)
}

func TestTables_ExecutorFailureIsEmpty(t *testing.T) {
	s := newTestServer(&mockExecutor{err: errors.New("engine down")}, Config{})

	body := decodeBody(t, get(t, s, "/v1/tables"))
	assert.Empty(t, body.Rows)
	assert.Len(t, body.Columns, 10)
}

func TestColumns_TypeMappingErrorIs500(t *testing.T) {
	exec := &mockExecutor{rows: []rowconv.Row{
		{"hazelcast", "public", "shapes", "area", "GEOMETRY", "YES", int64(1)},
	}}
	s := newTestServer(exec, Config{})

	w := get(t, s, "/v1/columns")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "GEOMETRY")
}

func TestInfo(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{})
	w := get(t, s, "/v1/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info domain.EngineInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Hazelcast", info.ProductName)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{})

	w := get(t, s, "/health")
	assert.Len(t, w.Header().Get(requestIDHeader), 36, "generated UUID")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{RateLimit: 6}) // burst 1

	assert.Equal(t, http.StatusOK, get(t, s, "/v1/catalogs").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, s, "/v1/catalogs").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code, "health is not limited")
}

func TestCORS(t *testing.T) {
	s := newTestServer(&mockExecutor{}, Config{CORSOrigin: "https://console.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/v1/catalogs", nil)
	req.Header.Set("Origin", "https://console.example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSplitTypes(t *testing.T) {
	assert.Nil(t, splitTypes(nil))
	assert.Equal(t, []string{"BASE TABLE", "VIEW"}, splitTypes([]string{"BASE TABLE, VIEW", " "}))
}
