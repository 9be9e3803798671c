package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
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

func callTool(t *testing.T, s *server.MCPServer, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	session := server.NewInProcessSession("test", nil)
	require.NoError(t, s.RegisterSession(ctx, session))
	sessionCtx := s.WithContext(ctx, session)

	initBytes, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0", "id": "init", "method": "initialize",
		"params": map[string]any{
			"protocolVersion": "2025-03-26",
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
		},
	})
	s.HandleMessage(sessionCtx, initBytes)

	reqBytes, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0", "id": "call-1", "method": "tools/call",
		"params": map[string]any{
			"name":      toolName,
			"arguments": args,
		},
	})
	resp := s.HandleMessage(sessionCtx, reqBytes)
	respBytes, _ := json.Marshal(resp)

	var rpc struct {
		Result *mcp.CallToolResult       `json:"result"`
		Error  *struct{ Message string } `json:"error,omitempty"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &rpc))
	require.Nil(t, rpc.Error, "unexpected RPC error: %v", rpc.Error)
	require.NotNil(t, rpc.Result)
	return rpc.Result
}

func toolText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return ""
	}
	return tc.Text
}

type rowSetJSON struct {
	Columns []domain.ColumnDescriptor `json:"columns"`
	Rows    [][]any                   `json:"rows"`
}

func decodeRowSet(t *testing.T, result *mcp.CallToolResult) rowSetJSON {
	t.Helper()
	require.False(t, result.IsError, toolText(result))
	var out rowSetJSON
	require.NoError(t, json.Unmarshal([]byte(toolText(result)), &out))
	return out
}

func setupServer(executor *mockExecutor) *server.MCPServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewMetadataService(
		executor,
		service.NewCatalogQueryBuilder(service.Question),
		service.NewMaterializer(domain.StandardTypes(), service.NewStandardCodec()),
		domain.NewEngineInfo("0.1.0"),
		logger,
	)
	return NewServer("0.1.0", svc, logger)
}

// --- tests ---

func TestListCatalogs(t *testing.T) {
	s := setupServer(&mockExecutor{})

	out := decodeRowSet(t, callTool(t, s, "list_catalogs", nil))
	require.Len(t, out.Columns, 1)
	assert.Equal(t, "TABLE_CAT", out.Columns[0].Name)
	assert.Equal(t, [][]any{{"hazelcast"}}, out.Rows)
}

func TestListSchemas(t *testing.T) {
	s := setupServer(&mockExecutor{})

	out := decodeRowSet(t, callTool(t, s, "list_schemas", nil))
	assert.Equal(t, [][]any{{"hazelcast", "public"}}, out.Rows)
}

func TestListTableTypes(t *testing.T) {
	s := setupServer(&mockExecutor{})

	out := decodeRowSet(t, callTool(t, s, "list_table_types", nil))
	assert.Equal(t, [][]any{{"BASE TABLE"}, {"VIEW"}}, out.Rows)
}

func TestListTypeInfo(t *testing.T) {
	s := setupServer(&mockExecutor{})

	out := decodeRowSet(t, callTool(t, s, "list_type_info", nil))
	assert.Len(t, out.Columns, 18)
	assert.Len(t, out.Rows, 15)
	assert.Equal(t, "VARCHAR", out.Rows[0][0])
}

func TestListTables_PassesFilters(t *testing.T) {
	executor := &mockExecutor{rows: []rowconv.Row{{"hazelcast", "public", "person", "BASE TABLE"}}}
	s := setupServer(executor)

	out := decodeRowSet(t, callTool(t, s, "list_tables", map[string]any{
		"table_name": "per%",
		"types":      []any{"BASE TABLE"},
	}))
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "person", out.Rows[0][2])
	assert.Nil(t, out.Rows[0][4])
	assert.Equal(t, []any{"%", "%", "per%", "BASE TABLE"}, executor.lastArg)
}

func TestListTables_ExecutorErrorIsEmpty(t *testing.T) {
	s := setupServer(&mockExecutor{err: errors.New("connection refused")})

	out := decodeRowSet(t, callTool(t, s, "list_tables", nil))
	assert.Len(t, out.Columns, 10)
	assert.Empty(t, out.Rows)
}

func TestListColumns_HappyPath(t *testing.T) {
	executor := &mockExecutor{rows: []rowconv.Row{
		{"hazelcast", "public", "person", "name", "VARCHAR", "true", int64(1)},
		{"hazelcast", "public", "person", "age", "INTEGER", "false", int64(2)},
	}}
	s := setupServer(executor)

	out := decodeRowSet(t, callTool(t, s, "list_columns", map[string]any{"table_name": "person"}))
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "name", out.Rows[0][3])
	assert.Equal(t, "YES", out.Rows[0][17])
	assert.Equal(t, "NO", out.Rows[1][17])
	assert.Equal(t, float64(2), out.Rows[1][16])
	assert.Equal(t, []any{"%", "%", "person", "%"}, executor.lastArg)
}

func TestListColumns_TypeMappingError(t *testing.T) {
	executor := &mockExecutor{rows: []rowconv.Row{
		{"hazelcast", "public", "shapes", "area", "GEOMETRY", "true", int64(1)},
	}}
	s := setupServer(executor)

	result := callTool(t, s, "list_columns", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(result), "GEOMETRY")
}

func TestDescribeEngine(t *testing.T) {
	s := setupServer(&mockExecutor{})

	result := callTool(t, s, "describe_engine", nil)
	require.False(t, result.IsError)

	var info domain.EngineInfo
	require.NoError(t, json.Unmarshal([]byte(toolText(result)), &info))
	assert.Equal(t, "Hazelcast", info.ProductName)
	assert.Equal(t, "0.1.0", info.DriverVersion)
}
