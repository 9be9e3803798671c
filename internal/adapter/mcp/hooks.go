package mcp

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// filterArgs are the tool arguments worth logging.
var filterArgs = []string{"catalog", "schema", "table_name", "column_name"}

func toolCallHooks(logger *slog.Logger) *server.Hooks {
	hooks := &server.Hooks{}
	var starts sync.Map

	hooks.AddBeforeCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest) {
		starts.Store(id, time.Now())
	})

	hooks.AddAfterCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest, result any) {
		duration := sinceStart(&starts, id)
		level := slog.LevelInfo
		isErr := false

		if r, ok := result.(*mcp.CallToolResult); ok && r.IsError {
			level = slog.LevelError
			isErr = true
		}

		attrs := []slog.Attr{
			slog.String("rpc.method", "tools/call"),
			slog.String("mcp.tool", req.Params.Name),
			slog.Duration("duration", duration),
			slog.Bool("error", isErr),
		}
		args := req.GetArguments()
		for _, name := range filterArgs {
			if v, ok := args[name].(string); ok && v != "" {
				attrs = append(attrs, slog.String("mcp.arg."+name, v))
			}
		}

		logger.LogAttrs(ctx, level, "tool call", attrs...)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		duration := sinceStart(&starts, id)
		toolName := ""
		if req, ok := message.(*mcp.CallToolRequest); ok {
			toolName = req.Params.Name
		}
		if toolName != "" {
			logger.LogAttrs(ctx, slog.LevelError, "tool call",
				slog.String("rpc.method", "tools/call"),
				slog.String("mcp.tool", toolName),
				slog.Duration("duration", duration),
				slog.Bool("error", true),
				slog.String("error.message", err.Error()),
			)
		}
	})

	return hooks
}

func sinceStart(starts *sync.Map, id any) time.Duration {
	if v, ok := starts.LoadAndDelete(id); ok {
		return time.Since(v.(time.Time))
	}
	return 0
}
