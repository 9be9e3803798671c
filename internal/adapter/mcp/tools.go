package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

const patternHelp = "SQL LIKE pattern (% and _ wildcards). Omit or leave empty to match everything."

// RegisterTools adds one read-only tool per metadata operation.
func RegisterTools(s *server.MCPServer, metadata *service.MetadataService) {
	s.AddTool(
		mcp.NewTool("list_catalogs",
			mcp.WithDescription("List catalogs. The engine always reports the single catalog 'hazelcast'."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		staticHandler("list catalogs", metadata.ListCatalogs),
	)

	s.AddTool(
		mcp.NewTool("list_schemas",
			mcp.WithDescription("List schemas as (TABLE_CATALOG, TABLE_SCHEM) rows. The engine always reports 'public'."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		staticHandler("list schemas", metadata.ListSchemas),
	)

	s.AddTool(
		mcp.NewTool("list_table_types",
			mcp.WithDescription("List the table types usable as list_tables filters: BASE TABLE and VIEW."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		staticHandler("list table types", metadata.ListTableTypes),
	)

	s.AddTool(
		mcp.NewTool("list_type_info",
			mcp.WithDescription("Describe every supported SQL type: name, JDBC type code, precision, nullability, searchability and signedness."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		staticHandler("list type info", metadata.ListTypeInfo),
	)

	s.AddTool(
		mcp.NewTool("list_tables",
			mcp.WithDescription("List tables and views matching the filters, ordered by type, catalog, schema and name. Results are a JSON object with 'columns' and 'rows'."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("catalog", mcp.Description("Catalog "+patternHelp)),
			mcp.WithString("schema", mcp.Description("Schema "+patternHelp)),
			mcp.WithString("table_name", mcp.Description("Table name "+patternHelp)),
			mcp.WithArray("types",
				mcp.Description("Table types to include, e.g. [\"BASE TABLE\"]. Omit for all types."),
				mcp.WithStringItems(),
			),
		),
		listTablesHandler(metadata),
	)

	s.AddTool(
		mcp.NewTool("list_columns",
			mcp.WithDescription("List columns matching the filters with their SQL type, size, nullability and ordinal position, ordered by table and position."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("catalog", mcp.Description("Catalog "+patternHelp)),
			mcp.WithString("schema", mcp.Description("Schema "+patternHelp)),
			mcp.WithString("table_name", mcp.Description("Table name "+patternHelp)),
			mcp.WithString("column_name", mcp.Description("Column name "+patternHelp)),
		),
		listColumnsHandler(metadata),
	)

	s.AddTool(
		mcp.NewTool("describe_engine",
			mcp.WithDescription("Describe the engine: product name, identifier quoting, catalog terms, supported functions and transaction support."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		describeEngineHandler(metadata),
	)
}

func staticHandler(what string, list func(context.Context) (*domain.FixedRowSet, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		set, err := list(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", what, err)), nil
		}
		return jsonResult(set)
	}
}

func listTablesHandler(metadata *service.MetadataService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := domain.TableFilter{
			Catalog: request.GetString("catalog", ""),
			Schema:  request.GetString("schema", ""),
			Table:   request.GetString("table_name", ""),
			Types:   request.GetStringSlice("types", nil),
		}

		set, err := metadata.ListTables(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list tables: %v", err)), nil
		}
		return jsonResult(set)
	}
}

func listColumnsHandler(metadata *service.MetadataService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := domain.ColumnFilter{
			Catalog: request.GetString("catalog", ""),
			Schema:  request.GetString("schema", ""),
			Table:   request.GetString("table_name", ""),
			Column:  request.GetString("column_name", ""),
		}

		set, err := metadata.ListColumns(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list columns: %v", err)), nil
		}
		return jsonResult(set)
	}
}

func describeEngineHandler(metadata *service.MetadataService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(metadata.Info())
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
