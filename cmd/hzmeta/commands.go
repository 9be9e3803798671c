package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/guillermoBallester/hzmeta/internal/adapter/tableview"
	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

type commandOptions struct {
	catalog   string
	schema    string
	table     string
	column    string
	types     []string
	columns   []string
	hideEmpty bool
	json      bool
}

func (o *commandOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.catalog, "catalog", "", "catalog pattern (SQL LIKE)")
	fs.StringVar(&o.schema, "schema", "", "schema pattern (SQL LIKE)")
	fs.StringVar(&o.table, "table", "", "table name pattern (SQL LIKE)")
	fs.StringVar(&o.column, "column", "", "column name pattern (SQL LIKE)")
	fs.StringSliceVar(&o.types, "type", nil, "table types to include, repeatable")
	fs.StringSliceVar(&o.columns, "columns", nil, "result columns to print")
	fs.BoolVar(&o.hideEmpty, "hide-empty", true, "hide columns that are NULL in every row")
	fs.BoolVar(&o.json, "json", false, "print JSON instead of a table")
}

type command func(ctx context.Context, svc *service.MetadataService, opts commandOptions, w io.Writer) error

func lookupCommand(name string) (command, error) {
	switch name {
	case "catalogs":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, _ commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListCatalogs(ctx)
		}), nil
	case "schemas":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, _ commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListSchemas(ctx)
		}), nil
	case "table-types":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, _ commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListTableTypes(ctx)
		}), nil
	case "type-info":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, _ commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListTypeInfo(ctx)
		}), nil
	case "tables":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, o commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListTables(ctx, domain.TableFilter{
				Catalog: o.catalog,
				Schema:  o.schema,
				Table:   o.table,
				Types:   o.types,
			})
		}), nil
	case "columns":
		return rowSetCommand(func(ctx context.Context, svc *service.MetadataService, o commandOptions) (*domain.FixedRowSet, error) {
			return svc.ListColumns(ctx, domain.ColumnFilter{
				Catalog: o.catalog,
				Schema:  o.schema,
				Table:   o.table,
				Column:  o.column,
			})
		}), nil
	case "info":
		return infoCommand, nil
	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func rowSetCommand(list func(context.Context, *service.MetadataService, commandOptions) (*domain.FixedRowSet, error)) command {
	return func(ctx context.Context, svc *service.MetadataService, opts commandOptions, w io.Writer) error {
		set, err := list(ctx, svc, opts)
		if err != nil {
			return err
		}
		if opts.json {
			return writeJSON(w, set)
		}
		_, err = fmt.Fprintln(w, tableview.Render(set, tableview.Options{
			Columns:   opts.columns,
			HideEmpty: opts.hideEmpty,
		}))
		return err
	}
}

func infoCommand(_ context.Context, svc *service.MetadataService, opts commandOptions, w io.Writer) error {
	info := svc.Info()
	if opts.json {
		return writeJSON(w, info)
	}
	_, err := fmt.Fprintln(w, tableview.RenderInfo(info))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
