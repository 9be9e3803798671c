package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/port"
)

// MetadataService answers catalog introspection requests. Executor failures
// degrade to an empty result with the operation's layout. Unmapped engine
// types are returned to the caller.
type MetadataService struct {
	executor     port.QueryExecutor
	builder      *CatalogQueryBuilder
	materializer *Materializer
	info         domain.EngineInfo
	logger       *slog.Logger
}

func NewMetadataService(
	executor port.QueryExecutor,
	builder *CatalogQueryBuilder,
	materializer *Materializer,
	info domain.EngineInfo,
	logger *slog.Logger,
) *MetadataService {
	return &MetadataService{
		executor:     executor,
		builder:      builder,
		materializer: materializer,
		info:         info,
		logger:       logger,
	}
}

// ListTables lists tables matching the filter, ordered by type, catalog,
// schema and name.
func (s *MetadataService) ListTables(ctx context.Context, f domain.TableFilter) (*domain.FixedRowSet, error) {
	const op = "list_tables"
	schema := domain.TablesSchema()

	q, err := s.builder.Tables(f)
	if err != nil {
		return s.fallback(ctx, op, schema, &domain.QueryExecutionError{Op: "building query", Err: err})
	}

	var raw [][]any
	err = s.collect(ctx, q, func(c port.RowCursor) error {
		var r TableRecord
		var err error
		if r.Catalog, err = c.String(0); err != nil {
			return err
		}
		if r.Schema, err = c.String(1); err != nil {
			return err
		}
		if r.Name, err = c.String(2); err != nil {
			return err
		}
		if r.Type, err = c.String(3); err != nil {
			return err
		}
		raw = append(raw, s.materializer.TableRow(r))
		return nil
	})
	if err != nil {
		return s.fallback(ctx, op, schema, err)
	}

	return s.materialize(ctx, op, schema, raw)
}

// ListColumns lists columns matching the filter, ordered by table and
// ordinal position.
func (s *MetadataService) ListColumns(ctx context.Context, f domain.ColumnFilter) (*domain.FixedRowSet, error) {
	const op = "list_columns"
	schema := domain.ColumnsSchema()

	q, err := s.builder.Columns(f)
	if err != nil {
		return s.fallback(ctx, op, schema, &domain.QueryExecutionError{Op: "building query", Err: err})
	}

	var records []ColumnRecord
	err = s.collect(ctx, q, func(c port.RowCursor) error {
		var r ColumnRecord
		var err error
		if r.Catalog, err = c.String(0); err != nil {
			return err
		}
		if r.Schema, err = c.String(1); err != nil {
			return err
		}
		if r.Table, err = c.String(2); err != nil {
			return err
		}
		if r.Column, err = c.String(3); err != nil {
			return err
		}
		if r.DataType, err = c.String(4); err != nil {
			return err
		}
		if r.Nullable, err = c.Bool(5); err != nil {
			return err
		}
		if r.Ordinal, err = c.Int(6); err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return s.fallback(ctx, op, schema, err)
	}

	raw := make([][]any, 0, len(records))
	for _, r := range records {
		row, err := s.materializer.ColumnRow(r)
		if err != nil {
			return s.fallback(ctx, op, schema, err)
		}
		raw = append(raw, row)
	}

	return s.materialize(ctx, op, schema, raw)
}

// ListSchemas returns the single fixed schema.
func (s *MetadataService) ListSchemas(ctx context.Context) (*domain.FixedRowSet, error) {
	return s.materialize(ctx, "list_schemas", domain.SchemasSchema(), [][]any{
		{domain.CatalogName, domain.SchemaName},
	})
}

// ListCatalogs returns the single fixed catalog.
func (s *MetadataService) ListCatalogs(ctx context.Context) (*domain.FixedRowSet, error) {
	return s.materialize(ctx, "list_catalogs", domain.CatalogsSchema(), [][]any{
		{domain.CatalogName},
	})
}

// ListTableTypes returns BASE TABLE and VIEW, in that order.
func (s *MetadataService) ListTableTypes(ctx context.Context) (*domain.FixedRowSet, error) {
	return s.materialize(ctx, "list_table_types", domain.TableTypesSchema(), [][]any{
		{domain.TableTypeBase},
		{domain.TableTypeView},
	})
}

// ListTypeInfo describes every supported standardized type.
func (s *MetadataService) ListTypeInfo(ctx context.Context) (*domain.FixedRowSet, error) {
	const op = "list_type_info"
	schema := domain.TypeInfoSchema()

	raw, err := s.materializer.TypeInfoRows()
	if err != nil {
		return s.fallback(ctx, op, schema, err)
	}
	return s.materialize(ctx, op, schema, raw)
}

// Info returns the static engine description.
func (s *MetadataService) Info() domain.EngineInfo {
	info := s.info
	info.TableTypes = append([]string(nil), s.info.TableTypes...)
	return info
}

// collect runs q and feeds every raw row to scan. The executor cursor is
// closed on every path. All failures come back as *domain.QueryExecutionError.
func (s *MetadataService) collect(ctx context.Context, q CatalogQuery, scan func(port.RowCursor) error) (err error) {
	start := time.Now()

	cur, err := s.executor.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return &domain.QueryExecutionError{Op: "executing query", Err: err}
	}
	defer func() {
		if cerr := cur.Close(); cerr != nil && err == nil {
			err = &domain.QueryExecutionError{Op: "closing cursor", Err: cerr}
		}
	}()

	rows := 0
	for cur.Next() {
		if err := scan(cur); err != nil {
			return &domain.QueryExecutionError{Op: "scanning row", Err: err}
		}
		rows++
	}
	if err := cur.Err(); err != nil {
		return &domain.QueryExecutionError{Op: "iterating rows", Err: err}
	}

	s.logger.DebugContext(ctx, "catalog query",
		slog.String("db.query.text", q.SQL),
		slog.Int("db.response.rows", rows),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *MetadataService) materialize(ctx context.Context, op string, schema domain.RowSchema, raw [][]any) (*domain.FixedRowSet, error) {
	set, err := s.materializer.Materialize(schema, raw)
	if err != nil {
		return s.fallback(ctx, op, schema, err)
	}
	return set, nil
}

// fallback applies the error policy: type mapping defects escape, anything
// else becomes an empty result.
func (s *MetadataService) fallback(ctx context.Context, op string, schema domain.RowSchema, err error) (*domain.FixedRowSet, error) {
	if errors.Is(err, domain.ErrTypeMapping) {
		s.logger.ErrorContext(ctx, "unmapped engine type",
			slog.String("metadata.operation", op),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	level := slog.LevelWarn
	var qe *domain.QueryExecutionError
	if errors.As(err, &qe) {
		level = slog.LevelDebug
	}
	s.logger.Log(ctx, level, "metadata lookup failed, returning empty result",
		slog.String("metadata.operation", op),
		slog.String("error", err.Error()),
	)
	return domain.EmptyRowSet(schema), nil
}
