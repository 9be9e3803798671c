package port

import "context"

// QueryExecutor runs a catalog query against the engine. Bind arguments are
// positional and match the placeholders the caller generated.
type QueryExecutor interface {
	Query(ctx context.Context, sql string, args ...any) (RowCursor, error)
}

// RowCursor is a forward-only view over raw engine rows with ordinal access.
// Close must be called on every exit path and is safe to call twice.
type RowCursor interface {
	Next() bool
	String(i int) (string, error)
	Bool(i int) (bool, error)
	Int(i int) (int64, error)
	Err() error
	Close() error
}
