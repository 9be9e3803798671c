package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guillermoBallester/hzmeta/internal/adapter/rowconv"
	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/port"
)

// Executor runs catalog queries on a *sql.DB with a per-query timeout.
type Executor struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewExecutor(db *sql.DB, queryTimeout time.Duration) *Executor {
	return &Executor{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

func (e *Executor) Query(ctx context.Context, query string, args ...any) (port.RowCursor, error) {
	ctx, cancel := context.WithTimeout(ctx, e.queryTimeout)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("executing query: %w", err)
	}

	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		cancel()
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	return &rowCursor{rows: rows, cancel: cancel, width: len(cols)}, nil
}

type rowCursor struct {
	rows    *sql.Rows
	cancel  context.CancelFunc
	width   int
	current rowconv.Row
	err     error
	closed  bool
}

func (c *rowCursor) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.current = nil
		return false
	}

	values := make(rowconv.Row, c.width)
	dest := make([]any, c.width)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		c.err = fmt.Errorf("scanning row: %w", err)
		c.current = nil
		return false
	}
	c.current = values
	return true
}

func (c *rowCursor) row() (rowconv.Row, error) {
	if c.current == nil {
		return nil, domain.ErrNoCurrentRow
	}
	return c.current, nil
}

func (c *rowCursor) String(i int) (string, error) {
	r, err := c.row()
	if err != nil {
		return "", err
	}
	return r.String(i)
}

func (c *rowCursor) Bool(i int) (bool, error) {
	r, err := c.row()
	if err != nil {
		return false, err
	}
	return r.Bool(i)
}

func (c *rowCursor) Int(i int) (int64, error) {
	r, err := c.row()
	if err != nil {
		return 0, err
	}
	return r.Int(i)
}

func (c *rowCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	if err := c.rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

func (c *rowCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	defer c.cancel()

	if err := c.rows.Close(); err != nil {
		return fmt.Errorf("closing rows: %w", err)
	}
	return nil
}
