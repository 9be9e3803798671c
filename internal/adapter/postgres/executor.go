package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guillermoBallester/hzmeta/internal/adapter/rowconv"
	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/port"
)

// Executor runs catalog queries on a pgx pool, each inside its own
// transaction bounded by queryTimeout.
type Executor struct {
	pool         *pgxpool.Pool
	validator    *domain.CatalogQueryValidator
	readOnly     bool
	queryTimeout time.Duration
}

// NewExecutor returns an executor. A nil validator disables SQL checks.
func NewExecutor(pool *pgxpool.Pool, validator *domain.CatalogQueryValidator, readOnly bool, queryTimeout time.Duration) *Executor {
	return &Executor{
		pool:         pool,
		validator:    validator,
		readOnly:     readOnly,
		queryTimeout: queryTimeout,
	}
}

func (e *Executor) Query(ctx context.Context, sql string, args ...any) (port.RowCursor, error) {
	if e.validator != nil {
		if err := e.validator.Validate(sql); err != nil {
			return nil, fmt.Errorf("validating catalog query: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.queryTimeout)

	tx, err := e.pool.BeginTx(ctx, pgx.TxOptions{
		AccessMode: e.accessMode(),
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		_ = tx.Rollback(ctx)
		cancel()
		return nil, fmt.Errorf("executing query: %w", err)
	}

	return &rowCursor{ctx: ctx, cancel: cancel, tx: tx, rows: rows}, nil
}

func (e *Executor) accessMode() pgx.TxAccessMode {
	if e.readOnly {
		return pgx.ReadOnly
	}
	return pgx.ReadWrite
}

// rowCursor owns the transaction and the timeout context of one query.
// Close rolls back, since catalog reads never need to commit.
type rowCursor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	tx      pgx.Tx
	rows    pgx.Rows
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
	values, err := c.rows.Values()
	if err != nil {
		c.err = fmt.Errorf("reading row values: %w", err)
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

	c.rows.Close()
	if err := c.tx.Rollback(c.ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}
