// Package sqldb runs catalog queries through database/sql, for engines
// reached via the pgx stdlib shim, SQL Server or SQLite.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// Configured driver names.
const (
	DriverPgxStdlib = "pgx-stdlib"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite3"
)

type driverInfo struct {
	sqlName     string
	placeholder service.PlaceholderStyle
}

var drivers = map[string]driverInfo{
	DriverPgxStdlib: {sqlName: "pgx", placeholder: service.Dollar},
	DriverSQLServer: {sqlName: "sqlserver", placeholder: service.AtP},
	DriverSQLite:    {sqlName: "sqlite3", placeholder: service.Question},
}

// Supports reports whether name is a database/sql driver this package opens.
func Supports(name string) bool {
	_, ok := drivers[name]
	return ok
}

// Placeholder returns the bind style the driver understands.
func Placeholder(name string) (service.PlaceholderStyle, error) {
	d, ok := drivers[name]
	if !ok {
		return 0, fmt.Errorf("unknown driver %q", name)
	}
	return d.placeholder, nil
}

// Open connects and pings. In-memory SQLite databases live in a single
// connection, so the pool is pinned to one.
func Open(ctx context.Context, name, dsn string) (*sql.DB, error) {
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown driver %q", name)
	}

	db, err := sql.Open(d.sqlName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	if name == DriverSQLite && strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging %s: %w", name, err)
	}
	return db, nil
}
