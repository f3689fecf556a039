package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT,
    last_name TEXT,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    department TEXT,
    position TEXT,
    date_of_joining TEXT,
    salary REAL
);
`

// Open opens the database at path (":memory:" works) and makes sure the employees table exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// one connection: sqlite serialises writers anyway and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, createEmployeesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create employees table: %w", err)
	}

	return db, nil
}
