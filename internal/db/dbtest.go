package db

import (
	"context"
	"os"
	"testing"
)

// NewTestStore returns a migrated store for tests. It uses TEST_DATABASE_URL
// (Postgres) when set and a private in-memory SQLite database otherwise.
func NewTestStore(tb testing.TB) Store {
	tb.Helper()

	driver, url := DriverSQLite, ":memory:"
	if dbURL := os.Getenv("TEST_DATABASE_URL"); dbURL != "" {
		driver, url = DriverPostgres, dbURL
	}

	conn, err := Init(driver, url)
	if err != nil {
		tb.Fatalf("init test db: %v", err)
	}
	if err := RunMigrations(context.Background(), conn); err != nil {
		conn.Close()
		tb.Fatalf("migrate test db: %v", err)
	}
	if driver == DriverPostgres {
		if _, err := conn.Exec(`TRUNCATE pomodoro_sessions, schedule_events, schedule, tasks RESTART IDENTITY CASCADE;`); err != nil {
			conn.Close()
			tb.Fatalf("truncate test db: %v", err)
		}
	}

	store := NewStore(conn)
	tb.Cleanup(func() { store.Close() })
	return store
}
