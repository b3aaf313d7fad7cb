package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations
var migrations embed.FS

// Init opens a database connection for the given driver, retrying while the
// server is unreachable. SQLite connections are pinned to a single
// connection with foreign keys enabled.
func Init(driver, databaseURL string) (*sqlx.DB, error) {
	const maxRetries = 10
	const retryInterval = 2 * time.Second

	if driver == DriverSQLite && databaseURL != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(databaseURL), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	var (
		conn *sqlx.DB
		err  error
	)
	for attempt := 1; attempt <= maxRetries; attempt++ {
		conn, err = sqlx.Connect(driver, databaseURL)
		if err == nil {
			break
		}
		if driver == DriverSQLite {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		time.Sleep(retryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
	}

	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
		for _, p := range []string{
			"PRAGMA foreign_keys=ON",
			"PRAGMA busy_timeout=5000",
		} {
			if _, err := conn.Exec(p); err != nil {
				conn.Close()
				return nil, fmt.Errorf("exec pragma %q: %w", p, err)
			}
		}
	}

	log.Info().Str("driver", driver).Msg("connected to database")
	return conn, nil
}

// RunMigrations executes the embedded "*.up.sql" files for the connection's
// driver in name order. "*.down.sql" files are ignored. Every migration is
// written to be re-runnable.
func RunMigrations(ctx context.Context, conn *sqlx.DB) error {
	dir := path.Join("migrations", dialect(conn))
	files, err := fs.Glob(migrations, path.Join(dir, "*.up.sql"))
	if err != nil {
		log.Error().Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found for driver %q", conn.DriverName())
	}

	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := migrations.ReadFile(file)
		if err != nil {
			log.Error().Str("file", file).Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if len(sqlBytes) == 0 {
			continue
		}
		if _, err := conn.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
		log.Debug().Str("file", file).Msg("applied migration")
	}
	return nil
}

func dialect(conn *sqlx.DB) string {
	if conn.DriverName() == DriverPostgres {
		return DriverPostgres
	}
	return DriverSQLite
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
