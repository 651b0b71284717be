package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/bgstats/migrations"
	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Supported store backends. The value is selected through configuration.
const (
	DriverSQLite   = "sqlite"   // modernc.org/sqlite, pure Go
	DriverSQLite3  = "sqlite3"  // github.com/mattn/go-sqlite3, cgo
	DriverLibSQL   = "libsql"   // Turso / libSQL remote primary
	DriverPostgres = "postgres" // jackc/pgx stdlib
)

// ErrStoreUnavailable is returned when the store cannot be opened or a unit of
// work cannot be started or committed.
var ErrStoreUnavailable = errors.New("store unavailable")

// Options selects and locates the backing store.
type Options struct {
	Driver     string
	Path       string // local database file for the sqlite drivers
	DSN        string // connection string for postgres
	PrimaryURL string // libsql primary
	AuthToken  string
}

// InitDB opens the configured database, applies the embedded migrations and
// returns the Store along with a teardown func that closes it.
func InitDB(opts Options) (*Store, func(), error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	db, err := open(driver, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: failed to ping %s database: %w", ErrStoreUnavailable, driver, err)
	}

	if err := migrate(db, dialectFor(driver, opts)); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	store := NewStore(db, driver)
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully", "driver", driver)
	return store, teardown, nil
}

func open(driver string, opts Options) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverSQLite3:
		log.Info("Initializing local SQLite database", "path", opts.Path, "driver", driver)
		return openLocal(driver, opts.Path)
	case DriverLibSQL:
		if opts.PrimaryURL == "" {
			// Without a primary there is nothing to replicate, so the file is
			// served by the local driver.
			log.Info("No libsql primary configured, using local SQLite database", "path", opts.Path)
			return openLocal(DriverSQLite, opts.Path)
		}
		log.Info("Initializing Turso database", "url", opts.PrimaryURL)
		db, err := sql.Open("libsql", opts.PrimaryURL+"?authToken="+opts.AuthToken)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open db %s: %w", ErrStoreUnavailable, opts.PrimaryURL, err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			log.Warn("Could not enable foreign keys on libsql primary", "error", err)
		}
		return db, nil
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("%w: postgres requires a DSN", ErrStoreUnavailable)
		}
		log.Info("Initializing PostgreSQL database")
		db, err := sql.Open("pgx", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open postgres database: %w", ErrStoreUnavailable, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrStoreUnavailable, driver)
	}
}

// dialectFor picks the migration dialect of an already opened driver.
func dialectFor(driver string, opts Options) goose.Dialect {
	switch {
	case driver == DriverPostgres:
		return goose.DialectPostgres
	case driver == DriverLibSQL && opts.PrimaryURL != "":
		return goosedb.DialectTurso
	default:
		return goose.DialectSQLite3
	}
}

func openLocal(driver, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", ErrStoreUnavailable)
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open local database: %w", ErrStoreUnavailable, err)
	}

	// SQLite only supports one writer at a time. A single connection also keeps
	// an in-memory database alive for the lifetime of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Foreign key support is not enabled by default in SQLite
	pragmas := "PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;"
	if path != ":memory:" {
		pragmas += " PRAGMA journal_mode = WAL;"
	}
	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to set pragmas: %w", ErrStoreUnavailable, err)
	}
	return db, nil
}

func migrate(db *sql.DB, dialect goose.Dialect) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Info("Applied migration", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}
