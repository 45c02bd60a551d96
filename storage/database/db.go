package database

import (
	"context"
	"embed"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/schooladmin/core"
)

// Engines
const (
	EngineMemory   = "memory"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// MigrationsDir is the directory of the embedded goose migrations.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

func postgresURL(conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open connects to the SQL database configured by conf.Database.
func Open(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case EngineSQLite:
		db, err := sqlx.Open("sqlite", conf.Database.Path)
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite database")
		}
		// a single connection keeps `:memory:` databases shared and serializes writers
		db.SetMaxOpenConns(1)
		return db, nil
	case EnginePostgres:
		db, err := sqlx.Open("postgres", postgresURL(conf))
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		return db, nil
	default:
		return nil, errors.Errorf("database engine %q is not a SQL engine", conf.Database.Engine)
	}
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping canceled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// PrepareMigrations points goose at the embedded migrations and at the dialect of db.
func PrepareMigrations(db *sqlx.DB) error {
	var dialect string
	switch db.DriverName() {
	case "sqlite":
		dialect = "sqlite3"
	case "postgres":
		dialect = "postgres"
	default:
		return errors.Errorf("no migration dialect for driver %q", db.DriverName())
	}
	goose.SetBaseFS(migrations)
	return errors.Wrap(goose.SetDialect(dialect), "setting migration dialect")
}

// Migrate applies the pending migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := PrepareMigrations(db); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, MigrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
