package repos

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenDB opens the connection pool for the given DSN. Postgres URLs use lib/pq;
// anything else is treated as a sqlite file (local dev, tests). The caller owns
// the pool and closes it at shutdown; repositories only borrow it.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, err
	}

	// Postgres schema is owned by cmd/migrate; sqlite dev databases are
	// created on the spot.
	if driver == "sqlite" {
		if err := ensureSchema(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  age INTEGER NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
