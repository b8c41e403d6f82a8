package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // register postgres driver
)

// OpenPostgres connects to a Postgres database and ensures the drafts table
// exists.
func OpenPostgres(dsn string) (*SQL, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQL{db: db, postgres: true}, nil
}
