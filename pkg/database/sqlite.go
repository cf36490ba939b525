package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/wakeup-planner-api/pkg/config"
)

const sqlitePragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// NewSQLite opens an embedded SQLite store, used when no PostgreSQL server is available.
func NewSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "wakeup.db"
	}

	db, err := sqlx.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// WAL allows concurrent readers but a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
