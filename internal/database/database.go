package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tahcohcat/voicegen/internal/logger"
)

type DB struct {
	*sqlx.DB
}

// NewDB opens the SQLite file at path and makes sure the schema exists.
func NewDB(path string) (*DB, error) {
	if path == "" {
		path = "voicegen.db"
	}

	db, err := sqlx.Connect("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	wrapped := &DB{DB: db}
	if err := wrapped.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Named("database").Info(fmt.Sprintf("Database ready at %s", path))
	return wrapped, nil
}

func (db *DB) createTables() error {
	generations := `
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		keywords TEXT NOT NULL,
		persona TEXT NOT NULL,
		sentence TEXT NOT NULL,
		engine TEXT NOT NULL,
		audio_bytes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);`,
	}

	if _, err := db.Exec(generations); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
