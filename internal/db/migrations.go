package db

import (
	"database/sql"
	"fmt"
)

const baseSchema = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: the first release stored the FAQ count under a non-namespaced key
	if _, err := db.Exec(`
		INSERT OR IGNORE INTO settings (key, value, updated_at)
		SELECT 'ai.faq_count', value, updated_at FROM settings WHERE key = 'faq_count'
	`); err != nil {
		return fmt.Errorf("move faq_count setting: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM settings WHERE key = 'faq_count'`); err != nil {
		return fmt.Errorf("drop legacy faq_count: %w", err)
	}

	return nil
}
