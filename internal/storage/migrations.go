package storage

import (
	"database/sql"
	"fmt"
)

// Schema migrations applied in order. The schema_version table records the
// number of applied entries; never reorder or edit existing entries, only
// append.
var migrations = []string{
	`CREATE TABLE timetables (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		slots TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	)`,
	`CREATE TABLE settings (
		user_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (user_id, key)
	)`,
	`CREATE TABLE subjects (
		user_id TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		color_index INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, id)
	)`,
}

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int
	err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("failed to initialize schema version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
