package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Expenses",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS expenses (
					id TEXT PRIMARY KEY,
					amount INTEGER NOT NULL CHECK (amount > 0),
					category_id TEXT NOT NULL,
					category_name TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					date TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category_id)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Chat transcripts",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS chat_messages (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					text TEXT NOT NULL,
					is_user INTEGER NOT NULL DEFAULT 0,
					timestamp TEXT NOT NULL,
					icon TEXT NOT NULL DEFAULT '',
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_chat_messages_date ON chat_messages(date, created_at)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// SchemaVersion reports the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate applies pending migrations in order, each in its own transaction.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		err := s.withTx(ctx, func(tx *sql.Tx) error {
			if upErr := migration.Up(tx); upErr != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
			}
			if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
				return fmt.Errorf("failed to update schema version: %w", execErr)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
