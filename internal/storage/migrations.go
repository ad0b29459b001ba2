package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. A database that cannot reach it is a fatal error.
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
		Description: "Initial catalog schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS datasets (
					id TEXT PRIMARY KEY,
					path TEXT UNIQUE NOT NULL,
					name TEXT NOT NULL,
					format TEXT NOT NULL,
					size INTEGER DEFAULT 0,
					title TEXT,
					abstract TEXT,
					creation_date TEXT,
					modification_date TEXT,
					coordinate_system TEXT,
					bbox_west REAL,
					bbox_east REAL,
					bbox_south REAL,
					bbox_north REAL,
					category TEXT,
					subcategory TEXT,
					date_indexed DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_datasets_category ON datasets(category)`,
				`CREATE INDEX idx_datasets_format ON datasets(format)`,

				`CREATE TABLE IF NOT EXISTS keywords (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS dataset_keywords (
					dataset_id TEXT NOT NULL,
					keyword_id INTEGER NOT NULL,
					PRIMARY KEY (dataset_id, keyword_id),
					FOREIGN KEY (dataset_id) REFERENCES datasets(id),
					FOREIGN KEY (keyword_id) REFERENCES keywords(id)
				)`,

				`CREATE TABLE IF NOT EXISTS dataset_attributes (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					dataset_id TEXT NOT NULL,
					name TEXT NOT NULL,
					data_type TEXT,
					description TEXT,
					FOREIGN KEY (dataset_id) REFERENCES datasets(id)
				)`,
				`CREATE INDEX idx_dataset_attributes_dataset ON dataset_attributes(dataset_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add organization run history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS organization_runs (
					id TEXT PRIMARY KEY,
					template TEXT NOT NULL,
					destination TEXT NOT NULL,
					dry_run INTEGER NOT NULL DEFAULT 0,
					successful INTEGER NOT NULL DEFAULT 0,
					failed INTEGER NOT NULL DEFAULT 0,
					message TEXT,
					executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_organization_runs_executed ON organization_runs(executed_at)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database to the expected schema version.
func (s *SQLiteCatalog) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
