package db

import (
	"context"
	"fmt"
)

// migrate runs all database migrations. The statements are valid in both
// dialects.
func (db *DB) migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateCategories,
		migrationCreateTasks,
		migrationIndexTasks,
	}

	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL
)`

// category_id has no foreign key: deleted categories leave dangling references
const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL DEFAULT 'medium',
    category_id TEXT NOT NULL,
    due_date TEXT,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
)`

const migrationIndexTasks = `
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id)`
