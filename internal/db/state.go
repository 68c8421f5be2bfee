package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/persist"
)

const timeLayout = time.RFC3339Nano

// Load reads both collections in their stored order
func (db *DB) Load(ctx context.Context) (model.State, error) {
	state := model.State{Tasks: []model.Task{}, Categories: []model.Category{}}

	cats, err := db.loadCategories(ctx)
	if err != nil {
		return model.State{}, persist.Wrap("load", err)
	}
	state.Categories = cats

	tasks, err := db.loadTasks(ctx)
	if err != nil {
		return model.State{}, persist.Wrap("load", err)
	}
	state.Tasks = tasks

	return state, nil
}

func (db *DB) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, color FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) loadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, priority, category_id, due_date, completed, created_at
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var (
			t         model.Task
			priority  string
			dueDate   sql.NullString
			completed int
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &priority, &t.CategoryID, &dueDate, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Priority = model.Priority(priority)
		t.Completed = completed != 0

		t.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at of task %s: %w", t.ID, err)
		}
		if dueDate.Valid {
			due, err := time.Parse(timeLayout, dueDate.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse due_date of task %s: %w", t.ID, err)
			}
			t.DueDate = &due
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Save replaces the stored collections with state in one transaction
func (db *DB) Save(ctx context.Context, state model.State) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return persist.Wrap("save", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := db.saveTx(ctx, tx, state); err != nil {
		return persist.Wrap("save", err)
	}
	if err := tx.Commit(); err != nil {
		return persist.Wrap("save", fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

func (db *DB) saveTx(ctx context.Context, tx *sql.Tx, state model.State) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	catStmt, err := tx.PrepareContext(ctx, db.rebind(
		`INSERT INTO categories (id, position, name, color) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer catStmt.Close()

	for i, c := range state.Categories {
		if _, err := catStmt.ExecContext(ctx, c.ID, i, c.Name, c.Color); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	taskStmt, err := tx.PrepareContext(ctx, db.rebind(`
		INSERT INTO tasks (id, position, title, description, priority, category_id, due_date, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer taskStmt.Close()

	for i, t := range state.Tasks {
		var due sql.NullString
		if t.DueDate != nil {
			due = sql.NullString{String: t.DueDate.Format(timeLayout), Valid: true}
		}
		completed := 0
		if t.Completed {
			completed = 1
		}
		if _, err := taskStmt.ExecContext(ctx,
			t.ID, i, t.Title, t.Description, string(t.Priority), t.CategoryID,
			due, completed, t.CreatedAt.Format(timeLayout),
		); err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}
	return nil
}
