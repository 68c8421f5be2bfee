package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/config"
	"github.com/existflow/taskmaster/internal/db"
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/persist"
	"github.com/existflow/taskmaster/internal/store"
)

// openStore returns the configured persistence backend and its closer
func openStore(ctx context.Context, cfg *config.Config) (persist.Persister, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverJSON:
		return persist.NewFileStore(cfg.StoragePath()), noop, nil
	case config.DriverMemory:
		return persist.NewMemory(model.State{}), noop, nil
	case config.DriverSQLite:
		database, err := db.Open(cfg.StoragePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, database.Close, nil
	case config.DriverPostgres:
		database, err := db.OpenDialect(ctx, db.Postgres, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, database.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// openSession loads a session from the configured backend. The returned
// done func saves pending changes and closes the backend; it sets *errp
// when the final save fails and *errp is still nil.
func openSession(ctx context.Context, cfg *config.Config, debounce time.Duration) (*app.Session, func(errp *error), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	s, err := app.Open(ctx, p, app.Options{User: cfg.User, Debounce: debounce})
	if err != nil {
		_ = closeStore()
		logger.Error("Failed to load state", logger.F("error", err))
		return nil, nil, err
	}

	done := func(errp *error) {
		if err := s.Close(context.Background()); err != nil && *errp == nil {
			*errp = err
		}
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close storage", logger.F("error", err))
		}
	}
	return s, done, nil
}

// resolveTask expands a full id or short prefix
func resolveTask(s *app.Session, ref string) (model.Task, error) {
	id, err := s.ResolveTask(ref)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Task{}, fmt.Errorf("task not found: %s", ref)
		}
		return model.Task{}, err
	}
	return s.GetTask(id)
}

// resolveCategory accepts an id, a short id prefix or a category name
func resolveCategory(s *app.Session, ref string) (model.Category, error) {
	id, err := s.ResolveCategory(ref)
	if err == nil {
		return s.GetCategory(id)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.Category{}, err
	}
	for _, c := range s.ListCategories() {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("category not found: %s", ref)
}

// parseDue understands "today", "tomorrow", "next week", YYYY-MM-DD and RFC 3339
func parseDue(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var due time.Time
	switch s {
	case "today":
		due = today
	case "tomorrow":
		due = today.AddDate(0, 0, 1)
	case "next week":
		due = today.AddDate(0, 0, 7)
	default:
		t, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			t, err = time.Parse(time.RFC3339, strings.ToUpper(s))
			if err != nil {
				return nil, fmt.Errorf("invalid due date %q (use today, tomorrow, next week or YYYY-MM-DD)", s)
			}
		}
		due = t
	}
	return &due, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
