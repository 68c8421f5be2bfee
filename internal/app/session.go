// Package app holds the session: the single owner of the task and category
// collections. Every command and query goes through it.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/taskmaster/internal/ident"
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/persist"
	"github.com/existflow/taskmaster/internal/store"
	"github.com/existflow/taskmaster/internal/view"
)

// Options configure a session
type Options struct {
	User     model.User
	Debounce time.Duration    // 0 saves synchronously after each mutation
	IDs      ident.Generator  // nil uses ident.New
	Now      func() time.Time // nil uses time.Now
	OnError  func(err error)  // background save failures
}

// Session serializes all access to the collections. Mutations apply in
// memory first; saving happens behind them and never rolls them back.
type Session struct {
	mu         sync.Mutex
	user       model.User
	now        func() time.Time
	categories *store.CategoryStore
	tasks      *store.TaskStore
	active     *string
	smart      view.Smart
	search     string
	saver      *persist.Autosaver
}

// Open loads state from p and returns a ready session
func Open(ctx context.Context, p persist.Persister, opts Options) (*Session, error) {
	state, err := p.Load(ctx)
	if err != nil {
		return nil, persist.Wrap("load", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		user:  opts.User,
		now:   now,
		smart: view.All,
		saver: persist.NewAutosaver(p, opts.Debounce),
	}
	s.categories = store.NewCategoryStore(opts.IDs)
	s.tasks = store.NewTaskStore(s.categories, opts.IDs, now)
	s.categories.Replace(state.Categories)
	s.tasks.Replace(state.Tasks)

	s.saver.SetOnError(func(err error) {
		logger.Error("Autosave failed", logger.F("error", err))
		if opts.OnError != nil {
			opts.OnError(err)
		}
	})

	logger.Info("Session opened",
		logger.F("tasks", len(state.Tasks)),
		logger.F("categories", len(state.Categories)),
	)
	return s, nil
}

// Close saves pending changes and stops the autosaver
func (s *Session) Close(ctx context.Context) error {
	err := s.saver.Stop(ctx)
	if err != nil {
		logger.Error("Final save failed", logger.F("error", err))
	}
	return err
}

// Flush saves pending changes now
func (s *Session) Flush(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// LastSaveError returns the outcome of the most recent save
func (s *Session) LastSaveError() error {
	return s.saver.LastError()
}

// User returns the display identity
func (s *Session) User() model.User {
	return s.user
}

// snapshot must be called with mu held
func (s *Session) snapshot() model.State {
	return model.State{Tasks: s.tasks.List(), Categories: s.categories.List()}
}

// changed schedules a save of the current state. mu must be held.
// A synchronous save failure is logged and left for LastSaveError.
func (s *Session) changed() {
	if err := s.saver.Trigger(s.snapshot()); err != nil {
		logger.Error("Save failed", logger.F("error", err))
	}
}

// SavePending reports whether changes are waiting to be saved
func (s *Session) SavePending() bool {
	return s.saver.IsPending()
}
