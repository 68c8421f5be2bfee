// Package persist defines how session state is loaded and saved, and
// provides the JSON file backend, an in-memory backend and the
// write-behind autosaver.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/taskmaster/internal/model"
)

// ErrPersistence matches every load or save failure
var ErrPersistence = errors.New("persistence failure")

// Persister loads the state at session start and saves it after mutations
type Persister interface {
	Load(ctx context.Context) (model.State, error)
	Save(ctx context.Context, state model.State) error
}

// Error is a failed load or save. In-memory state stays authoritative.
type Error struct {
	Op  string // "load" or "save"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s state: %v", e.Op, e.Err)
}

// Unwrap matches ErrPersistence and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Wrap turns err into an *Error for op. nil stays nil and an *Error is
// returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// Memory keeps state in process. It backs the "memory" storage driver and tests.
type Memory struct {
	mu    sync.Mutex
	state model.State
	saves int
	err   error
}

// NewMemory returns a Memory persister that loads initial
func NewMemory(initial model.State) *Memory {
	return &Memory{state: initial.Clone()}
}

func (m *Memory) Load(ctx context.Context) (model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.State{}, m.err
	}
	return m.state.Clone(), nil
}

func (m *Memory) Save(ctx context.Context, state model.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.state = state.Clone()
	m.saves++
	return nil
}

// Saved returns the last saved state
func (m *Memory) Saved() model.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Saves counts successful saves
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailWith makes every following call return err; nil heals it
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
