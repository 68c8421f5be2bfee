package persist

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/taskmaster/internal/model"
)

// Autosaver writes the latest snapshot behind the session.
// Snapshots are debounced so a burst of mutations costs one save.
type Autosaver struct {
	target       Persister
	debounceTime time.Duration

	mu        sync.Mutex
	snapshot  model.State
	pending   bool
	scheduled bool
	stopped   bool
	lastErr   error
	onError   func(error)
	onSave    func()

	saveMu sync.Mutex // orders saves
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewAutosaver creates an autosaver. A debounce of 0 saves synchronously
// inside Trigger.
func NewAutosaver(target Persister, debounce time.Duration) *Autosaver {
	return &Autosaver{
		target:       target,
		debounceTime: debounce,
		stopCh:       make(chan struct{}),
	}
}

// SetOnError sets a callback for background save failures
func (a *Autosaver) SetOnError(callback func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onError = callback
}

// SetOnSave sets a callback for successful saves
func (a *Autosaver) SetOnSave(callback func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSave = callback
}

// Trigger records state as the latest snapshot and schedules a save.
// Only synchronous saves return an error; background failures go to the
// OnError callback and LastError.
func (a *Autosaver) Trigger(state model.State) error {
	a.mu.Lock()
	a.snapshot = state
	if a.debounceTime <= 0 || a.stopped {
		a.pending = true
		a.mu.Unlock()
		return a.Flush(context.Background())
	}
	a.pending = true
	if !a.scheduled {
		a.scheduled = true
		a.wg.Add(1)
		go a.debouncedSave()
	}
	a.mu.Unlock()
	return nil
}

func (a *Autosaver) debouncedSave() {
	defer a.wg.Done()

	timer := time.NewTimer(a.debounceTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		a.mu.Lock()
		a.scheduled = false
		a.mu.Unlock()
		if err := a.Flush(context.Background()); err != nil {
			a.mu.Lock()
			callback := a.onError
			a.mu.Unlock()
			if callback != nil {
				callback(err)
			}
		}
	case <-a.stopCh:
		return
	}
}

// Flush saves the pending snapshot now, if there is one
func (a *Autosaver) Flush(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	if !a.pending {
		a.mu.Unlock()
		return nil
	}
	snapshot := a.snapshot
	a.pending = false
	a.mu.Unlock()

	err := Wrap("save", a.target.Save(ctx, snapshot))

	a.mu.Lock()
	a.lastErr = err
	if err != nil && !a.pending {
		// keep the snapshot so a later Flush retries it
		a.snapshot = snapshot
		a.pending = true
	}
	callback := a.onSave
	a.mu.Unlock()

	if err == nil && callback != nil {
		callback()
	}
	return err
}

// LastError returns the result of the most recent save
func (a *Autosaver) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// IsPending returns true if a snapshot is waiting to be saved
func (a *Autosaver) IsPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Stop cancels the debounce timer and saves whatever is pending.
// Later triggers save synchronously.
func (a *Autosaver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.stopped {
		a.stopped = true
		close(a.stopCh)
	}
	a.mu.Unlock()

	a.wg.Wait()
	return a.Flush(ctx)
}
