package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/model"
)

func sampleState() model.State {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		Tasks: []model.Task{{
			ID:         "t1",
			Title:      "Write report",
			Priority:   model.PriorityHigh,
			CategoryID: "c1",
			DueDate:    &due,
			CreatedAt:  time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		}},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	fs := NewFileStore(path)

	empty, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Tasks)
	assert.NotNil(t, empty.Tasks)

	require.NoError(t, fs.Save(ctx, sampleState()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"categoryId": "c1"`)
	assert.Contains(t, string(raw), `"createdAt"`)

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "load", pe.Op)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("save", nil))

	cause := errors.New("disk full")
	err := Wrap("save", cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save state: disk full", err.Error())
	assert.Same(t, err, Wrap("load", err))
}

func TestAutosaver_Synchronous(t *testing.T) {
	mem := NewMemory(model.State{})
	a := NewAutosaver(mem, 0)

	require.NoError(t, a.Trigger(sampleState()))
	assert.Equal(t, 1, mem.Saves())
	assert.Equal(t, sampleState(), mem.Saved())
	assert.False(t, a.IsPending())

	mem.FailWith(errors.New("read-only"))
	err := a.Trigger(model.State{})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, a.LastError(), ErrPersistence)
	assert.True(t, a.IsPending(), "failed snapshot is retried")

	mem.FailWith(nil)
	require.NoError(t, a.Flush(context.Background()))
	assert.NoError(t, a.LastError())
	assert.Equal(t, 2, mem.Saves())
}

func TestAutosaver_DebouncesBursts(t *testing.T) {
	mem := NewMemory(model.State{})
	a := NewAutosaver(mem, 20*time.Millisecond)

	var saved atomic.Int32
	a.SetOnSave(func() { saved.Add(1) })

	for i := 0; i < 5; i++ {
		require.NoError(t, a.Trigger(sampleState()))
	}
	assert.True(t, a.IsPending())

	require.Eventually(t, func() bool { return saved.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, mem.Saves())
	assert.Equal(t, sampleState(), mem.Saved())
	require.NoError(t, a.Stop(context.Background()))
}

func TestAutosaver_ReportsBackgroundErrors(t *testing.T) {
	mem := NewMemory(model.State{})
	mem.FailWith(errors.New("offline"))
	a := NewAutosaver(mem, 10*time.Millisecond)

	errs := make(chan error, 1)
	a.SetOnError(func(err error) { errs <- err })

	require.NoError(t, a.Trigger(sampleState()))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrPersistence)
	case <-time.After(time.Second):
		t.Fatal("no error reported")
	}

	// the in-memory snapshot is still saved once the backend recovers
	mem.FailWith(nil)
	require.NoError(t, a.Stop(context.Background()))
	assert.Equal(t, sampleState(), mem.Saved())
}

func TestAutosaver_StopFlushesPending(t *testing.T) {
	mem := NewMemory(model.State{})
	a := NewAutosaver(mem, time.Hour)

	require.NoError(t, a.Trigger(sampleState()))
	assert.Equal(t, 0, mem.Saves())

	require.NoError(t, a.Stop(context.Background()))
	assert.Equal(t, 1, mem.Saves())

	// after Stop triggers save immediately
	require.NoError(t, a.Trigger(model.State{}))
	assert.Equal(t, 2, mem.Saves())
	require.NoError(t, a.Stop(context.Background()))
}
