package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/ident"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/store"
)

// backend adapts the stores to the form interfaces
type backend struct {
	cats  *store.CategoryStore
	tasks *store.TaskStore
	calls int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	cats := store.NewCategoryStore(ident.Sequence("c"))
	_, err := cats.Add(model.CategoryInput{Name: "Work", Color: model.DefaultColor})
	require.NoError(t, err)
	return &backend{cats: cats, tasks: store.NewTaskStore(cats, ident.Sequence("t"), nil)}
}

func (b *backend) AddTask(in model.TaskInput) (model.Task, error) {
	b.calls++
	return b.tasks.Add(in)
}

func (b *backend) UpdateTask(id string, p model.TaskPatch) (model.Task, error) {
	b.calls++
	return b.tasks.Update(id, p)
}

func (b *backend) AddCategory(in model.CategoryInput) (model.Category, error) {
	b.calls++
	return b.cats.Add(in)
}

func (b *backend) UpdateCategory(id string, p model.CategoryPatch) (model.Category, error) {
	b.calls++
	return b.cats.Update(id, p)
}

func TestTaskForm_CreateLifecycle(t *testing.T) {
	b := newBackend(t)
	f := NewTaskForm(b)
	assert.Equal(t, Idle, f.State())

	require.NoError(t, f.OpenCreate(b.cats.List()))
	assert.Equal(t, Editing, f.State())
	assert.Equal(t, Create{}, f.Mode())
	assert.Equal(t, model.PriorityMedium, f.Values().Priority)
	assert.Equal(t, "c-1", f.Values().CategoryID)
	assert.False(t, f.Dirty())

	// empty title is rejected and the form stays open
	err := f.Submit()
	require.Error(t, err)
	assert.Equal(t, Editing, f.State())
	assert.Equal(t, "Title is required", f.FieldError("title"))
	assert.Empty(t, b.tasks.List())

	require.NoError(t, f.Set(func(v *TaskValues) { v.Title = "Write report" }))
	assert.True(t, f.Dirty())

	require.NoError(t, f.Submit())
	assert.Equal(t, Idle, f.State())
	assert.Empty(t, f.Errors())
	assert.Equal(t, "Write report", f.Saved().Title)
	assert.Len(t, b.tasks.List(), 1)
}

func TestTaskForm_Edit(t *testing.T) {
	b := newBackend(t)
	task, err := b.tasks.Add(model.TaskInput{Title: "old", CategoryID: "c-1"})
	require.NoError(t, err)

	f := NewTaskForm(b)
	require.NoError(t, f.OpenEdit(task))
	assert.Equal(t, Edit{ID: task.ID}, f.Mode())
	assert.Equal(t, "old", f.Values().Title)

	require.NoError(t, f.Set(func(v *TaskValues) {
		v.Title = "new"
		v.Priority = model.PriorityHigh
	}))
	require.NoError(t, f.Submit())

	got, err := b.tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
}

func TestTaskForm_EditKeepsConcurrentToggle(t *testing.T) {
	b := newBackend(t)
	task, err := b.tasks.Add(model.TaskInput{Title: "x", CategoryID: "c-1"})
	require.NoError(t, err)

	f := NewTaskForm(b)
	require.NoError(t, f.OpenEdit(task))

	// completed elsewhere while the form is open
	_, err = b.tasks.ToggleComplete(task.ID)
	require.NoError(t, err)

	require.NoError(t, f.Set(func(v *TaskValues) { v.Title = "y" }))
	require.NoError(t, f.Submit())

	got, err := b.tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Title)
	assert.True(t, got.Completed)
	assert.Nil(t, TaskValuesOf(got).Patch().Completed)
}

func TestTaskForm_EditDeletedTask(t *testing.T) {
	b := newBackend(t)
	task, err := b.tasks.Add(model.TaskInput{Title: "x", CategoryID: "c-1"})
	require.NoError(t, err)

	f := NewTaskForm(b)
	require.NoError(t, f.OpenEdit(task))
	require.NoError(t, b.tasks.Delete(task.ID))

	err = f.Submit()
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, Editing, f.State())
	assert.Empty(t, f.Errors())
	require.NoError(t, f.Cancel())
}

func TestForm_CancelIssuesNothing(t *testing.T) {
	b := newBackend(t)
	f := NewCategoryForm(b)

	require.NoError(t, f.OpenCreate())
	require.NoError(t, f.Set(func(v *CategoryValues) { v.Name = "Home" }))
	require.NoError(t, f.Cancel())

	assert.Equal(t, Idle, f.State())
	assert.Nil(t, f.Mode())
	assert.False(t, f.Dirty())
	assert.Equal(t, 0, b.calls)
	assert.Len(t, b.cats.List(), 1)
}

func TestForm_InvalidTransitions(t *testing.T) {
	b := newBackend(t)
	f := NewCategoryForm(b)

	assert.ErrorIs(t, f.Submit(), ErrInvalidTransition)
	assert.ErrorIs(t, f.Cancel(), ErrInvalidTransition)
	assert.ErrorIs(t, f.Set(func(*CategoryValues) {}), ErrInvalidTransition)
	assert.ErrorIs(t, f.Open(nil, CategoryValues{}), ErrInvalidTransition)

	require.NoError(t, f.OpenCreate())
	assert.ErrorIs(t, f.OpenCreate(), ErrInvalidTransition)
	assert.Equal(t, Editing, f.State())
}

func TestCategoryForm(t *testing.T) {
	b := newBackend(t)
	f := NewCategoryForm(b)

	require.NoError(t, f.OpenCreate())
	assert.Equal(t, BlankCategory(), f.Values())

	err := f.Submit()
	require.Error(t, err)
	assert.Equal(t, "Category name is required", f.FieldError("name"))

	require.NoError(t, f.Set(func(v *CategoryValues) {
		v.Name = "Home"
		v.Color = "#47B881"
	}))
	require.NoError(t, f.Submit())
	home := f.Saved()
	assert.Equal(t, "Home", home.Name)

	require.NoError(t, f.OpenEdit(home))
	require.NoError(t, f.Set(func(v *CategoryValues) { v.Name = "House" }))
	require.NoError(t, f.Submit())

	got, err := b.cats.Get(home.ID)
	require.NoError(t, err)
	assert.Equal(t, "House", got.Name)
	assert.Equal(t, "#47B881", got.Color)
}

func TestController_UnknownError(t *testing.T) {
	boom := errors.New("boom")
	c := NewController(func(Mode, int) error { return boom })

	require.NoError(t, c.Open(Create{}, 1))
	assert.ErrorIs(t, c.Submit(), boom)
	assert.Equal(t, Editing, c.State())
	assert.Equal(t, 1, c.Values())
}
