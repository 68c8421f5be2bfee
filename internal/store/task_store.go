package store

import (
	"errors"
	"time"

	"github.com/existflow/taskmaster/internal/ident"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/schema"
)

// CategoryLookup is what the task store needs from the category collection
type CategoryLookup interface {
	Exists(id string) bool
}

// TaskStore keeps the ordered task collection.
// It is not safe for concurrent use; app.Session serializes access.
type TaskStore struct {
	categories  CategoryLookup
	newID       ident.Generator
	now         func() time.Time
	lastCreated time.Time
	tasks       []model.Task
}

// NewTaskStore creates an empty store. Nil ids or now fall back to
// ident.New and time.Now.
func NewTaskStore(categories CategoryLookup, ids ident.Generator, now func() time.Time) *TaskStore {
	if ids == nil {
		ids = ident.New
	}
	if now == nil {
		now = time.Now
	}
	return &TaskStore{categories: categories, newID: ids, now: now}
}

// Add validates the input, assigns ID and CreatedAt and appends the task
func (s *TaskStore) Add(in model.TaskInput) (model.Task, error) {
	t, err := schema.ValidateTask(in)
	if err != nil {
		return model.Task{}, err
	}
	if !s.categories.Exists(t.CategoryID) {
		return model.Task{}, unknownCategory(t.CategoryID)
	}

	t.ID = s.newID()
	t.CreatedAt = s.stamp()
	s.tasks = append(s.tasks, t)
	return t.Clone(), nil
}

// Update merges patch over the stored task and replaces it.
// A task may keep a dangling CategoryID, but cannot be moved to one.
func (s *TaskStore) Update(id string, patch model.TaskPatch) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	cur := s.tasks[i]

	t, err := schema.ValidateTask(patch.Apply(cur.Input()))
	if err != nil {
		return model.Task{}, err
	}
	if t.CategoryID != cur.CategoryID && !s.categories.Exists(t.CategoryID) {
		return model.Task{}, unknownCategory(t.CategoryID)
	}

	t.ID = cur.ID
	t.CreatedAt = cur.CreatedAt
	s.tasks[i] = t
	return t.Clone(), nil
}

// ToggleComplete flips the completed flag and nothing else
func (s *TaskStore) ToggleComplete(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i].Clone(), nil
}

// Delete removes the task. Deleting an absent id is a *NotFoundError.
func (s *TaskStore) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound("task", id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Get returns the task with the given id
func (s *TaskStore) Get(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	return s.tasks[i].Clone(), nil
}

// Resolve expands a unique id prefix to the full task id
func (s *TaskStore) Resolve(prefix string) (string, error) {
	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	return resolve("task", ids, prefix)
}

// List returns copies of all tasks in insertion order
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of stored tasks
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Replace swaps in a loaded collection without re-validating it
func (s *TaskStore) Replace(tasks []model.Task) {
	s.tasks = make([]model.Task, len(tasks))
	s.lastCreated = time.Time{}
	for i, t := range tasks {
		s.tasks[i] = t.Clone()
		if t.CreatedAt.After(s.lastCreated) {
			s.lastCreated = t.CreatedAt
		}
	}
}

// stamp returns a creation time that never goes backwards
func (s *TaskStore) stamp() time.Time {
	now := s.now().Round(0)
	if now.Before(s.lastCreated) {
		now = s.lastCreated
	}
	s.lastCreated = now
	return now
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func unknownCategory(id string) error {
	return schema.NewValidationError("task", &schema.FieldError{
		Field:   "categoryId",
		Kind:    ErrUnknownCategory,
		Message: "category " + id + " does not exist",
	})
}

// IsValidation reports whether err is a field-level validation failure
func IsValidation(err error) bool {
	var ve *schema.ValidationError
	return errors.As(err, &ve)
}
