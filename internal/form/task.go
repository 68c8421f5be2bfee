package form

import (
	"fmt"
	"time"

	"github.com/existflow/taskmaster/internal/model"
)

// TaskBackend is the part of the session a task form submits to
type TaskBackend interface {
	AddTask(in model.TaskInput) (model.Task, error)
	UpdateTask(id string, patch model.TaskPatch) (model.Task, error)
}

// TaskValues are the editable fields of a task
type TaskValues struct {
	Title       string
	Description string
	Priority    model.Priority
	CategoryID  string
	DueDate     *time.Time
	Completed   bool
}

// BlankTask is the create template: medium priority, first category
func BlankTask(categories []model.Category) TaskValues {
	v := TaskValues{Priority: model.PriorityMedium}
	if len(categories) > 0 {
		v.CategoryID = categories[0].ID
	}
	return v
}

// TaskValuesOf copies a stored task into form values
func TaskValuesOf(t model.Task) TaskValues {
	t = t.Clone()
	return TaskValues{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		CategoryID:  t.CategoryID,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}

// Input converts the values to a create input
func (v TaskValues) Input() model.TaskInput {
	p := v.Priority
	c := v.Completed
	return model.TaskInput{
		Title:       v.Title,
		Description: v.Description,
		Priority:    &p,
		CategoryID:  v.CategoryID,
		DueDate:     v.DueDate,
		Completed:   &c,
	}
}

// Patch converts the values to an update of every editable field.
// Completion is left out; it only changes through a toggle.
func (v TaskValues) Patch() model.TaskPatch {
	in := v.Input()
	return model.TaskPatch{
		Title:        &in.Title,
		Description:  &in.Description,
		Priority:     in.Priority,
		CategoryID:   &in.CategoryID,
		DueDate:      in.DueDate,
		ClearDueDate: in.DueDate == nil,
	}
}

// TaskForm is the task create/edit form
type TaskForm struct {
	*Controller[TaskValues]
	saved model.Task
}

// NewTaskForm returns an Idle task form submitting to backend
func NewTaskForm(backend TaskBackend) *TaskForm {
	f := &TaskForm{}
	f.Controller = NewController(func(mode Mode, v TaskValues) error {
		var (
			t   model.Task
			err error
		)
		switch m := mode.(type) {
		case Create:
			t, err = backend.AddTask(v.Input())
		case Edit:
			t, err = backend.UpdateTask(m.ID, v.Patch())
		default:
			return fmt.Errorf("%w: unknown mode %T", ErrInvalidTransition, mode)
		}
		if err != nil {
			return err
		}
		f.saved = t
		return nil
	})
	return f
}

// OpenCreate opens the form on the blank template
func (f *TaskForm) OpenCreate(categories []model.Category) error {
	return f.Open(Create{}, BlankTask(categories))
}

// OpenEdit opens the form on an existing task
func (f *TaskForm) OpenEdit(t model.Task) error {
	return f.Open(Edit{ID: t.ID}, TaskValuesOf(t))
}

// Saved returns the task stored by the last successful submit
func (f *TaskForm) Saved() model.Task {
	return f.saved
}
