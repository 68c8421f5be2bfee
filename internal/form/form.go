// Package form drives the create/edit lifecycle of task and category forms.
//
// A form is Idle until opened, Editing while the user changes values, and
// Validating for the duration of a submit. A successful submit returns to
// Idle; a rejected one returns to Editing with field errors attached.
// Forms never persist anything themselves; they call the session.
package form

import (
	"errors"
	"fmt"

	"github.com/existflow/taskmaster/internal/schema"
)

// ErrInvalidTransition is returned for an operation the current state forbids
var ErrInvalidTransition = errors.New("invalid form transition")

// State of a form
type State int

const (
	Idle State = iota
	Editing
	Validating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Mode says whether a form creates a new entity or edits an existing one.
// It is either Create or Edit.
type Mode interface {
	isMode()
}

// Create opens a form on a blank template
type Create struct{}

// Edit opens a form on an existing entity's values
type Edit struct {
	ID string
}

func (Create) isMode() {}
func (Edit) isMode()   {}

// SubmitFunc issues the store command for the form's mode and values
type SubmitFunc[V any] func(mode Mode, values V) error

// Controller is the state machine shared by all forms. V holds the field values.
type Controller[V any] struct {
	state  State
	mode   Mode
	values V
	dirty  bool
	errors map[string]string
	submit SubmitFunc[V]
}

// NewController returns an Idle controller that submits through fn
func NewController[V any](fn SubmitFunc[V]) *Controller[V] {
	return &Controller[V]{state: Idle, submit: fn}
}

func (c *Controller[V]) State() State { return c.state }
func (c *Controller[V]) Mode() Mode   { return c.mode }
func (c *Controller[V]) Values() V    { return c.values }
func (c *Controller[V]) Dirty() bool  { return c.dirty }

// Errors returns the field errors of the last rejected submit
func (c *Controller[V]) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// FieldError returns the message for one field, or ""
func (c *Controller[V]) FieldError(field string) string {
	return c.errors[field]
}

// Open binds the form to values and starts editing
func (c *Controller[V]) Open(mode Mode, values V) error {
	if mode == nil {
		return fmt.Errorf("%w: open without a mode", ErrInvalidTransition)
	}
	if err := c.transition(Idle, Editing); err != nil {
		return err
	}
	c.mode = mode
	c.values = values
	c.dirty = false
	c.errors = nil
	return nil
}

// Set changes values while editing and marks the form dirty
func (c *Controller[V]) Set(change func(*V)) error {
	if c.state != Editing {
		return fmt.Errorf("%w: set while %s", ErrInvalidTransition, c.state)
	}
	change(&c.values)
	c.dirty = true
	return nil
}

// Submit runs the store command. On success the form is Idle and nil is
// returned. A *schema.ValidationError leaves the form Editing with its field
// errors recorded. Any other error also leaves it Editing and is returned.
func (c *Controller[V]) Submit() error {
	if err := c.transition(Editing, Validating); err != nil {
		return err
	}

	err := c.submit(c.mode, c.values)
	if err == nil {
		c.reset()
		return c.transition(Validating, Idle)
	}

	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		c.errors = ve.FieldMessages()
	} else {
		c.errors = nil
	}
	if terr := c.transition(Validating, Editing); terr != nil {
		return terr
	}
	return err
}

// Cancel abandons the edit without issuing any command
func (c *Controller[V]) Cancel() error {
	if err := c.transition(Editing, Idle); err != nil {
		return err
	}
	c.reset()
	return nil
}

func (c *Controller[V]) reset() {
	var zero V
	c.mode = nil
	c.values = zero
	c.dirty = false
	c.errors = nil
}

func (c *Controller[V]) transition(from, to State) error {
	if c.state != from {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidTransition, from, c.state)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	c.state = to
	return nil
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case Idle:
		return to == Editing
	case Editing:
		return to == Validating || to == Idle
	case Validating:
		return to == Idle || to == Editing
	default:
		return false
	}
}
