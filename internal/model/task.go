package model

import (
	"fmt"
	"time"
)

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium" // default for new tasks
	PriorityHigh   Priority = "high"
)

// Priorities lists the accepted priorities, lowest first
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority converts user input such as "high" or "h" to a Priority
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low", "l", "3":
		return PriorityLow, nil
	case "medium", "m", "2":
		return PriorityMedium, nil
	case "high", "h", "1":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
}

// Task represents a single unit of work
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	CategoryID  string     `json:"categoryId"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskInput is the candidate record for creating or fully replacing a task.
// Nil Priority and Completed mean "use the default".
type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	CategoryID  string     `json:"categoryId"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
// ClearDueDate removes the due date and wins over DueDate.
type TaskPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	CategoryID   *string    `json:"categoryId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
	Completed    *bool      `json:"completed,omitempty"`
}

// Input returns the task's current values as an input record
func (t Task) Input() TaskInput {
	p := t.Priority
	c := t.Completed
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    &p,
		CategoryID:  t.CategoryID,
		DueDate:     cloneTime(t.DueDate),
		Completed:   &c,
	}
}

// Apply merges the patch over in
func (p TaskPatch) Apply(in TaskInput) TaskInput {
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Priority != nil {
		pr := *p.Priority
		in.Priority = &pr
	}
	if p.CategoryID != nil {
		in.CategoryID = *p.CategoryID
	}
	if p.DueDate != nil {
		in.DueDate = cloneTime(p.DueDate)
	}
	if p.ClearDueDate {
		in.DueDate = nil
	}
	if p.Completed != nil {
		c := *p.Completed
		in.Completed = &c
	}
	return in
}

// Clone returns a deep copy of the task
func (t Task) Clone() Task {
	t.DueDate = cloneTime(t.DueDate)
	return t
}

// IsDue returns true if the task is due today or overdue
func (t *Task) IsDue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	today := startOfDay(now)
	return t.DueDate.Before(today.Add(24 * time.Hour))
}

// IsDueToday returns true if the due date falls on now's calendar day
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	today := startOfDay(now)
	due := t.DueDate.In(now.Location())
	return !due.Before(today) && due.Before(today.Add(24*time.Hour))
}

// IsOverdue returns true if the task is pending and past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(startOfDay(now))
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
