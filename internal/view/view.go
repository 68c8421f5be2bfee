// Package view derives what the user sees from the task collection:
// category filtering, smart views, search and statistics.
package view

import (
	"strings"
	"time"

	"github.com/existflow/taskmaster/internal/model"
)

// Smart is a built-in task view
type Smart string

const (
	All       Smart = "all"
	Today     Smart = "today"
	Completed Smart = "completed"
	Overdue   Smart = "overdue"
)

// Smarts lists the built-in views in sidebar order
var Smarts = []Smart{All, Today, Completed, Overdue}

// ParseSmart converts a view name; the empty string means All
func ParseSmart(s string) (Smart, bool) {
	switch Smart(strings.ToLower(strings.TrimSpace(s))) {
	case "", All:
		return All, true
	case Today:
		return Today, true
	case Completed, "done":
		return Completed, true
	case Overdue:
		return Overdue, true
	}
	return "", false
}

// Title is the heading shown for the view
func (v Smart) Title() string {
	switch v {
	case Today:
		return "Today"
	case Completed:
		return "Completed"
	case Overdue:
		return "Overdue"
	}
	return "All Tasks"
}

// FilterByCategory returns tasks whose CategoryID equals *active.
// A nil active returns every task. The input is never modified.
func FilterByCategory(tasks []model.Task, active *string) []model.Task {
	return filter(tasks, func(t *model.Task) bool {
		return active == nil || t.CategoryID == *active
	})
}

// Apply narrows tasks to the smart view as of now
func Apply(tasks []model.Task, v Smart, now time.Time) []model.Task {
	switch v {
	case Today:
		return filter(tasks, func(t *model.Task) bool { return !t.Completed && t.IsDueToday(now) })
	case Completed:
		return filter(tasks, func(t *model.Task) bool { return t.Completed })
	case Overdue:
		return filter(tasks, func(t *model.Task) bool { return t.IsOverdue(now) })
	}
	return filter(tasks, func(*model.Task) bool { return true })
}

// Search keeps tasks whose title or description contains text, ignoring case
func Search(tasks []model.Task, text string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(text))
	return filter(tasks, func(t *model.Task) bool {
		return needle == "" ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	})
}

// CategoryLabel resolves a task's category for display. Dangling and empty
// ids resolve to Uncategorized with the default color.
func CategoryLabel(categories []model.Category, id string) (name, color string) {
	for _, c := range categories {
		if c.ID == id {
			return c.Name, c.Color
		}
	}
	return model.UncategorizedName, model.DefaultColor
}

func filter(tasks []model.Task, keep func(*model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i].Clone())
		}
	}
	return out
}
