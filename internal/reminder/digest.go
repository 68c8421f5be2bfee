// Package reminder sends a scheduled digest of overdue and due-today tasks.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

// Digest is the content of one reminder
type Digest struct {
	Date     time.Time
	Overdue  []model.Task
	DueToday []model.Task
	Stats    view.Stats
}

// BuildDigest collects pending work that needs attention as of now
func BuildDigest(tasks []model.Task, now time.Time) Digest {
	return Digest{
		Date:     now,
		Overdue:  view.Apply(tasks, view.Overdue, now),
		DueToday: view.Apply(tasks, view.Today, now),
		Stats:    view.ComputeStats(tasks),
	}
}

// Empty is true when nothing is overdue or due today
func (d Digest) Empty() bool {
	return len(d.Overdue) == 0 && len(d.DueToday) == 0
}

// Render formats the digest as plain text
func (d Digest) Render(categories []model.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tasks for %s\n", d.Date.Format("Mon, Jan 2"))

	section := func(title string, tasks []model.Task) {
		if len(tasks) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s (%d)\n", title, len(tasks))
		for _, t := range tasks {
			name, _ := view.CategoryLabel(categories, t.CategoryID)
			marker := "-"
			if t.Priority == model.PriorityHigh {
				marker = "!"
			}
			fmt.Fprintf(&b, "%s %s [%s]", marker, t.Title, name)
			if t.DueDate != nil {
				fmt.Fprintf(&b, " due %s", t.DueDate.In(d.Date.Location()).Format("Jan 2"))
			}
			b.WriteString("\n")
		}
	}
	section("Overdue", d.Overdue)
	section("Due today", d.DueToday)

	fmt.Fprintf(&b, "\n%d pending, %d%% complete", d.Stats.Pending, d.Stats.CompletionRate)
	return b.String()
}
