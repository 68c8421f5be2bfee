package view

import "github.com/existflow/taskmaster/internal/model"

// Stats aggregates a task collection
type Stats struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	HighPriorityPending int `json:"highPriorityPending"`
	CompletionRate      int `json:"completionRate"` // percent, 0-100
}

// ComputeStats counts tasks. CompletionRate is 100*completed/total rounded
// half up, or 0 for an empty collection.
func ComputeStats(tasks []model.Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == model.PriorityHigh {
			s.HighPriorityPending++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		// integer round-half-up of 100*c/t
		s.CompletionRate = (200*s.Completed + s.Total) / (2 * s.Total)
	}
	return s
}
