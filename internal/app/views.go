package app

import (
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

// SetActiveCategory selects the category filter; nil shows all tasks
func (s *Session) SetActiveCategory(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.active = nil
		return
	}
	v := *id
	s.active = &v
}

// ActiveCategory returns the selected category id, or nil
func (s *Session) ActiveCategory() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	v := *s.active
	return &v
}

// SetView selects a smart view
func (s *Session) SetView(v view.Smart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.smart = v
}

// View returns the selected smart view
func (s *Session) View() view.Smart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.smart
}

// SetSearch narrows visible tasks to those matching text
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// VisibleTasks applies the category filter, smart view and search
func (s *Session) VisibleTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := view.FilterByCategory(s.tasks.List(), s.active)
	tasks = view.Apply(tasks, s.smart, s.now())
	return view.Search(tasks, s.search)
}

// Stats aggregates all tasks
func (s *Session) Stats() view.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.ComputeStats(s.tasks.List())
}
