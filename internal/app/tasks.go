package app

import (
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
)

// ListTasks returns every task in insertion order
func (s *Session) ListTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.List()
}

// GetTask returns one task
func (s *Session) GetTask(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Get(id)
}

// ResolveTask expands a short id prefix
func (s *Session) ResolveTask(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Resolve(prefix)
}

// AddTask validates and stores a new task
func (s *Session) AddTask(in model.TaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.Add(in)
	if err != nil {
		return model.Task{}, err
	}
	logger.Debug("Task added", logger.F("id", t.ID), logger.F("category", t.CategoryID))
	s.changed()
	return t, nil
}

// UpdateTask merges patch into the task
func (s *Session) UpdateTask(id string, patch model.TaskPatch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.Update(id, patch)
	if err != nil {
		return model.Task{}, err
	}
	logger.Debug("Task updated", logger.F("id", id))
	s.changed()
	return t, nil
}

// ToggleTaskComplete flips the completed flag
func (s *Session) ToggleTaskComplete(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.ToggleComplete(id)
	if err != nil {
		return model.Task{}, err
	}
	logger.Debug("Task toggled", logger.F("id", id), logger.F("completed", t.Completed))
	s.changed()
	return t, nil
}

// DeleteTask removes the task
func (s *Session) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Delete(id); err != nil {
		return err
	}
	logger.Debug("Task deleted", logger.F("id", id))
	s.changed()
	return nil
}
