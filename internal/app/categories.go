package app

import (
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

// ListCategories returns categories in insertion order
func (s *Session) ListCategories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.List()
}

// GetCategory returns one category
func (s *Session) GetCategory(id string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Get(id)
}

// ResolveCategory expands a short id prefix
func (s *Session) ResolveCategory(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Resolve(prefix)
}

// AddCategory validates and stores a new category
func (s *Session) AddCategory(in model.CategoryInput) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.categories.Add(in)
	if err != nil {
		return model.Category{}, err
	}
	logger.Debug("Category added", logger.F("id", c.ID), logger.F("name", c.Name))
	s.changed()
	return c, nil
}

// UpdateCategory renames or recolors a category
func (s *Session) UpdateCategory(id string, patch model.CategoryPatch) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.categories.Update(id, patch)
	if err != nil {
		return model.Category{}, err
	}
	s.changed()
	return c, nil
}

// DeleteCategory removes the category. Its tasks keep the dangling id.
// An active filter on the deleted category is left in place.
func (s *Session) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.Delete(id); err != nil {
		return err
	}
	logger.Debug("Category deleted", logger.F("id", id))
	s.changed()
	return nil
}

// CategoryLabel resolves a category id for display
func (s *Session) CategoryLabel(id string) (name, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.CategoryLabel(s.categories.List(), id)
}
