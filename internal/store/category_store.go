package store

import (
	"github.com/existflow/taskmaster/internal/ident"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/schema"
)

// CategoryStore keeps the ordered category collection.
// It is not safe for concurrent use; app.Session serializes access.
type CategoryStore struct {
	newID      ident.Generator
	categories []model.Category
}

// NewCategoryStore creates an empty store. A nil generator uses ident.New.
func NewCategoryStore(ids ident.Generator) *CategoryStore {
	if ids == nil {
		ids = ident.New
	}
	return &CategoryStore{newID: ids}
}

// Add validates the input and appends a new category
func (s *CategoryStore) Add(in model.CategoryInput) (model.Category, error) {
	c, err := schema.ValidateCategory(in)
	if err != nil {
		return model.Category{}, err
	}
	c.ID = s.newID()
	s.categories = append(s.categories, c)
	return c, nil
}

// Update renames or recolors a category
func (s *CategoryStore) Update(id string, patch model.CategoryPatch) (model.Category, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Category{}, notFound("category", id)
	}
	c, err := schema.ValidateCategory(patch.Apply(s.categories[i].Input()))
	if err != nil {
		return model.Category{}, err
	}
	c.ID = id
	s.categories[i] = c
	return c, nil
}

// Delete removes the category. Tasks pointing at it keep their
// CategoryID and are shown as uncategorized.
func (s *CategoryStore) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound("category", id)
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return nil
}

// Get returns the category with the given id
func (s *CategoryStore) Get(id string) (model.Category, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Category{}, notFound("category", id)
	}
	return s.categories[i], nil
}

// Exists reports whether a category with the id is stored
func (s *CategoryStore) Exists(id string) bool {
	return s.indexOf(id) >= 0
}

// Resolve expands a unique id prefix to the full category id
func (s *CategoryStore) Resolve(prefix string) (string, error) {
	ids := make([]string, len(s.categories))
	for i, c := range s.categories {
		ids[i] = c.ID
	}
	return resolve("category", ids, prefix)
}

// List returns the categories in insertion order
func (s *CategoryStore) List() []model.Category {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Replace swaps in a loaded collection
func (s *CategoryStore) Replace(categories []model.Category) {
	s.categories = make([]model.Category, len(categories))
	copy(s.categories, categories)
}

func (s *CategoryStore) indexOf(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
