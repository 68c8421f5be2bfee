package form

import (
	"fmt"

	"github.com/existflow/taskmaster/internal/model"
)

// CategoryBackend is the part of the session a category form submits to
type CategoryBackend interface {
	AddCategory(in model.CategoryInput) (model.Category, error)
	UpdateCategory(id string, patch model.CategoryPatch) (model.Category, error)
}

// CategoryValues are the editable fields of a category
type CategoryValues struct {
	Name  string
	Color string
}

// BlankCategory is the create template
func BlankCategory() CategoryValues {
	return CategoryValues{Color: model.DefaultColor}
}

// CategoryForm is the category create/edit form
type CategoryForm struct {
	*Controller[CategoryValues]
	saved model.Category
}

// NewCategoryForm returns an Idle category form submitting to backend
func NewCategoryForm(backend CategoryBackend) *CategoryForm {
	f := &CategoryForm{}
	f.Controller = NewController(func(mode Mode, v CategoryValues) error {
		in := model.CategoryInput{Name: v.Name, Color: v.Color}
		var (
			c   model.Category
			err error
		)
		switch m := mode.(type) {
		case Create:
			c, err = backend.AddCategory(in)
		case Edit:
			c, err = backend.UpdateCategory(m.ID, model.CategoryPatch{Name: &in.Name, Color: &in.Color})
		default:
			return fmt.Errorf("%w: unknown mode %T", ErrInvalidTransition, mode)
		}
		if err != nil {
			return err
		}
		f.saved = c
		return nil
	})
	return f
}

// OpenCreate opens the form on the blank template
func (f *CategoryForm) OpenCreate() error {
	return f.Open(Create{}, BlankCategory())
}

// OpenEdit opens the form on an existing category
func (f *CategoryForm) OpenEdit(c model.Category) error {
	return f.Open(Edit{ID: c.ID}, CategoryValues{Name: c.Name, Color: c.Color})
}

// Saved returns the category stored by the last successful submit
func (f *CategoryForm) Saved() model.Category {
	return f.saved
}
