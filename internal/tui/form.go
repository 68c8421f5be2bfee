package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskmaster/internal/form"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/schema"
)

// task form fields, in focus order
const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldCategory
	fieldDue
	taskFieldCount
)

// category form fields
const (
	fieldName = iota
	fieldColor
	categoryFieldCount
)

const dueLayout = "2006-01-02"

func newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// isTextField reports whether focus lands on a text input
func (m *Model) isTextField(i int) bool {
	if m.mode == ModeTaskForm {
		return i != fieldPriority && i != fieldCategory
	}
	return true
}

func (m *Model) fieldCount() int {
	if m.mode == ModeTaskForm {
		return taskFieldCount
	}
	return categoryFieldCount
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := m.fieldCount()
	m.focus = (i%n + n) % n
	for j := range m.fields {
		m.fields[j].Blur()
	}
	if m.isTextField(m.focus) {
		return m.fields[m.focus].Focus()
	}
	return nil
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	if len(m.categories) == 0 {
		m.message = "Create a category first (press c)"
		return m, nil
	}
	if err := m.taskForm.OpenCreate(m.categories); err != nil {
		m.message = err.Error()
		return m, nil
	}
	// prefer the highlighted category over the first one
	if c := m.currentCategory(); c != nil {
		id := c.ID
		_ = m.taskForm.Set(func(v *form.TaskValues) { v.CategoryID = id })
	}
	return m.openTaskFields()
}

func (m Model) startEditTask() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if m.pane != PaneTaskList || task == nil {
		return m, nil
	}
	if err := m.taskForm.OpenEdit(*task); err != nil {
		m.message = err.Error()
		return m, nil
	}
	return m.openTaskFields()
}

func (m Model) openTaskFields() (tea.Model, tea.Cmd) {
	v := m.taskForm.Values()
	m.fields = make([]textinput.Model, taskFieldCount)
	m.fields[fieldTitle] = newField("What needs doing?", 256)
	m.fields[fieldTitle].SetValue(v.Title)
	m.fields[fieldDescription] = newField("Details (optional)", 1024)
	m.fields[fieldDescription].SetValue(v.Description)
	m.fields[fieldDue] = newField(dueLayout+" (optional)", 10)
	if v.DueDate != nil {
		m.fields[fieldDue].SetValue(v.DueDate.In(time.Local).Format(dueLayout))
	}
	m.mode = ModeTaskForm
	m.formError = ""
	return m, tea.Batch(m.setFocus(fieldTitle), textinput.Blink)
}

func (m Model) startAddCategory() (tea.Model, tea.Cmd) {
	if err := m.categoryForm.OpenCreate(); err != nil {
		m.message = err.Error()
		return m, nil
	}
	return m.openCategoryFields()
}

func (m Model) startEditCategory() (tea.Model, tea.Cmd) {
	c := m.currentCategory()
	if c == nil {
		m.message = "Select a category to edit"
		return m, nil
	}
	if err := m.categoryForm.OpenEdit(*c); err != nil {
		m.message = err.Error()
		return m, nil
	}
	return m.openCategoryFields()
}

func (m Model) openCategoryFields() (tea.Model, tea.Cmd) {
	v := m.categoryForm.Values()
	m.fields = make([]textinput.Model, categoryFieldCount)
	m.fields[fieldName] = newField("Category name", 64)
	m.fields[fieldName].SetValue(v.Name)
	m.fields[fieldColor] = newField(model.DefaultColor, 32)
	m.fields[fieldColor].SetValue(v.Color)
	m.mode = ModeCategoryForm
	m.formError = ""
	return m, tea.Batch(m.setFocus(fieldName), textinput.Blink)
}

// updateForm handles keys while a task or category form is open
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.cancelForm()
		return m, nil

	case key.Matches(msg, keys.Tab), msg.String() == "down":
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.BackTab), msg.String() == "up":
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Save):
		m.submitForm()
		return m, nil
	}

	if !m.isTextField(m.focus) {
		switch msg.String() {
		case "left", "h":
			m.cycle(-1)
		case "right", "l", " ":
			m.cycle(1)
		}
		return m, nil
	}

	if m.mode == ModeCategoryForm && m.focus == fieldColor && msg.String() == "ctrl+n" {
		m.fields[fieldColor].SetValue(model.NextColor(m.fields[fieldColor].Value()))
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// cycle steps the focused choice field of the task form
func (m *Model) cycle(step int) {
	switch m.focus {
	case fieldPriority:
		_ = m.taskForm.Set(func(v *form.TaskValues) {
			i := indexOf(model.Priorities, v.Priority)
			v.Priority = model.Priorities[wrap(i+step, len(model.Priorities))]
		})
	case fieldCategory:
		if len(m.categories) == 0 {
			return
		}
		_ = m.taskForm.Set(func(v *form.TaskValues) {
			i := -1
			for j, c := range m.categories {
				if c.ID == v.CategoryID {
					i = j
				}
			}
			v.CategoryID = m.categories[wrap(i+step, len(m.categories))].ID
		})
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

func (m *Model) cancelForm() {
	switch m.mode {
	case ModeTaskForm:
		_ = m.taskForm.Cancel()
	case ModeCategoryForm:
		_ = m.categoryForm.Cancel()
	}
	m.mode = ModeNormal
	m.fields = nil
	m.formError = ""
}

// submitForm copies the inputs into the form and submits it. The form
// stays open with errors when the values are rejected.
func (m *Model) submitForm() {
	m.formError = ""

	var (
		err   error
		saved string
	)
	switch m.mode {
	case ModeTaskForm:
		due, derr := parseDueField(m.fields[fieldDue].Value())
		if derr != nil {
			m.formError = derr.Error()
			return
		}
		_ = m.taskForm.Set(func(v *form.TaskValues) {
			v.Title = m.fields[fieldTitle].Value()
			v.Description = m.fields[fieldDescription].Value()
			v.DueDate = due
		})
		_, editing := m.taskForm.Mode().(form.Edit)
		if err = m.taskForm.Submit(); err == nil {
			saved = verb(editing) + m.taskForm.Saved().Title
		}

	case ModeCategoryForm:
		_ = m.categoryForm.Set(func(v *form.CategoryValues) {
			v.Name = m.fields[fieldName].Value()
			v.Color = m.fields[fieldColor].Value()
		})
		_, editing := m.categoryForm.Mode().(form.Edit)
		if err = m.categoryForm.Submit(); err == nil {
			saved = verb(editing) + "category " + m.categoryForm.Saved().Name
		}
	}

	if err != nil {
		var ve *schema.ValidationError
		if !errors.As(err, &ve) {
			m.formError = err.Error()
		}
		return
	}

	m.mode = ModeNormal
	m.fields = nil
	m.message = saved
	m.loadData()
}

func verb(editing bool) string {
	if editing {
		return "Updated: "
	}
	return "Added: "
}

// fieldError returns the open form's error for a field
func (m *Model) fieldError(field string) string {
	if m.mode == ModeTaskForm {
		return m.taskForm.FieldError(field)
	}
	return m.categoryForm.FieldError(field)
}

func parseDueField(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dueLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("due date must look like %s", dueLayout)
	}
	return &t, nil
}
