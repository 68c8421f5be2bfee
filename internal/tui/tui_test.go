package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/persist"
	"github.com/existflow/taskmaster/internal/view"
)

func newTestModel(t *testing.T, state model.State, opts Options) (Model, *app.Session) {
	t.Helper()
	s, err := app.Open(context.Background(), persist.NewMemory(state), app.Options{User: model.User{Name: "ada"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return NewModel(s, opts), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestNewModel_Sidebar(t *testing.T) {
	m, _ := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
	}, Options{})

	require.Len(t, m.sidebar, len(view.Smarts)+1)
	assert.Equal(t, view.All, m.sidebar[0].smart)
	assert.Nil(t, m.sidebar[0].category)
	assert.Equal(t, "Work", m.sidebar[len(view.Smarts)].category.Name)
	assert.Equal(t, "All Tasks", m.title())
}

func TestNewModel_ActiveCategory(t *testing.T) {
	m, s := newTestModel(t, model.State{
		Categories: []model.Category{
			{ID: "c1", Name: "Work", Color: "#4A6FA5"},
			{ID: "c2", Name: "Home", Color: "#47B881"},
		},
		Tasks: []model.Task{
			{ID: "t1", Title: "report", Priority: model.PriorityHigh, CategoryID: "c1"},
			{ID: "t2", Title: "dishes", Priority: model.PriorityLow, CategoryID: "c2"},
		},
	}, Options{ActiveCategory: "c2"})

	assert.Equal(t, "Home", m.title())
	require.NotNil(t, s.ActiveCategory())
	assert.Equal(t, "c2", *s.ActiveCategory())
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "dishes", m.tasks[0].Title)
}

func TestModel_CategoryAndTaskFlow(t *testing.T) {
	m, s := newTestModel(t, model.State{}, Options{})

	// no categories yet
	m = press(m, "a")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Contains(t, m.message, "category")

	m = press(m, "c")
	require.Equal(t, ModeCategoryForm, m.mode)
	m = press(m, "H", "o", "m", "e", "enter")
	require.Equal(t, ModeNormal, m.mode)
	require.Len(t, s.ListCategories(), 1)
	assert.Equal(t, "Home", s.ListCategories()[0].Name)
	assert.Equal(t, model.DefaultColor, s.ListCategories()[0].Color)

	// empty title is rejected and the form stays open
	m = press(m, "a", "enter")
	require.Equal(t, ModeTaskForm, m.mode)
	assert.Equal(t, "Title is required", m.fieldError("title"))
	assert.Empty(t, s.ListTasks())

	m = press(m, "B", "u", "y", "enter")
	require.Equal(t, ModeNormal, m.mode)
	require.Len(t, s.ListTasks(), 1)
	task := s.ListTasks()[0]
	assert.Equal(t, "Buy", task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, s.ListCategories()[0].ID, task.CategoryID)
	assert.Equal(t, "Added: Buy", m.message)

	// toggle from the task pane
	m = press(m, "l", "x")
	got, err := s.GetTask(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, m.stats.Completed)
	assert.Equal(t, 100, m.stats.CompletionRate)

	// priority shortcut
	m = press(m, "1")
	got, _ = s.GetTask(task.ID)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestModel_EditTask(t *testing.T) {
	m, s := newTestModel(t, model.State{
		Categories: []model.Category{
			{ID: "c1", Name: "Work", Color: "#4A6FA5"},
			{ID: "c2", Name: "Home", Color: "#47B881"},
		},
		Tasks: []model.Task{{ID: "t1", Title: "report", Priority: model.PriorityLow, CategoryID: "c1"}},
	}, Options{})

	m = press(m, "l", "e")
	require.Equal(t, ModeTaskForm, m.mode)
	assert.Equal(t, "report", m.fields[fieldTitle].Value())

	// move to priority, step up, move to category, step to the next one
	m = press(m, "tab", "tab", "l", "tab", "l", "enter")
	require.Equal(t, ModeNormal, m.mode)

	got, err := s.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, "report", got.Title)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, "c2", got.CategoryID)
}

func TestModel_InvalidDueKeepsForm(t *testing.T) {
	m, s := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
	}, Options{})

	m = press(m, "a", "x", "tab", "tab", "tab", "tab", "s", "o", "o", "n", "enter")
	assert.Equal(t, ModeTaskForm, m.mode)
	assert.Contains(t, m.formError, "due date")
	assert.Empty(t, s.ListTasks())

	m = press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, s.ListTasks())
}

func TestModel_DeleteWithConfirm(t *testing.T) {
	m, s := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		Tasks:      []model.Task{{ID: "t1", Title: "report", Priority: model.PriorityLow, CategoryID: "c1"}},
	}, Options{ConfirmDelete: true})

	m = press(m, "l", "d")
	require.Equal(t, ModeConfirmDelete, m.mode)
	m = press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, s.ListTasks(), 1)

	m = press(m, "d", "y")
	assert.Empty(t, s.ListTasks())
	assert.Empty(t, m.tasks)
}

func TestModel_DeleteCategoryKeepsTasks(t *testing.T) {
	m, s := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		Tasks:      []model.Task{{ID: "t1", Title: "report", Priority: model.PriorityLow, CategoryID: "c1"}},
	}, Options{ActiveCategory: "c1"})

	m = press(m, "d")
	assert.Empty(t, s.ListCategories())
	assert.Len(t, s.ListTasks(), 1)

	name, color := s.CategoryLabel("c1")
	assert.Equal(t, model.UncategorizedName, name)
	assert.Equal(t, model.DefaultColor, color)
	assert.Len(t, m.sidebar, len(view.Smarts))
}

func TestModel_Search(t *testing.T) {
	m, _ := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		Tasks: []model.Task{
			{ID: "t1", Title: "Write report", Priority: model.PriorityLow, CategoryID: "c1"},
			{ID: "t2", Title: "Call bank", Priority: model.PriorityLow, CategoryID: "c1"},
		},
	}, Options{})

	m = press(m, "/", "B", "A", "N")
	require.Len(t, m.tasks, 1)
	assert.Equal(t, "Call bank", m.tasks[0].Title)

	m = press(m, "esc")
	assert.Len(t, m.tasks, 2)
}

func TestSortTasks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := Model{recentlyDone: map[string]time.Time{"fresh": now.Add(-time.Second)}}
	m.tasks = []model.Task{
		{ID: "done", Completed: true, Priority: model.PriorityHigh},
		{ID: "low", Priority: model.PriorityLow},
		{ID: "fresh", Completed: true, Priority: model.PriorityMedium},
		{ID: "high-old", Priority: model.PriorityHigh, CreatedAt: now.Add(-time.Hour)},
		{ID: "high-new", Priority: model.PriorityHigh, CreatedAt: now},
	}
	m.sortTasks(now)

	var ids []string
	for _, t := range m.tasks {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"high-new", "high-old", "fresh", "low", "done"}, ids)
}

func TestView_Renders(t *testing.T) {
	m, _ := newTestModel(t, model.State{
		Categories: []model.Category{{ID: "c1", Name: "Work", Color: "#4A6FA5"}},
		Tasks:      []model.Task{{ID: "t1", Title: "Write report", Priority: model.PriorityHigh, CategoryID: "c1"}},
	}, Options{})

	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	out := m.View()
	assert.Contains(t, out, "Taskmaster")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Work")

	m = press(m, "l", "e")
	assert.Contains(t, m.View(), "Edit Task")
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	day := func(y int, mo time.Month, d int) *time.Time {
		v := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
		return &v
	}
	assert.Equal(t, "", formatDue(nil, now))
	assert.Equal(t, "today", formatDue(day(2026, 3, 1), now))
	assert.Equal(t, "tomorrow", formatDue(day(2026, 3, 2), now))
	assert.Equal(t, "Mar 9", formatDue(day(2026, 3, 9), now))
	assert.Equal(t, "Jan 5 2027", formatDue(day(2027, 1, 5), now))
}
