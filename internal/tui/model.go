package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/form"
	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
	"github.com/existflow/taskmaster/internal/view"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeTaskForm
	ModeCategoryForm
	ModeConfirmDelete
	ModeFilter
	ModeHelp
)

// Options tune the TUI
type Options struct {
	ConfirmDelete  bool
	ActiveCategory string // category selected at start, empty for All Tasks
}

// sidebarItem is a smart view or a category
type sidebarItem struct {
	smart    view.Smart
	category *model.Category
}

// pendingDelete is what ModeConfirmDelete asks about
type pendingDelete struct {
	taskID     string
	categoryID string
	label      string
}

// Model is the main TUI model
type Model struct {
	session *app.Session
	opts    Options

	categories []model.Category
	sidebar    []sidebarItem
	tasks      []model.Task
	stats      view.Stats

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	sideCursor int
	taskCursor int

	// Forms
	taskForm     *form.TaskForm
	categoryForm *form.CategoryForm
	fields       []textinput.Model
	focus        int
	formError    string

	// Search
	search textinput.Model

	confirm pendingDelete

	// Sorting state
	recentlyDone map[string]time.Time

	message string
	saveErr error
}

// NewModel creates a new TUI model over session
func NewModel(session *app.Session, opts Options) Model {
	logger.Info("Initializing TUI model")

	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.CharLimit = 128
	si.Width = 40

	m := Model{
		session:      session,
		opts:         opts,
		pane:         PaneSidebar,
		mode:         ModeNormal,
		taskForm:     form.NewTaskForm(session),
		categoryForm: form.NewCategoryForm(session),
		search:       si,
		recentlyDone: make(map[string]time.Time),
	}

	m.loadData()
	if opts.ActiveCategory != "" {
		for i, item := range m.sidebar {
			if item.category != nil && item.category.ID == opts.ActiveCategory {
				m.sideCursor = i
				break
			}
		}
	}
	m.selectSidebar()

	logger.Debug("TUI model initialized",
		logger.F("categories", len(m.categories)),
		logger.F("tasks", len(m.tasks)))
	return m
}

// loadData re-reads categories, visible tasks and stats from the session
func (m *Model) loadData() {
	m.categories = m.session.ListCategories()

	m.sidebar = m.sidebar[:0]
	for _, v := range view.Smarts {
		m.sidebar = append(m.sidebar, sidebarItem{smart: v})
	}
	for i := range m.categories {
		m.sidebar = append(m.sidebar, sidebarItem{smart: view.All, category: &m.categories[i]})
	}
	if m.sideCursor >= len(m.sidebar) {
		m.sideCursor = len(m.sidebar) - 1
	}

	m.tasks = m.session.VisibleTasks()
	m.sortTasks(time.Now())
	if m.taskCursor >= len(m.tasks) {
		m.taskCursor = max(len(m.tasks)-1, 0)
	}
	m.stats = m.session.Stats()
}

// sortTasks puts pending tasks first, then higher priority, then newest.
// A task completed in the last few seconds keeps its place.
func (m *Model) sortTasks(now time.Time) {
	done := func(t model.Task) bool {
		if !t.Completed {
			return false
		}
		if at, ok := m.recentlyDone[t.ID]; ok && now.Sub(at) < doneSettleDelay {
			return false
		}
		return true
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		t1, t2 := m.tasks[i], m.tasks[j]
		if d1, d2 := done(t1), done(t2); d1 != d2 {
			return !d1
		}
		if r1, r2 := priorityRank(t1.Priority), priorityRank(t2.Priority); r1 != r2 {
			return r1 < r2
		}
		return t1.CreatedAt.After(t2.CreatedAt)
	})
}

const doneSettleDelay = 10 * time.Second

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	}
	return 2
}

// selectSidebar applies the highlighted sidebar entry to the session
func (m *Model) selectSidebar() {
	if m.sideCursor < 0 || m.sideCursor >= len(m.sidebar) {
		return
	}
	item := m.sidebar[m.sideCursor]
	if item.category != nil {
		id := item.category.ID
		m.session.SetActiveCategory(&id)
	} else {
		m.session.SetActiveCategory(nil)
	}
	m.session.SetView(item.smart)
	m.taskCursor = 0
	m.loadData()
}

func (m *Model) currentItem() *sidebarItem {
	if m.sideCursor >= 0 && m.sideCursor < len(m.sidebar) {
		return &m.sidebar[m.sideCursor]
	}
	return nil
}

func (m *Model) currentCategory() *model.Category {
	if item := m.currentItem(); item != nil {
		return item.category
	}
	return nil
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.tasks) {
		return &m.tasks[m.taskCursor]
	}
	return nil
}

// title is the heading of the task pane
func (m *Model) title() string {
	if c := m.currentCategory(); c != nil {
		return c.Name
	}
	if item := m.currentItem(); item != nil {
		return item.smart.Title()
	}
	return view.All.Title()
}
