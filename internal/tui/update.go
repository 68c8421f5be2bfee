package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskmaster/internal/logger"
	"github.com/existflow/taskmaster/internal/model"
)

// tickMsg is sent every second for time updates
type tickMsg time.Time

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Check for delayed sorting
		needsRefresh := false
		for id, doneTime := range m.recentlyDone {
			if time.Since(doneTime) >= doneSettleDelay {
				delete(m.recentlyDone, id)
				needsRefresh = true
			}
		}
		if needsRefresh {
			m.loadData()
		}
		m.saveErr = m.session.LastSaveError()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeTaskForm, ModeCategoryForm:
			return m.updateForm(msg)
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		logger.Debug("Quit requested")
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTaskList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case msg.String() == "g":
		m.handleGoTop()

	case msg.String() == "G":
		m.handleGoBottom()

	case msg.String() == "1", msg.String() == "2", msg.String() == "3":
		m.handlePriority(msg.String())

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Category):
		return m.startAddCategory()

	case key.Matches(msg, keys.Edit):
		if m.pane == PaneSidebar {
			return m.startEditCategory()
		}
		return m.startEditTask()

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.handleToggleDone()
		}

	case key.Matches(msg, keys.Done):
		m.handleToggleDone()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Search):
		return m.startFilter()

	case key.Matches(msg, keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.session.SetSearch("")
			m.loadData()
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.sideCursor > 0 {
			m.sideCursor--
			m.selectSidebar()
		}
	} else if m.taskCursor > 0 {
		m.taskCursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.sideCursor < len(m.sidebar)-1 {
			m.sideCursor++
			m.selectSidebar()
		}
	} else if m.taskCursor < len(m.tasks)-1 {
		m.taskCursor++
	}
}

func (m *Model) handleGoTop() {
	if m.pane == PaneSidebar {
		m.sideCursor = 0
		m.selectSidebar()
	} else {
		m.taskCursor = 0
	}
}

func (m *Model) handleGoBottom() {
	if m.pane == PaneSidebar {
		m.sideCursor = len(m.sidebar) - 1
		m.selectSidebar()
	} else {
		m.taskCursor = max(len(m.tasks)-1, 0)
	}
}

// handlePriority maps 1, 2, 3 to high, medium, low
func (m *Model) handlePriority(k string) {
	task := m.currentTask()
	if m.pane != PaneTaskList || task == nil {
		return
	}
	p := map[string]model.Priority{"1": model.PriorityHigh, "2": model.PriorityMedium, "3": model.PriorityLow}[k]
	if _, err := m.session.UpdateTask(task.ID, model.TaskPatch{Priority: &p}); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Priority set to %s", p)
}

func (m *Model) handleToggleDone() {
	task := m.currentTask()
	if m.pane != PaneTaskList || task == nil {
		return
	}
	updated, err := m.session.ToggleTaskComplete(task.ID)
	if err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	if updated.Completed {
		m.recentlyDone[updated.ID] = time.Now()
	} else {
		delete(m.recentlyDone, updated.ID)
	}
	m.loadData()
}

// handleDelete deletes the highlighted task, or the highlighted category
// when the sidebar is focused
func (m *Model) handleDelete() {
	var target pendingDelete
	if m.pane == PaneSidebar {
		c := m.currentCategory()
		if c == nil {
			return
		}
		target = pendingDelete{categoryID: c.ID, label: "category " + c.Name}
	} else {
		task := m.currentTask()
		if task == nil {
			return
		}
		target = pendingDelete{taskID: task.ID, label: task.Title}
	}

	if m.opts.ConfirmDelete {
		m.confirm = target
		m.mode = ModeConfirmDelete
		return
	}
	m.deleteTarget(target)
}

func (m *Model) deleteTarget(target pendingDelete) {
	var err error
	if target.categoryID != "" {
		err = m.session.DeleteCategory(target.categoryID)
	} else {
		err = m.session.DeleteTask(target.taskID)
	}
	if err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = "Deleted: " + target.label
	if target.categoryID != "" {
		m.sideCursor = 0
		m.loadData()
		m.selectSidebar()
		return
	}
	m.loadData()
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		m.deleteTarget(m.confirm)
	default:
		m.mode = ModeNormal
		m.message = "Cancelled"
	}
	m.confirm = pendingDelete{}
	return m, nil
}

func (m Model) startFilter() (tea.Model, tea.Cmd) {
	m.mode = ModeFilter
	m.search.Focus()
	return m, textinput.Blink
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetSearch("")
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.pane = PaneTaskList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filter as user types
	m.session.SetSearch(m.search.Value())
	m.taskCursor = 0
	m.loadData()
	return m, cmd
}
