package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskmaster/internal/form"
	"github.com/existflow/taskmaster/internal/model"
)

const sidebarWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskList)

	var modal string
	switch m.mode {
	case ModeTaskForm:
		modal = m.renderTaskForm()
	case ModeCategoryForm:
		modal = m.renderCategoryForm()
	case ModeConfirmDelete:
		modal = m.renderConfirm()
	case ModeHelp:
		mainContent = m.renderHelp()
	}
	if modal != "" {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	var s strings.Builder

	// Header with user and time
	user := m.session.User()
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Taskmaster") + "\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("%s %s", user.Initial(), time.Now().Format("15:04"))) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(repeat("─", sidebarWidth-4)) + "\n\n")

	tasks := m.session.ListTasks()
	for i, item := range m.sidebar {
		if item.category != nil && (i == 0 || m.sidebar[i-1].category == nil) {
			s.WriteString("\n" + HelpStyle.Render("CATEGORIES") + "\n")
		}

		cursor := "  "
		style := SidebarItemStyle
		if i == m.sideCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = SidebarItemSelectedStyle
			}
		}

		var line string
		if item.category != nil {
			pending := 0
			for _, t := range tasks {
				if t.CategoryID == item.category.ID && !t.Completed {
					pending++
				}
			}
			line = fmt.Sprintf("%s%s %-14s %d", cursor, Swatch(item.category.Color), truncate(item.category.Name, 14), pending)
		} else {
			line = fmt.Sprintf("%s%s", cursor, item.smart.Title())
		}
		s.WriteString(style.Render(line) + "\n")
	}

	st := m.stats
	s.WriteString("\n" + lipgloss.NewStyle().Foreground(Border).Render(repeat("─", sidebarWidth-4)) + "\n")
	s.WriteString(fmt.Sprintf("%d/%d done  %d%%\n", st.Completed, st.Total, st.CompletionRate))
	s.WriteString(fmt.Sprintf("%d pending  %d high\n", st.Pending, st.HighPriorityPending))
	s.WriteString(HelpStyle.Render("c new  e edit  d delete"))

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s.String())
}

func (m Model) renderTaskList() string {
	width := m.width - sidebarWidth - 2
	var s strings.Builder
	now := time.Now()

	pending := 0
	for _, t := range m.tasks {
		if !t.Completed {
			pending++
		}
	}
	header := fmt.Sprintf("%s (%d pending)", m.title(), pending)
	if q := m.search.Value(); q != "" {
		header += HelpStyle.Render(fmt.Sprintf("  /%s", q))
	}
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n")
	s.WriteString(lipgloss.NewStyle().Foreground(Border).Render(repeat("─", width-4)) + "\n\n")

	if len(m.tasks) == 0 {
		if len(m.categories) == 0 {
			s.WriteString(HelpStyle.Render("  No categories yet. Press 'c' to create one."))
		} else {
			s.WriteString(HelpStyle.Render("  No tasks. Press 'a' to add one."))
		}
	}

	titleWidth := max(width-40, 10)
	for i, t := range m.tasks {
		cursor := "  "
		style := TaskItemStyle
		if i == m.taskCursor && m.pane == PaneTaskList {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
			style = TaskDoneStyle
		}

		name, color := m.session.CategoryLabel(t.CategoryID)
		category := Swatch(color) + " " + HelpStyle.Render(truncate(name, 12))

		due := formatDue(t.DueDate, now)
		if t.IsOverdue(now) {
			due = OverdueStyle.Render(due)
		}

		check := style.Render(cursor + icon)
		title := style.Render(fmt.Sprintf(" %-*s ", titleWidth, truncate(t.Title, titleWidth)))
		s.WriteString(fmt.Sprintf("%s%s %s  %-14s %s\n", check, title, FormatPriority(t.Priority), category, due))

		if i == m.taskCursor && m.pane == PaneTaskList && t.Description != "" {
			s.WriteString(HelpStyle.Render("        "+truncate(t.Description, titleWidth)) + "\n")
		}
	}

	return TaskListStyle.Width(width).Height(m.height - 2).Render(s.String())
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeFilter {
		return StatusBarStyle.Width(m.width).Render("/" + m.search.View() + fmt.Sprintf(" [%d]", len(m.tasks)))
	}

	help := "a:add  e:edit  x:done  d:del  c:category  1-3:priority  /:search  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}

	saveMsg := ""
	switch {
	case m.saveErr != nil:
		saveMsg = ErrorStyle.Render("Save failed!")
	case m.session.SavePending():
		saveMsg = "Saving..."
	}
	if saveMsg != "" {
		avail := m.width - lipgloss.Width(help) - lipgloss.Width(saveMsg) - 2
		if avail > 0 {
			help += strings.Repeat(" ", avail) + saveMsg
		} else {
			help += " " + saveMsg
		}
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderField(i int, label, value, field string) string {
	ls := LabelStyle
	if m.focus == i {
		ls = LabelFocusedStyle
	}
	line := ls.Render(label) + value + "\n"
	if msg := m.fieldError(field); msg != "" {
		line += ls.Render("") + ErrorStyle.Render(msg) + "\n"
	}
	return line
}

func (m Model) renderTaskForm() string {
	title := "Add Task"
	if _, ok := m.taskForm.Mode().(form.Edit); ok {
		title = "Edit Task"
	}
	v := m.taskForm.Values()

	var priority strings.Builder
	for _, p := range model.Priorities {
		if p == v.Priority {
			priority.WriteString(GetPriorityStyle(p).Render("["+string(p)+"]") + " ")
		} else {
			priority.WriteString(HelpStyle.Render(" "+string(p)+" ") + " ")
		}
	}

	name, color := m.session.CategoryLabel(v.CategoryID)
	category := "‹ " + Swatch(color) + " " + name + " ›"

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.renderField(fieldTitle, "Title", m.fields[fieldTitle].View(), "title")
	content += m.renderField(fieldDescription, "Description", m.fields[fieldDescription].View(), "description")
	content += m.renderField(fieldPriority, "Priority", priority.String(), "priority")
	content += m.renderField(fieldCategory, "Category", category, "categoryId")
	content += m.renderField(fieldDue, "Due", m.fields[fieldDue].View(), "dueDate")
	if m.formError != "" {
		content += "\n" + ErrorStyle.Render(m.formError) + "\n"
	}
	content += "\n" + HelpStyle.Render("Tab:next  ←/→:choose  Enter:save  Esc:cancel")

	return ModalStyle.Width(64).Render(content)
}

func (m Model) renderCategoryForm() string {
	title := "New Category"
	if _, ok := m.categoryForm.Mode().(form.Edit); ok {
		title = "Edit Category"
	}

	color := m.fields[fieldColor].View() + " " + Swatch(m.fields[fieldColor].Value())

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.renderField(fieldName, "Name", m.fields[fieldName].View(), "name")
	content += m.renderField(fieldColor, "Color", color, "color")
	if m.formError != "" {
		content += "\n" + ErrorStyle.Render(m.formError) + "\n"
	}
	content += "\n" + HelpStyle.Render("Tab:next  ctrl+n:next color  Enter:save  Esc:cancel")

	return ModalStyle.Width(64).Render(content)
}

func (m Model) renderConfirm() string {
	content := lipgloss.NewStyle().Bold(true).Render("Delete?") + "\n\n"
	content += truncate(m.confirm.label, 50) + "\n"
	if m.confirm.categoryID != "" {
		content += HelpStyle.Render("Its tasks are kept as Uncategorized.") + "\n"
	}
	content += "\n" + HelpStyle.Render("y:delete  any other key:cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│  g/G    Top / bottom     │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add task        │
│  e       Edit            │
│  x/Enter Toggle done     │
│  d       Delete          │
│  c       New category    │
│  1-3     Set priority    │
│  /       Search          │
│                          │
│  Other                   │
│  ─────                   │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
