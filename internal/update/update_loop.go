package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/views"
)

// Init resumes tick chains for tasks restored as running, the countdown
// tick when a target is armed, and the deadline listener.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.Tasks)+2)
	for _, id := range m.Tasks.Running() {
		cmds = append(cmds, taskTickCmd(id, m.tickGen[id]))
	}
	if m.Countdown.Armed && m.Countdown.Remaining(m.now()) > 0 {
		cmds = append(cmds, countdownTickCmd(m.countdownGen))
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForDeadlineCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.LastError = nil
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Editing != EditNone {
			return m.handleTaskKey(typed)
		}
		if m.CountdownEdit.Active {
			return m.handleCountdownKey(typed)
		}

		switch typed.String() {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Countdown:
			m.CurrentView = ViewCountdown
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewCountdown {
			return m.handleCountdownKey(typed)
		}
		return m.handleTaskKey(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TaskTickMsg:
		m.LastError = nil
		return m.onTaskTick(typed)
	case CountdownTickMsg:
		return m.onCountdownTick(typed)
	case DeadlineMsg:
		m = m.onDeadline(typed.Deadline)
		if m.Scheduler != nil {
			return m, waitForDeadlineCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := ""
	switch m.CurrentView {
	case ViewCountdown:
		left = m.renderCountdownView()
	default:
		left = m.renderTaskView()
	}
	right := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Title:        AppTitle,
		ViewName:     string(m.CurrentView),
		Totals:       TotalsLine(m.Tasks),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotification(),
		Footer:       fmt.Sprintf("keys: %s tasks | %s countdown | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Countdown, m.Keys.Help, m.Keys.Quit),
	})
}

// TotalsLine is the summary shown above both views.
func TotalsLine(tasks model.Tasks) string {
	return fmt.Sprintf("Total Time Spent: %s -- Total Goal Time: %s",
		model.FormatTime(tasks.TotalTimeSpent()), model.FormatTime(tasks.TotalGoalTime()))
}

func (m Model) renderTaskView() string {
	rows := make([]table.Row, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		name := t.Text
		if m.Marked[t.ID] {
			name = "* " + name
		}
		goal := t.GoalTime
		if goal == "" {
			goal = "-"
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", t.ID), name, model.FormatTime(t.Time), goal, taskState(t)})
	}
	tbl := m.taskTable
	tbl.SetRows(rows)
	tbl.SetCursor(m.Cursor)

	data := views.TaskPanelData{
		TableView:   tbl.View(),
		Empty:       len(m.Tasks) == 0,
		MarkedCount: len(m.Marked),
	}
	if t, ok := m.selectedTask(); ok {
		data.SelectedName = t.Text
		if t.GoalTime != "" {
			pct := goalPercent(t.Time, t.GoalSeconds())
			data.SelectedGoal = t.GoalTime
			data.ProgressView = m.goalProgress.ViewAs(pct)
			data.ProgressPct = int(pct * 100)
		}
	}
	if m.Editing != EditNone {
		data.EditorLabel = string(m.Editing)
		data.EditorView = m.editInput.View()
	}
	return views.RenderTaskPanel(data)
}

func (m Model) renderCountdownView() string {
	return views.RenderCountdownPanel(views.CountdownPanelData{
		Armed:     m.Countdown.Armed,
		Display:   m.Countdown.Display(m.now()),
		Target:    m.Countdown.Target.Format("2006-01-02 15:04:05"),
		Editing:   m.CountdownEdit.Active,
		Field:     string(m.CountdownEdit.Field),
		DateInput: m.dateInput.View(),
		TimeInput: m.timeInput.View(),
		ErrorText: m.CountdownEdit.Err,
	})
}

func (m Model) renderNotification() string {
	if m.TimeUp {
		return model.TimeUpText
	}
	if len(m.Notifications) == 0 {
		return ""
	}
	last := m.Notifications[len(m.Notifications)-1]
	return fmt.Sprintf("[%s] %s", strings.ToUpper(last.Level), last.Body)
}

func taskState(t model.Task) string {
	switch {
	case t.IsRunning:
		return "running"
	case t.Checked:
		return "done"
	default:
		return "paused"
	}
}
