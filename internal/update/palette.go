package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/buzzer/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.setStatus("command palette active")
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.setStatus("command palette closed")
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	m.commandInput = updateInput(m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m = m.addTask(strings.TrimSpace(a.Name))
			m.CurrentView = ViewTasks
			return commands.Result{Message: m.Status.Text}, nil
		},
		Rename: func(a commands.RenameArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			m = m.commit(m.Tasks.Rename(a.ID, a.Text))
			return commands.Result{Message: fmt.Sprintf("renamed task #%d", a.ID)}, nil
		},
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			updated, err := m.setGoal(a.ID, a.Goal)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m = updated
			return commands.Result{Message: m.Status.Text}, nil
		},
		Start: func(a commands.TaskArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			t, _ := m.Tasks.Find(a.ID)
			if t.IsRunning {
				return commands.Result{Message: fmt.Sprintf("%s is already running", t.Text)}, nil
			}
			m, next = m.toggleRunning(a.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reset: func(a commands.TaskArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			m = m.resetTask(a.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Done: func(a commands.TaskArgs) (commands.Result, error) {
			if _, ok := m.Tasks.Find(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d, nothing changed", a.ID)}, nil
			}
			m = m.commit(m.Tasks.ToggleChecked(a.ID))
			t, _ := m.Tasks.Find(a.ID)
			if t.Checked {
				return commands.Result{Message: fmt.Sprintf("marked %s done", t.Text)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("marked %s not done", t.Text)}, nil
		},
		Delete: func(a commands.TaskArgs) (commands.Result, error) {
			if _, ok := m.Tasks.Find(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d, nothing deleted", a.ID)}, nil
			}
			m = m.deleteTasks(a.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Exam: func(a commands.ExamArgs) (commands.Result, error) {
			updated, tick, err := m.applyExamTarget(a.Date, a.Time)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m, next = updated, tick
			m.CurrentView = ViewCountdown
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus(res.Message)
	return m, next
}

func (m Model) requireTask(id int) error {
	if _, ok := m.Tasks.Find(id); !ok {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d", id)}
	}
	return nil
}
