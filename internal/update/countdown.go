package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/scheduler"
	"github.com/sandeepkv93/buzzer/internal/storage"
)

func (m Model) handleCountdownKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.CountdownEdit.Active {
		switch msg.String() {
		case "e", "enter":
			m = m.openCountdownEditor()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m = m.closeCountdownEditor()
		m.setStatus("exam edit cancelled")
		return m, nil
	case "tab", "shift+tab":
		if m.CountdownEdit.Field == FieldDate {
			m.CountdownEdit.Field = FieldTime
			m.dateInput.Blur()
			m.timeInput.Focus()
		} else {
			m.CountdownEdit.Field = FieldDate
			m.timeInput.Blur()
			m.dateInput.Focus()
		}
		return m, nil
	case "enter":
		next, cmd, err := m.applyExamTarget(m.dateInput.Value(), m.timeInput.Value())
		if err != nil {
			m.CountdownEdit.Err = err.Error()
			m.setError(err)
			return m, nil
		}
		return next.closeCountdownEditor(), cmd
	}

	if m.CountdownEdit.Field == FieldDate {
		m.dateInput = updateInput(m.dateInput, msg)
	} else {
		m.timeInput = updateInput(m.timeInput, msg)
	}
	return m, nil
}

func (m Model) openCountdownEditor() Model {
	m.CountdownEdit = CountdownEditorState{Active: true, Field: FieldDate}
	m.dateInput.SetValue(m.Countdown.Target.Format(model.DateLayout))
	m.timeInput.SetValue(m.Countdown.Target.Format(model.ClockLayout))
	m.dateInput.CursorEnd()
	m.timeInput.CursorEnd()
	m.dateInput.Focus()
	m.timeInput.Blur()
	return m
}

func (m Model) closeCountdownEditor() Model {
	m.CountdownEdit = CountdownEditorState{}
	m.dateInput.Blur()
	m.timeInput.Blur()
	return m
}

// applyExamTarget sets both target components, confirms, persists and
// re-arms the countdown tick and the exam deadline.
func (m Model) applyExamTarget(rawDate, rawClock string) (Model, tea.Cmd, error) {
	loc := m.now().Location()
	date, err := model.ParseDate(rawDate, loc)
	if err != nil {
		return m, nil, err
	}
	clock, err := model.ParseClock(rawClock, loc)
	if err != nil {
		return m, nil, err
	}

	cd := model.Countdown{Target: m.Countdown.Target.In(loc)}.SetDate(date).SetTime(clock).Confirm()
	if m.repo != nil {
		if err := storage.SaveExamDateTime(context.Background(), m.repo, cd.Target); err != nil {
			logger.Error("save exam date failed", logger.F("error", err))
			return m, nil, fmt.Errorf("save exam date: %w", err)
		}
	}
	m.Countdown = cd
	m.TimeUp = false
	m.countdownGen++
	m.scheduleExamDeadline()

	now := m.now()
	m.setStatus(fmt.Sprintf("exam set for %s: %s", cd.Target.Format("2006-01-02 15:04:05"), cd.Display(now)))
	logger.Info("exam target confirmed", logger.F("target", storage.FormatExamDateTime(cd.Target)))
	if cd.Remaining(now) == 0 {
		return m, nil, nil
	}
	return m, countdownTickCmd(m.countdownGen), nil
}

func (m *Model) scheduleExamDeadline() {
	if m.Scheduler == nil {
		return
	}
	err := m.Scheduler.Reschedule(scheduler.Deadline{Key: examDeadlineKey, Label: model.TimeUpText, At: m.Countdown.Target})
	if err != nil {
		logger.Warn("schedule exam deadline failed", logger.F("error", err))
	}
}

func (m Model) onCountdownTick(msg CountdownTickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.countdownGen || !m.Countdown.Armed {
		return m, nil
	}
	if m.Countdown.Remaining(m.now()) == 0 {
		return m, nil
	}
	return m, countdownTickCmd(msg.Gen)
}

func (m Model) onDeadline(d scheduler.Deadline) Model {
	if d.Key != examDeadlineKey || !m.Countdown.Armed || !d.At.Equal(m.Countdown.Target) {
		return m
	}
	m.TimeUp = true
	m.setStatus(d.Label)
	m.notify(AppTitle, d.Label, "info")
	logger.Info("exam deadline reached", logger.F("target", storage.FormatExamDateTime(d.At)))
	return m
}

func countdownTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return CountdownTickMsg{Gen: gen} })
}

func waitForDeadlineCmd(ch <-chan scheduler.Deadline) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return DeadlineMsg{Deadline: d}
	}
}
