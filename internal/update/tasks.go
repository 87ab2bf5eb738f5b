package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/storage"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Editing != EditNone {
		return m.handleEditorKey(msg), nil
	}

	switch msg.String() {
	case "a":
		m = m.addTask("")
		return m, nil
	case "j", "down":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case " ":
		if t, ok := m.selectedTask(); ok {
			return m.toggleRunning(t.ID)
		}
	case "r":
		if t, ok := m.selectedTask(); ok {
			m = m.resetTask(t.ID)
		}
	case "x":
		if t, ok := m.selectedTask(); ok {
			m = m.commit(m.Tasks.ToggleChecked(t.ID))
		}
	case "e":
		if t, ok := m.selectedTask(); ok {
			m = m.openEditor(EditRename, t.Text)
		}
	case "g":
		if t, ok := m.selectedTask(); ok {
			m = m.openEditor(EditGoal, t.GoalTime)
		}
	case "d":
		if t, ok := m.selectedTask(); ok {
			m = m.deleteTasks(t.ID)
		}
	case "v":
		if t, ok := m.selectedTask(); ok {
			if m.Marked[t.ID] {
				delete(m.Marked, t.ID)
			} else {
				m.Marked[t.ID] = true
			}
		}
	case "X":
		ids := make([]int, 0, len(m.Marked))
		for _, t := range m.Tasks {
			if m.Marked[t.ID] {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) == 0 {
			m.setStatus("no marked tasks")
			return m, nil
		}
		m = m.deleteTasks(ids...)
	}
	return m, nil
}

func (m Model) openEditor(mode EditMode, value string) Model {
	m.Editing = mode
	m.editInput.Prompt = string(mode) + "> "
	m.editInput.Placeholder = ""
	if mode == EditGoal {
		m.editInput.Placeholder = "HH:MM:SS"
	}
	m.editInput.SetValue(value)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	return m
}

func (m Model) closeEditor() Model {
	m.Editing = EditNone
	m.editInput.SetValue("")
	m.editInput.Blur()
	return m
}

func (m Model) handleEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closeEditor()
		m.setStatus("edit cancelled")
		return m
	case "enter":
		t, ok := m.selectedTask()
		if !ok {
			return m.closeEditor()
		}
		value := m.editInput.Value()
		switch m.Editing {
		case EditRename:
			m = m.commit(m.Tasks.Rename(t.ID, value))
			m.setStatus(fmt.Sprintf("renamed task #%d", t.ID))
		case EditGoal:
			next, err := m.setGoal(t.ID, value)
			if err != nil {
				m.setError(err)
				return m
			}
			m = next
		}
		return m.closeEditor()
	}
	m.editInput = updateInput(m.editInput, msg)
	return m
}

// commit is the only path that replaces the task snapshot; the same
// snapshot is written through to the store.
func (m Model) commit(next model.Tasks) Model {
	m.Tasks = next
	m.clampCursor()
	if m.repo == nil {
		return m
	}
	if err := storage.SaveTasks(context.Background(), m.repo, next); err != nil {
		logger.Error("save tasks failed", logger.F("error", err))
		m.setError(fmt.Errorf("save tasks: %w", err))
	}
	return m
}

func (m Model) addTask(name string) Model {
	next := m.Tasks.Add()
	added := next[len(next)-1]
	if name != "" {
		next = next.Rename(added.ID, name)
		added.Text = name
	}
	m = m.commit(next)
	m.Cursor = len(m.Tasks) - 1
	m.setStatus(fmt.Sprintf("added %s (#%d)", added.Text, added.ID))
	logger.Debug("task added", logger.F("id", added.ID))
	return m
}

func (m Model) setGoal(id int, goal string) (Model, error) {
	next, err := m.Tasks.SetGoalTime(id, goal)
	if err != nil {
		return m, err
	}
	m = m.commit(next)
	t, _ := m.Tasks.Find(id)
	// A new goal may be reached again.
	m.goalNotified[id] = t.GoalReached()
	if goal == "" {
		m.setStatus(fmt.Sprintf("cleared goal for task #%d", id))
	} else {
		m.setStatus(fmt.Sprintf("goal for task #%d set to %s", id, goal))
	}
	return m, nil
}

// toggleRunning starts or pauses a task. Starting arms a fresh tick chain;
// pausing bumps the generation so the pending tick is dropped.
func (m Model) toggleRunning(id int) (Model, tea.Cmd) {
	before, ok := m.Tasks.Find(id)
	if !ok {
		return m, nil
	}
	if before.IsRunning {
		m = m.recordSession(before)
		m.tickGen[id]++
		m = m.commit(m.Tasks.StartOrStop(id))
		m.setStatus(fmt.Sprintf("paused %s at %s", before.Text, model.FormatTime(before.Time)))
		return m, nil
	}

	m.tickGen[id]++
	m.runningSince[id] = m.now()
	m = m.commit(m.Tasks.StartOrStop(id))
	m.setStatus(fmt.Sprintf("started %s", before.Text))
	return m, taskTickCmd(id, m.tickGen[id])
}

func (m Model) resetTask(id int) Model {
	before, ok := m.Tasks.Find(id)
	if !ok {
		return m
	}
	if before.IsRunning {
		m = m.recordSession(before)
		m.tickGen[id]++
	}
	delete(m.goalNotified, id)
	m = m.commit(m.Tasks.Reset(id))
	m.setStatus(fmt.Sprintf("reset %s", before.Text))
	return m
}

func (m Model) deleteTasks(ids ...int) Model {
	next := m.Tasks
	for _, id := range ids {
		t, ok := next.Find(id)
		if !ok {
			continue
		}
		if t.IsRunning {
			m = m.recordSession(t)
		}
		next = next.Delete(id)
		// ids can be reused, so the generation outlives the task.
		m.tickGen[id]++
		delete(m.Marked, id)
		delete(m.goalNotified, id)
	}
	m = m.commit(next)
	if len(ids) == 1 {
		m.setStatus(fmt.Sprintf("deleted task #%d", ids[0]))
	} else {
		m.setStatus(fmt.Sprintf("deleted %d tasks", len(ids)))
	}
	return m
}

func (m Model) onTaskTick(msg TaskTickMsg) (Model, tea.Cmd) {
	if m.tickGen[msg.ID] != msg.Gen {
		return m, nil
	}
	t, ok := m.Tasks.Find(msg.ID)
	if !ok || !t.IsRunning {
		return m, nil
	}
	m = m.commit(m.Tasks.Tick(msg.ID))
	m = m.checkGoalReached(msg.ID)
	return m, taskTickCmd(msg.ID, msg.Gen)
}

func (m Model) checkGoalReached(id int) Model {
	t, ok := m.Tasks.Find(id)
	if !ok || !t.GoalReached() || m.goalNotified[id] {
		return m
	}
	m.goalNotified[id] = true
	text := fmt.Sprintf("goal reached: %s (%s)", t.Text, t.GoalTime)
	m.setStatus(text)
	m.notify(AppTitle, text, "info")
	logger.Info("goal reached", logger.F("id", id), logger.F("goal", t.GoalTime))
	return m
}

// recordSession appends the run that ends now to the session log.
func (m Model) recordSession(t model.Task) Model {
	started, ok := m.runningSince[t.ID]
	delete(m.runningSince, t.ID)
	if !ok || m.repo == nil {
		return m
	}
	ended := m.now()
	seconds := int(ended.Sub(started) / time.Second)
	if seconds <= 0 {
		return m
	}
	err := m.repo.CreateSession(context.Background(), storage.Session{
		TaskID:    t.ID,
		TaskText:  t.Text,
		StartedAt: started,
		EndedAt:   ended,
		Seconds:   seconds,
	})
	if err != nil {
		logger.Error("record session failed", logger.F("id", t.ID), logger.F("error", err))
		m.setError(fmt.Errorf("record session: %w", err))
	}
	return m
}

func taskTickCmd(id, gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TaskTickMsg{ID: id, Gen: gen} })
}
