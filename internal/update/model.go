package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/buzzer/internal/config"
	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/scheduler"
	"github.com/sandeepkv93/buzzer/internal/storage"
)

type View string

const (
	ViewTasks     View = "tasks"
	ViewCountdown View = "countdown"
)

// AppTitle heads every screen and desktop notification.
const AppTitle = "The Final Buzzer"

const examDeadlineKey = "exam"

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks     string
	Countdown string
	Help      string
	Quit      string
}

type EditMode string

const (
	EditNone   EditMode = ""
	EditRename EditMode = "rename"
	EditGoal   EditMode = "goal"
)

type CountdownField string

const (
	FieldDate CountdownField = "date"
	FieldTime CountdownField = "time"
)

type CountdownEditorState struct {
	Active bool
	Field  CountdownField
	Err    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	Tasks          model.Tasks
	Cursor         int
	Marked         map[int]bool
	Editing        EditMode
	Countdown      model.Countdown
	CountdownEdit  CountdownEditorState
	TimeUp         bool
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Scheduler      *scheduler.Engine
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	repo     storage.Repository
	notifier DesktopNotifier
	now      func() time.Time

	// Tick chains are keyed by task id; a tick carrying an older generation
	// is dropped without re-arming.
	tickGen      map[int]int
	countdownGen int
	runningSince map[int]time.Time
	goalNotified map[int]bool

	taskTable    table.Model
	editInput    textinput.Model
	dateInput    textinput.Model
	timeInput    textinput.Model
	commandInput textinput.Model
	goalProgress progress.Model
	helpModel    help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TaskTickMsg is one second of elapsed time for a running task.
type TaskTickMsg struct {
	ID  int
	Gen int
}

type CountdownTickMsg struct {
	Gen int
}

type DeadlineMsg struct {
	Deadline scheduler.Deadline
}

// NewModel returns an in-memory model with no store attached.
func NewModel() Model {
	now := time.Now()
	m := Model{
		CurrentView:  ViewTasks,
		Tasks:        model.Tasks{},
		Marked:       make(map[int]bool),
		Countdown:    model.DefaultCountdown(now, config.Default().DefaultExamHour),
		notifier:     NoopDesktopNotifier{},
		now:          time.Now,
		tickGen:      make(map[int]int),
		runningSince: make(map[int]time.Time),
		goalNotified: make(map[int]bool),
		Keys: GlobalKeyMap{
			Tasks:     "1",
			Countdown: "2",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	return m
}

// NewModelWithConfig seeds the model from repo once. Only store I/O errors
// are returned; malformed stored state loads as empty.
func NewModelWithConfig(repo storage.Repository, engine *scheduler.Engine, notifier DesktopNotifier, cfg config.Config) (Model, error) {
	m := NewModel()
	m.repo = repo
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	m.Countdown = model.DefaultCountdown(m.now(), cfg.DefaultExamHour)
	if repo == nil {
		return m, nil
	}

	ctx := context.Background()
	tasks, err := storage.LoadTasks(ctx, repo)
	if err != nil {
		return m, fmt.Errorf("load tasks: %w", err)
	}
	target, ok, err := storage.LoadExamDateTime(ctx, repo)
	if err != nil {
		return m, fmt.Errorf("load exam date: %w", err)
	}
	m.restore(tasks, target, ok)
	logger.Info("state loaded", logger.F("tasks", len(tasks)), logger.F("running", len(tasks.Running())), logger.F("exam_set", ok))
	return m, nil
}

// WithClock replaces the wall clock, for tests.
func (m Model) WithClock(now func() time.Time) Model {
	if now != nil {
		m.now = now
	}
	if !m.Countdown.Armed {
		m.Countdown = model.DefaultCountdown(now(), m.Countdown.Target.Hour())
	}
	return m
}

func (m *Model) restore(tasks model.Tasks, target time.Time, armed bool) {
	m.Tasks = tasks
	now := m.now()
	for _, t := range tasks {
		if t.IsRunning {
			m.tickGen[t.ID] = 1
			m.runningSince[t.ID] = now
		}
		if t.GoalReached() {
			m.goalNotified[t.ID] = true
		}
	}
	if armed {
		m.Countdown = model.ArmedCountdown(target)
		m.countdownGen = 1
		// No deadline for a target that passed while the app was closed.
		if m.Countdown.Remaining(now) == 0 {
			m.TimeUp = true
			return
		}
		m.scheduleExamDeadline()
	}
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Task", Width: 22},
		{Title: "Spent", Width: 9},
		{Title: "Goal", Width: 9},
		{Title: "State", Width: 8},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.editInput = textinput.New()
	m.editInput.CharLimit = 256
	m.editInput.Width = 40

	m.dateInput = textinput.New()
	m.dateInput.Prompt = "date> "
	m.dateInput.Placeholder = model.DateLayout
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.timeInput = textinput.New()
	m.timeInput.Prompt = "time> "
	m.timeInput.Placeholder = model.ClockLayout
	m.timeInput.CharLimit = 8
	m.timeInput.Width = 12

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.goalProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	m.helpModel = help.New()
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewCountdown:
		return true
	default:
		return false
	}
}
