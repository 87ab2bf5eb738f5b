package views

import (
	"fmt"
	"strings"
)

type TaskPanelData struct {
	TableView    string
	Empty        bool
	SelectedName string
	SelectedGoal string
	ProgressView string
	ProgressPct  int
	MarkedCount  int
	EditorLabel  string
	EditorView   string
}

type CountdownPanelData struct {
	Armed     bool
	Display   string
	Target    string
	Editing   bool
	Field     string
	DateInput string
	TimeInput string
	ErrorText string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("study tasks:\n")
	b.WriteString("actions: [a]add [space]start/pause [r]reset [x]done [e]rename [g]goal [d]delete\n")
	if data.Empty {
		b.WriteString("\n(no tasks yet, press [a] to add one)")
		return b.String()
	}
	b.WriteString(data.TableView + "\n")

	if data.SelectedName != "" {
		b.WriteString(fmt.Sprintf("\nselected: %s\n", data.SelectedName))
		if data.SelectedGoal != "" {
			b.WriteString(fmt.Sprintf("goal: %s %s %d%%\n", data.SelectedGoal, data.ProgressView, data.ProgressPct))
		} else {
			b.WriteString("goal: (none)\n")
		}
	}
	if data.MarkedCount > 0 {
		b.WriteString(fmt.Sprintf("marked: %d ([X] deletes marked)\n", data.MarkedCount))
	}
	if data.EditorView != "" {
		b.WriteString(fmt.Sprintf("\n%s:\n%s\n", data.EditorLabel, data.EditorView))
		b.WriteString("keys: [enter] save [esc] cancel")
	}
	return strings.TrimSpace(b.String())
}

func RenderCountdownPanel(data CountdownPanelData) string {
	var b strings.Builder
	b.WriteString("exam countdown:\n")
	if data.Armed {
		b.WriteString(fmt.Sprintf("target: %s\n", data.Target))
		b.WriteString(fmt.Sprintf("\n  %s\n", data.Display))
	} else {
		b.WriteString(fmt.Sprintf("proposed: %s\n", data.Target))
		b.WriteString("(not set, press [e] then [enter] to confirm)\n")
	}

	if data.Editing {
		b.WriteString("\nenter exam date and time:\n")
		b.WriteString(fieldLine("date", data.Field, data.DateInput) + "\n")
		b.WriteString(fieldLine("time", data.Field, data.TimeInput) + "\n")
		b.WriteString("keys: [tab] field [enter] confirm [esc] cancel\n")
	} else {
		b.WriteString("\nactions: [e]edit target\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	return strings.TrimSpace(b.String())
}

func fieldLine(name, active, view string) string {
	cursor := " "
	if name == active {
		cursor = ">"
	}
	return fmt.Sprintf("%s %s", cursor, view)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
