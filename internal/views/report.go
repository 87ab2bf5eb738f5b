package views

import (
	"fmt"
	"strings"
)

type ReportTask struct {
	ID       int
	Name     string
	Spent    string
	Goal     string
	Percent  int
	Done     bool
	Running  bool
	Sessions int
}

type ReportSession struct {
	Task    string
	Ended   string
	Elapsed string
}

type ReportData struct {
	GeneratedAt string
	Countdown   string
	TotalSpent  string
	TotalGoal   string
	Tasks       []ReportTask
	Sessions    []ReportSession
}

// StudyReportMarkdown builds the markdown rendered by RenderMarkdown.
func StudyReportMarkdown(data ReportData) string {
	var b strings.Builder
	b.WriteString("# " + TitleCase("study report") + "\n\n")
	if data.GeneratedAt != "" {
		b.WriteString(fmt.Sprintf("_generated %s_\n\n", data.GeneratedAt))
	}

	b.WriteString("## " + TitleCase("exam") + "\n\n")
	if data.Countdown == "" {
		b.WriteString("No exam date set.\n\n")
	} else {
		b.WriteString(data.Countdown + "\n\n")
	}

	b.WriteString("## " + TitleCase("totals") + "\n\n")
	b.WriteString(fmt.Sprintf("- Total Time Spent: `%s`\n", data.TotalSpent))
	b.WriteString(fmt.Sprintf("- Total Goal Time: `%s`\n\n", data.TotalGoal))

	b.WriteString("## " + TitleCase("tasks") + "\n\n")
	if len(data.Tasks) == 0 {
		b.WriteString("No study tasks.\n\n")
	} else {
		b.WriteString("| # | Task | Spent | Goal | Progress | Sessions | State |\n")
		b.WriteString("|---|------|-------|------|----------|----------|-------|\n")
		for _, task := range data.Tasks {
			goal := task.Goal
			progress := "-"
			if goal == "" {
				goal = "-"
			} else {
				progress = fmt.Sprintf("%d%%", task.Percent)
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %d | %s |\n",
				task.ID, escapeCell(task.Name), task.Spent, goal, progress, task.Sessions, reportState(task)))
		}
		b.WriteString("\n")
	}

	if len(data.Sessions) > 0 {
		b.WriteString("## " + TitleCase("recent sessions") + "\n\n")
		for _, s := range data.Sessions {
			b.WriteString(fmt.Sprintf("- %s: %s (ended %s)\n", escapeCell(s.Task), s.Elapsed, s.Ended))
		}
	}
	return strings.TrimSpace(b.String()) + "\n"
}

func reportState(task ReportTask) string {
	switch {
	case task.Done:
		return "done"
	case task.Running:
		return "running"
	default:
		return "paused"
	}
}

func escapeCell(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
