package views

import (
	"strings"
	"testing"
)

func TestRenderAppIncludesHeaderTotalsAndStatus(t *testing.T) {
	out := RenderApp(AppData{
		Title:      "The Final Buzzer",
		ViewName:   "tasks",
		Totals:     "Total Time Spent: 00:00:05 -- Total Goal Time: 01:00:00",
		LeftPane:   "left",
		StatusLine: "status: saved",
		Footer:     "keys",
	})
	for _, want := range []string{"The Final Buzzer | Tasks", "Total Time Spent: 00:00:05 -- Total Goal Time: 01:00:00", "left", "status: saved", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestRenderTaskPanelEmptyAndSelected(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{Empty: true})
	if !strings.Contains(out, "no tasks yet") {
		t.Fatalf("unexpected empty panel: %q", out)
	}

	out = RenderTaskPanel(TaskPanelData{
		TableView:    "table",
		SelectedName: "Algebra",
		SelectedGoal: "01:00:00",
		ProgressView: "[##--]",
		ProgressPct:  50,
		MarkedCount:  2,
		EditorLabel:  "rename",
		EditorView:   "> Algebra",
	})
	for _, want := range []string{"selected: Algebra", "goal: 01:00:00 [##--] 50%", "marked: 2", "rename:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in panel: %q", want, out)
		}
	}
}

func TestRenderCountdownPanelStates(t *testing.T) {
	out := RenderCountdownPanel(CountdownPanelData{Armed: true, Display: "0d, 01h, 01m, 01s left", Target: "2026-06-15 09:00:00"})
	if !strings.Contains(out, "0d, 01h, 01m, 01s left") {
		t.Fatalf("expected display string: %q", out)
	}

	out = RenderCountdownPanel(CountdownPanelData{Target: "2026-06-15 12:00:00", Editing: true, Field: "time", DateInput: "date", TimeInput: "time", ErrorText: "bad"})
	if strings.Contains(out, "left") {
		t.Fatalf("unarmed countdown should hide remaining time: %q", out)
	}
	if !strings.Contains(out, "> time") || !strings.Contains(out, "error: bad") {
		t.Fatalf("expected active field cursor and error: %q", out)
	}
}

func TestStudyReportMarkdown(t *testing.T) {
	md := StudyReportMarkdown(ReportData{
		Countdown:  "1d, 00h, 00m, 00s left",
		TotalSpent: "00:30:00",
		TotalGoal:  "01:00:00",
		Tasks: []ReportTask{
			{ID: 0, Name: "Algebra | Part 1", Spent: "00:30:00", Goal: "01:00:00", Percent: 50, Running: true, Sessions: 2},
			{ID: 1, Name: "", Spent: "00:00:00", Done: true},
		},
		Sessions: []ReportSession{{Task: "Algebra", Ended: "2026-02-09 12:00", Elapsed: "00:30:00"}},
	})
	for _, want := range []string{"# Study Report", "## Recent Sessions", `Algebra \| Part 1`, "| 50% | 2 | running |", "(unnamed)", "| done |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in report:\n%s", want, md)
		}
	}

	empty := StudyReportMarkdown(ReportData{TotalSpent: "00:00:00", TotalGoal: "00:00:00"})
	if !strings.Contains(empty, "No exam date set.") || !strings.Contains(empty, "No study tasks.") {
		t.Fatalf("unexpected empty report:\n%s", empty)
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("COUNTDOWN"); got != "Countdown" {
		t.Fatalf("unexpected title case: %q", got)
	}
}
