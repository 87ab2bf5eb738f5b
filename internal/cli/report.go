package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/storage"
	"github.com/sandeepkv93/buzzer/internal/views"
	"github.com/spf13/cobra"
)

func (a *app) reportCmd() *cobra.Command {
	var (
		raw      bool
		sessions int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a study report",
		Long: `Print totals, per-task progress and recent study sessions.

Examples:
  buzzer report
  buzzer report --raw > report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				data, err := buildReport(ctx, repo, time.Now(), sessions)
				if err != nil {
					return fmt.Errorf("failed to build report: %w", err)
				}
				md := views.StudyReportMarkdown(data)
				if raw {
					fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	cmd.Flags().IntVar(&sessions, "sessions", 10, "Number of recent sessions to include")
	return cmd
}

func buildReport(ctx context.Context, repo storage.Repository, now time.Time, sessionLimit int) (views.ReportData, error) {
	tasks, err := storage.LoadTasks(ctx, repo)
	if err != nil {
		return views.ReportData{}, err
	}
	target, ok, err := storage.LoadExamDateTime(ctx, repo)
	if err != nil {
		return views.ReportData{}, err
	}

	data := views.ReportData{
		GeneratedAt: now.Format("2006-01-02 15:04"),
		TotalSpent:  model.FormatTime(tasks.TotalTimeSpent()),
		TotalGoal:   model.FormatTime(tasks.TotalGoalTime()),
	}
	if ok {
		data.Countdown = fmt.Sprintf("%s (%s)", model.ArmedCountdown(target).Display(now), target.Format("2006-01-02 15:04:05"))
	}

	counts := make(map[int]int)
	if sessionLimit > 0 {
		recent, err := repo.ListSessions(ctx, storage.SessionListFilter{Limit: sessionLimit})
		if err != nil {
			return views.ReportData{}, err
		}
		for _, s := range recent {
			counts[s.TaskID]++
			data.Sessions = append(data.Sessions, views.ReportSession{
				Task:    s.TaskText,
				Ended:   s.EndedAt.Local().Format("2006-01-02 15:04"),
				Elapsed: model.FormatTime(s.Seconds),
			})
		}
	}

	for _, t := range tasks {
		rt := views.ReportTask{
			ID:       t.ID,
			Name:     t.Text,
			Spent:    model.FormatTime(t.Time),
			Goal:     t.GoalTime,
			Done:     t.Checked,
			Running:  t.IsRunning,
			Sessions: counts[t.ID],
		}
		if goal := t.GoalSeconds(); goal > 0 {
			rt.Percent = min(100, t.Time*100/goal)
		}
		data.Tasks = append(data.Tasks, rt)
	}
	return data, nil
}
