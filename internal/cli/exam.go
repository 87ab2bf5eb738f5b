package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/storage"
	"github.com/spf13/cobra"
)

func (a *app) examCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Manage the exam countdown target",
	}
	cmd.AddCommand(a.examSetCmd(), a.examShowCmd(), a.examClearCmd())
	return cmd
}

func (a *app) examSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <YYYY-MM-DD> <HH:MM:SS>",
		Short: "Set and confirm the exam date and time",
		Long: `Set and confirm the exam date and time in local time.

Examples:
  buzzer exam set 2026-06-15 09:00:00
  buzzer exam set 2026-06-15 09:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			date, err := model.ParseDate(args[0], now.Location())
			if err != nil {
				return err
			}
			clock, err := model.ParseClock(args[1], now.Location())
			if err != nil {
				return err
			}
			cd := model.DefaultCountdown(now, a.cfg.DefaultExamHour).SetDate(date).SetTime(clock).Confirm()

			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				if err := storage.SaveExamDateTime(ctx, repo, cd.Target); err != nil {
					return fmt.Errorf("failed to save exam date: %w", err)
				}
				logger.Info("exam target set", logger.F("target", storage.FormatExamDateTime(cd.Target)))
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exam set for %s\n  %s\n", cd.Target.Format("2006-01-02 15:04:05"), cd.Display(now))
				return nil
			})
		},
	}
}

func (a *app) examShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the time left until the exam",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				target, ok, err := storage.LoadExamDateTime(ctx, repo)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No exam date set. Set one with: buzzer exam set 2026-06-15 09:00:00")
					return nil
				}
				cd := model.ArmedCountdown(target)
				fmt.Fprintf(cmd.OutOrStdout(), "Exam: %s\n%s\n", target.Format("2006-01-02 15:04:05"), cd.Display(time.Now()))
				return nil
			})
		},
	}
}

func (a *app) examClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the exam target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				if err := storage.ClearExamDateTime(ctx, repo); err != nil {
					return fmt.Errorf("failed to clear exam date: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Exam date cleared")
				return nil
			})
		},
	}
}
