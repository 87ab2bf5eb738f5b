package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
	"github.com/sandeepkv93/buzzer/internal/storage"
	"github.com/sandeepkv93/buzzer/internal/update"
	"github.com/spf13/cobra"
)

var errTaskNotFound = errors.New("task not found")

// mutateTasks loads the stored snapshot, applies fn, and saves exactly the
// snapshot fn returned.
func (a *app) mutateTasks(fn func(model.Tasks) (model.Tasks, error)) (model.Tasks, error) {
	var out model.Tasks
	err := a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
		tasks, err := storage.LoadTasks(ctx, repo)
		if err != nil {
			return err
		}
		next, err := fn(tasks)
		if err != nil {
			return err
		}
		if err := storage.SaveTasks(ctx, repo, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

func parseTaskID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

func requireTask(tasks model.Tasks, id int) (model.Task, error) {
	t, ok := tasks.Find(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: #%d", errTaskNotFound, id)
	}
	return t, nil
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a study task",
		Long: `Add a study task. Without a name the task is called "Task N".

Examples:
  buzzer add
  buzzer add Organic chemistry`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			var added model.Task
			_, err := a.mutateTasks(func(tasks model.Tasks) (model.Tasks, error) {
				next := tasks.Add()
				added = next[len(next)-1]
				if name != "" {
					next = next.Rename(added.ID, name)
					added.Text = name
				}
				return next, nil
			})
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}
			logger.Info("task added", logger.F("id", added.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added #%d: %q\n", added.ID, added.Text)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List study tasks with their times",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				tasks, err := storage.LoadTasks(ctx, repo)
				if err != nil {
					return fmt.Errorf("failed to list tasks: %w", err)
				}
				printTasks(cmd.OutOrStdout(), tasks)
				return nil
			})
		},
	}
}

func printTasks(w io.Writer, tasks model.Tasks) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, `No study tasks. Add one with: buzzer add "Organic chemistry"`)
		return
	}
	fmt.Fprintln(w, update.TotalsLine(tasks))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, t := range tasks {
		box := "[ ]"
		if t.Checked {
			box = "[x]"
		}
		state := ""
		if t.IsRunning {
			state = " (running)"
		}
		goal := ""
		if t.GoalTime != "" {
			goal = " / " + t.GoalTime
		}
		fmt.Fprintf(w, "%3d %s %s%s  %s%s\n", t.ID, box, model.FormatTime(t.Time), goal, t.Text, state)
	}
}

func (a *app) doneCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a study task as done",
		Long: `Mark a study task as done.

Examples:
  buzzer done 2
  buzzer done 2 --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			var (
				task  model.Task
				found bool
			)
			_, err = a.mutateTasks(func(tasks model.Tasks) (model.Tasks, error) {
				t, ok := tasks.Find(id)
				if !ok {
					return tasks, nil
				}
				found = true
				if t.Checked == !undo {
					task = t
					return tasks, nil
				}
				next := tasks.ToggleChecked(id)
				task, _ = next.Find(id)
				return next, nil
			})
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No task #%d, nothing changed\n", id)
				return nil
			}
			if task.Checked {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %q\n", task.Text)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: %q\n", task.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark task as not done")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:     "delete <task-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a study task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(ctx context.Context, repo *storage.SQLiteRepository) error {
				tasks, err := storage.LoadTasks(ctx, repo)
				if err != nil {
					return err
				}
				t, ok := tasks.Find(id)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No task #%d, nothing deleted\n", id)
					return nil
				}
				if err := storage.SaveTasks(ctx, repo, tasks.Delete(id)); err != nil {
					return fmt.Errorf("failed to delete task: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✗ Deleted #%d: %q\n", id, t.Text)
				if !purge {
					return nil
				}
				n, err := repo.DeleteSessions(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to delete sessions: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  removed %d session(s)\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&purge, "purge-sessions", false, "Also delete the task's study sessions")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <task-id>",
		Short: "Reset a study task's time to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			next, err := a.mutateTasks(func(tasks model.Tasks) (model.Tasks, error) {
				if _, err := requireTask(tasks, id); err != nil {
					return nil, err
				}
				return tasks.Reset(id), nil
			})
			if err != nil {
				return err
			}
			t, _ := next.Find(id)
			fmt.Fprintf(cmd.OutOrStdout(), "↺ Reset: %q\n", t.Text)
			return nil
		},
	}
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <task-id> [name]",
		Short: "Rename a study task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			_, err = a.mutateTasks(func(tasks model.Tasks) (model.Tasks, error) {
				if _, err := requireTask(tasks, id); err != nil {
					return nil, err
				}
				return tasks.Rename(id, text), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed #%d: %q\n", id, text)
			return nil
		},
	}
}

func (a *app) goalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal <task-id> [HH:MM:SS]",
		Short: "Set or clear a study task's goal time",
		Long: `Set a goal time for a study task. Omit the time to clear the goal.

Examples:
  buzzer goal 1 01:30:00
  buzzer goal 1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			goal := ""
			if len(args) == 2 {
				goal = args[1]
			}
			_, err = a.mutateTasks(func(tasks model.Tasks) (model.Tasks, error) {
				if _, err := requireTask(tasks, id); err != nil {
					return nil, err
				}
				return tasks.SetGoalTime(id, goal)
			})
			if err != nil {
				return err
			}
			if goal == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared goal for #%d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Goal for #%d: %s\n", id, goal)
			}
			return nil
		},
	}
}
