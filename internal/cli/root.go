package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/buzzer/internal/config"
	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/scheduler"
	"github.com/sandeepkv93/buzzer/internal/storage"
	"github.com/sandeepkv93/buzzer/internal/update"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
	logConsole bool

	cfg config.Config
}

// NewRootCommand builds the buzzer command tree. Running it without a
// subcommand launches the TUI.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "buzzer",
		Short: "The Final Buzzer - exam countdown and study timers",
		Long: `buzzer counts down to your exam and tracks study time per task.

Run 'buzzer' without arguments to launch the interactive TUI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("buzzer exiting", logger.F("command", cmd.Name()))
			_ = logger.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ~/.buzzer/config.yaml)")
	flags.StringVar(&a.dbPath, "db", "", "Path to the SQLite database")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&a.logFile, "log-file", "", "Path to log file")
	flags.BoolVar(&a.logConsole, "log-console", false, "Enable console logging")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.doneCmd(),
		a.deleteCmd(),
		a.resetCmd(),
		a.renameCmd(),
		a.goalCmd(),
		a.examCmd(),
		a.reportCmd(),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabasePath = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("log-console") {
		cfg.LogConsole = a.logConsole
	}
	a.cfg = cfg

	logConfig := logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		MaxSize:  10 * 1024 * 1024,
		Console:  cfg.LogConsole,
	}
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("buzzer started", logger.F("command", cmd.Name()), logger.F("db", cfg.DatabasePath))
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	repo, err := storage.OpenSQLite(a.cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", logger.F("error", err))
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = repo.Close()
		logger.Info("database closed")
	}()

	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m, err := update.NewModelWithConfig(repo, engine, update.ExecDesktopNotifier{}, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	logger.Info("launching TUI")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if dropped := engine.Dropped(); dropped > 0 {
		logger.Warn("deadlines dropped", logger.F("count", dropped))
	}
	logger.Info("TUI exited normally")
	return nil
}

// withStore opens the configured database for a single command.
func (a *app) withStore(fn func(ctx context.Context, repo *storage.SQLiteRepository) error) error {
	repo, err := storage.OpenSQLite(a.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()
	return fn(context.Background(), repo)
}
