package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDir         = ".buzzer"
	configFileName = "config.yaml"
)

// Config holds runtime settings. Precedence: defaults, then the YAML file,
// then BUZZER_* environment variables, then CLI flags.
type Config struct {
	DatabasePath         string `yaml:"database_path"`
	LogLevel             string `yaml:"log_level"`
	LogFile              string `yaml:"log_file"`
	LogConsole           bool   `yaml:"log_console"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
	DefaultExamHour      int    `yaml:"default_exam_hour"`
}

func Default() Config {
	base := baseDir()
	return Config{
		DatabasePath:         filepath.Join(base, "buzzer.db"),
		LogLevel:             "INFO",
		LogFile:              filepath.Join(base, "logs", "buzzer.log"),
		LogConsole:           false,
		DesktopNotifications: false,
		SchedulerBuffer:      16,
		DefaultExamHour:      12,
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return appDir
	}
	return filepath.Join(home, appDir)
}

// DefaultPath is ~/.buzzer/config.yaml.
func DefaultPath() string {
	return filepath.Join(baseDir(), configFileName)
}

// Load reads path on top of Default and applies env overrides. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	return FromEnv(cfg), nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c Config) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("BUZZER_DB")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("BUZZER_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("BUZZER_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("BUZZER_LOG_CONSOLE"); ok {
		cfg.LogConsole = v
	}
	if v, ok := getEnvBool("BUZZER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("BUZZER_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("BUZZER_DEFAULT_EXAM_HOUR"); ok && v >= 0 && v <= 23 {
		cfg.DefaultExamHour = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
