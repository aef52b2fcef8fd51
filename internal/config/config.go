// Package config resolves the runtime configuration: built-in defaults,
// then an optional YAML file, then STREAKD_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	DefaultDirName     = ".config/streakd"
	ConfigFileName     = "config.yaml"
	DatabaseFileName   = "streakd.db"
	ActivityLogName    = "activity.jsonl"
	LockFileName       = "streakd.lock"
	defaultTrailingDay = 7
)

var ErrInvalid = errors.New("config: invalid config")

type RuntimeConfig struct {
	DataDir              string `yaml:"data_dir"`
	DBPath               string `yaml:"db_path"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	FocusWorkMinutes     int    `yaml:"focus_work_minutes"`
	FocusBreakMinutes    int    `yaml:"focus_break_minutes"`
	LongWorkMinutes      int    `yaml:"long_work_minutes"`
	LongBreakMinutes     int    `yaml:"long_break_minutes"`
	TrailingDays         int    `yaml:"trailing_days"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
	ActivityLog          bool   `yaml:"activity_log"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := DefaultDirName
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, DefaultDirName)
	}
	return RuntimeConfig{
		DataDir:              dir,
		DesktopNotifications: false,
		FocusWorkMinutes:     25,
		FocusBreakMinutes:    5,
		LongWorkMinutes:      50,
		LongBreakMinutes:     10,
		TrailingDays:         defaultTrailingDay,
		SchedulerBuffer:      16,
		ActivityLog:          true,
	}
}

// Database returns the SQLite path, defaulting to a file in DataDir.
func (c RuntimeConfig) Database() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, DatabaseFileName)
}

func (c RuntimeConfig) ActivityLogPath() string {
	return filepath.Join(c.DataDir, ActivityLogName)
}

func (c RuntimeConfig) LockPath() string {
	return filepath.Join(c.DataDir, LockFileName)
}

func (c RuntimeConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir is required", ErrInvalid)
	case c.FocusWorkMinutes <= 0 || c.FocusBreakMinutes <= 0:
		return fmt.Errorf("%w: focus durations must be positive", ErrInvalid)
	case c.LongWorkMinutes <= 0 || c.LongBreakMinutes <= 0:
		return fmt.Errorf("%w: long focus durations must be positive", ErrInvalid)
	case c.TrailingDays <= 0:
		return fmt.Errorf("%w: trailing_days must be positive", ErrInvalid)
	case c.SchedulerBuffer <= 0:
		return fmt.Errorf("%w: scheduler_buffer must be positive", ErrInvalid)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto base. A missing file leaves
// base unchanged.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted flag or default
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("reading config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Load resolves the full configuration. An empty path means config.yaml in
// the default data dir.
func Load(path string) (RuntimeConfig, error) {
	base := DefaultRuntimeConfig()
	if path == "" {
		path = filepath.Join(base.DataDir, ConfigFileName)
	}
	cfg, err := LoadFile(path, base)
	if err != nil {
		return DefaultRuntimeConfig(), err
	}
	return RuntimeConfigFromEnv(cfg), nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg RuntimeConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("STREAKD_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("STREAKD_DB")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("STREAKD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("STREAKD_ACTIVITY_LOG"); ok {
		cfg.ActivityLog = v
	}
	if v, ok := getEnvInt("STREAKD_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("STREAKD_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("STREAKD_LONG_WORK_MINUTES"); ok && v > 0 {
		cfg.LongWorkMinutes = v
	}
	if v, ok := getEnvInt("STREAKD_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.LongBreakMinutes = v
	}
	if v, ok := getEnvInt("STREAKD_TRAILING_DAYS"); ok && v > 0 {
		cfg.TrailingDays = v
	}
	if v, ok := getEnvInt("STREAKD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
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
