package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"
)

type Config struct {
	HomePath     string
	DataDir      string
	DBPath       string
	SettingsPath string
	LogPath      string

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	SettingsBackend string        `yaml:"settings_backend"`
	SettingsPoll    time.Duration `yaml:"settings_poll"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db"`
	RedisPrefix     string        `yaml:"redis_prefix"`

	SlackBaseURL      string        `yaml:"slack_base_url"`
	SlackRatePerSec   float64       `yaml:"slack_rate_per_sec"`
	SlackTimeout      time.Duration `yaml:"slack_timeout"`
	NotifyDrainWindow time.Duration `yaml:"notify_drain_window"`

	RemindersDir string `yaml:"reminders_dir"`
	PluginsPath  string `yaml:"plugins_path"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// New derives paths under home, then applies .focusflow/config.yaml and
// FOCUSFLOW_* environment overrides in that order.
func New(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	dataDir := filepath.Join(homePath, ".focusflow")
	cfg := Config{
		HomePath:          homePath,
		DataDir:           dataDir,
		DBPath:            filepath.Join(dataDir, "focusflow.db"),
		SettingsPath:      filepath.Join(dataDir, "settings.yaml"),
		LogPath:           filepath.Join(dataDir, "focusflow.log"),
		LogLevel:          "info",
		LogFormat:         "text",
		SettingsBackend:   SettingsBackendFile,
		SettingsPoll:      2 * time.Second,
		RedisAddr:         "localhost:6379",
		RedisPrefix:       "focusflow",
		SlackBaseURL:      "https://slack.com/api",
		SlackRatePerSec:   1,
		SlackTimeout:      10 * time.Second,
		NotifyDrainWindow: 3 * time.Second,
		RemindersDir:      filepath.Join(homePath, "reminders"),
		PluginsPath:       filepath.Join(homePath, "plugins", "plugins.json"),
	}
	if err := cfg.loadFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SettingsBackend {
	case SettingsBackendFile, SettingsBackendRedis:
	default:
		return fmt.Errorf("unknown settings backend: %s", c.SettingsBackend)
	}
	if c.SlackRatePerSec <= 0 {
		return fmt.Errorf("slack rate must be positive")
	}
	if c.SettingsPoll <= 0 {
		return fmt.Errorf("settings poll interval must be positive")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("FOCUSFLOW_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("FOCUSFLOW_LOG_FORMAT", c.LogFormat)
	c.SettingsBackend = getEnv("FOCUSFLOW_SETTINGS_BACKEND", c.SettingsBackend)
	c.SettingsPoll = getDurationEnv("FOCUSFLOW_SETTINGS_POLL", c.SettingsPoll)
	c.RedisAddr = getEnv("FOCUSFLOW_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("FOCUSFLOW_REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getIntEnv("FOCUSFLOW_REDIS_DB", c.RedisDB)
	c.RedisPrefix = getEnv("FOCUSFLOW_REDIS_PREFIX", c.RedisPrefix)
	c.SlackBaseURL = getEnv("FOCUSFLOW_SLACK_BASE_URL", c.SlackBaseURL)
	c.SlackRatePerSec = getFloatEnv("FOCUSFLOW_SLACK_RATE", c.SlackRatePerSec)
	c.SlackTimeout = getDurationEnv("FOCUSFLOW_SLACK_TIMEOUT", c.SlackTimeout)
	c.NotifyDrainWindow = getDurationEnv("FOCUSFLOW_NOTIFY_DRAIN", c.NotifyDrainWindow)
	c.RemindersDir = getEnv("FOCUSFLOW_REMINDERS_DIR", c.RemindersDir)
	c.PluginsPath = getEnv("FOCUSFLOW_PLUGINS", c.PluginsPath)
	c.MetricsAddr = getEnv("FOCUSFLOW_METRICS_ADDR", c.MetricsAddr)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getFloatEnv(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
