package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDir     = "f1-race-analysis"
	localDir   = ".f1ra"
	configFile = "config.yaml"
	envPrefix  = "F1RA_"
)

// ViewerConfig describes how the external telemetry viewer is started.
// The process is invoked as "<interpreter> <entry_point> --viewer ...";
// with an empty interpreter the entry point is executed directly.
type ViewerConfig struct {
	Interpreter string `yaml:"interpreter"`
	EntryPoint  string `yaml:"entry_point"`
}

// Config holds application configuration
type Config struct {
	APIBaseURL        string
	HTTPTimeout       time.Duration
	CacheDir          string
	CacheMaxAge       time.Duration
	FirstSeason       int
	CurrentSeason     int
	Viewer            ViewerConfig
	ReadyPollInterval time.Duration
	ExitPollInterval  time.Duration
	LogLevel          string
	JSONLogs          bool
}

type fileConfig struct {
	APIBaseURL        string       `yaml:"api_base_url"`
	HTTPTimeout       string       `yaml:"http_timeout"`
	CacheDir          string       `yaml:"cache_dir"`
	CacheMaxAge       string       `yaml:"cache_max_age"`
	FirstSeason       int          `yaml:"first_season"`
	CurrentSeason     int          `yaml:"current_season"`
	Viewer            ViewerConfig `yaml:"viewer"`
	ReadyPollInterval string       `yaml:"ready_poll_interval"`
	ExitPollInterval  string       `yaml:"exit_poll_interval"`
	LogLevel          string       `yaml:"log_level"`
	JSONLogs          *bool        `yaml:"json_logs"`
}

// Default returns the built-in configuration
func Default() *Config {
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, appDir)
	}

	return &Config{
		APIBaseURL:    "https://api.jolpi.ca/ergast/f1",
		HTTPTimeout:   30 * time.Second,
		CacheDir:      cacheDir,
		CacheMaxAge:   24 * time.Hour,
		FirstSeason:   2010,
		CurrentSeason: time.Now().Year(),
		Viewer: ViewerConfig{
			Interpreter: "python3",
			EntryPoint:  "main.py",
		},
		ReadyPollInterval: 200 * time.Millisecond,
		ExitPollInterval:  500 * time.Millisecond,
		LogLevel:          "info",
	}
}

// Load builds the configuration with the following precedence (highest first):
// 1. The explicit file, if path is non-empty
// 2. Environment variables (F1RA_*)
// 3. ./.f1ra/config.yaml
// 4. Global config under the user config dir
// 5. Defaults
//
// Command line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	for _, p := range []string{globalConfigPath(), filepath.Join(localDir, configFile)} {
		if p == "" {
			continue
		}
		if err := loadFromFile(p, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations the launcher cannot run with
func (c *Config) Validate() error {
	if c.Viewer.EntryPoint == "" {
		return errors.New("viewer entry point is required")
	}
	if c.ReadyPollInterval <= 0 || c.ExitPollInterval <= 0 {
		return errors.New("poll intervals must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("http timeout must be positive")
	}
	if c.FirstSeason > c.CurrentSeason {
		return fmt.Errorf("first season %d is after current season %d", c.FirstSeason, c.CurrentSeason)
	}
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	return nil
}

// Seasons lists the selectable years, oldest first
func (c *Config) Seasons() []int {
	seasons := make([]int, 0, c.CurrentSeason-c.FirstSeason+1)
	for y := c.FirstSeason; y <= c.CurrentSeason; y++ {
		seasons = append(seasons, y)
	}
	return seasons
}

func globalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, configFile)
}

// loadFromFile merges non-empty values from a YAML file into cfg.
// Relative cache and entry point paths resolve against the file's directory.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	if filepath.Base(baseDir) == localDir {
		baseDir = filepath.Dir(baseDir)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.CacheDir != "" {
		cfg.CacheDir = ExpandPath(fc.CacheDir, baseDir)
	}
	if fc.FirstSeason != 0 {
		cfg.FirstSeason = fc.FirstSeason
	}
	if fc.CurrentSeason != 0 {
		cfg.CurrentSeason = fc.CurrentSeason
	}
	if fc.Viewer.Interpreter != "" {
		cfg.Viewer.Interpreter = fc.Viewer.Interpreter
	}
	if fc.Viewer.EntryPoint != "" {
		cfg.Viewer.EntryPoint = ExpandPath(fc.Viewer.EntryPoint, baseDir)
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.JSONLogs != nil {
		cfg.JSONLogs = *fc.JSONLogs
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"http_timeout", fc.HTTPTimeout, &cfg.HTTPTimeout},
		{"cache_max_age", fc.CacheMaxAge, &cfg.CacheMaxAge},
		{"ready_poll_interval", fc.ReadyPollInterval, &cfg.ReadyPollInterval},
		{"exit_poll_interval", fc.ExitPollInterval, &cfg.ExitPollInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("%s: invalid %s: %w", path, d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(envPrefix + "API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envPrefix + "CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv(envPrefix + "VIEWER_INTERPRETER"); v != "" {
		cfg.Viewer.Interpreter = v
	}
	if v := os.Getenv(envPrefix + "VIEWER_ENTRY_POINT"); v != "" {
		cfg.Viewer.EntryPoint = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "JSON_LOGS"); v != "" {
		cfg.JSONLogs = v == "true" || v == "1" || v == "yes"
	}
	if v := os.Getenv(envPrefix + "SEASON"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSEASON: %w", envPrefix, err)
		}
		cfg.CurrentSeason = year
	}
	return nil
}

// ExpandPath expands ~ and makes path absolute relative to base
func ExpandPath(path, base string) string {
	if path == "" {
		return ""
	}

	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}

	return path
}
