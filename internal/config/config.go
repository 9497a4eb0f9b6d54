package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

const envPrefix = "FEATUREGEN_"

type Config struct {
	Verbose     bool     `yaml:"verbose"`
	MaxFileSize int64    `yaml:"max_file_size"`
	MaxFiles    int      `yaml:"max_files"`
	SkipDirs    []string `yaml:"skip_dirs"`

	AI AI `yaml:"ai"`
}

type AI struct {
	Enabled      bool          `yaml:"enabled"`
	Provider     string        `yaml:"provider"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxFileSize: 1_000_000,
		MaxFiles:    10,
		SkipDirs:    []string{".git", "node_modules", "__pycache__", ".venv", "venv"},
		AI: AI{
			Enabled:      true,
			Provider:     "ollama",
			Model:        "llama3.2:3b",
			BaseURL:      "http://localhost:11434",
			Timeout:      30 * time.Second,
			ProbeTimeout: 5 * time.Second,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory and FEATUREGEN_*
// environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup("VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERBOSE: %w", envPrefix, err)
		}
		c.Verbose = b
	}
	if v, ok := lookup("MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_FILE_SIZE: %w", envPrefix, err)
		}
		c.MaxFileSize = n
	}
	if v, ok := lookup("MAX_FILES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_FILES: %w", envPrefix, err)
		}
		c.MaxFiles = n
	}
	if v, ok := lookup("SKIP_DIRS"); ok {
		c.SkipDirs = splitList(v)
	}
	if v, ok := lookup("AI_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sAI_ENABLED: %w", envPrefix, err)
		}
		c.AI.Enabled = b
	}
	if v, ok := lookup("AI_PROVIDER"); ok {
		c.AI.Provider = v
	}
	if v, ok := lookup("AI_MODEL"); ok {
		c.AI.Model = v
	}
	if v, ok := lookup("AI_BASE_URL"); ok {
		c.AI.BaseURL = v
	}
	if v, ok := lookup("API_KEY"); ok {
		c.AI.APIKey = v
	}
	if v, ok := lookup("AI_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sAI_TIMEOUT: %w", envPrefix, err)
		}
		c.AI.Timeout = d
	}
	if v, ok := lookup("AI_PROBE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sAI_PROBE_TIMEOUT: %w", envPrefix, err)
		}
		c.AI.ProbeTimeout = d
	}
	return nil
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.MaxFileSize <= 0:
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalid, c.MaxFileSize)
	case c.MaxFiles <= 0:
		return fmt.Errorf("%w: max_files must be positive, got %d", ErrInvalid, c.MaxFiles)
	case c.AI.Timeout <= 0:
		return fmt.Errorf("%w: ai.timeout must be positive, got %s", ErrInvalid, c.AI.Timeout)
	case c.AI.ProbeTimeout <= 0:
		return fmt.Errorf("%w: ai.probe_timeout must be positive, got %s", ErrInvalid, c.AI.ProbeTimeout)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
