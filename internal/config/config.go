// Package config resolves tessbridge settings from defaults, a YAML file, a
// .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"

	"github.com/ironsheep/tessbridge/internal/imaging"
	"github.com/ironsheep/tessbridge/internal/ocr"
)

// Environment variables read by Load.
const (
	EnvTesseractCmd = "TESSERACT_CMD"
	EnvLang         = "TESSBRIDGE_LANG"
	EnvConfig       = "TESSBRIDGE_CONFIG"
	EnvNice         = "TESSBRIDGE_NICE"
	EnvTimeout      = "TESSBRIDGE_TIMEOUT"
	EnvBackground   = "TESSBRIDGE_BACKGROUND"
	EnvTempDir      = "TESSBRIDGE_TEMP_DIR"
	EnvLogLevel     = "LOG_LEVEL"
)

// Config holds the settings shared by the CLI and the MCP server.
type Config struct {
	TesseractCmd string        `yaml:"tesseract_cmd"`
	Lang         string        `yaml:"lang"`
	EngineConfig string        `yaml:"config"`
	Nice         int           `yaml:"nice"`
	Timeout      time.Duration `yaml:"timeout"`
	Background   string        `yaml:"background"`
	TempDir      string        `yaml:"temp_dir"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TesseractCmd: ocr.DefaultCommand,
		Background:   "#ffffff",
		LogLevel:     "INFO",
	}
}

// Load builds a Config. path names an optional YAML file; dotenv names an
// optional .env file ("" means ".env" in the working directory). Missing
// files are skipped.
func Load(path, dotenv string) (Config, error) {
	cfg := Default()

	if err := loadDotEnv(dotenv); err != nil {
		return cfg, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadDotEnv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// applyEnv overrides fields from environment variables that are set.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvTesseractCmd: &c.TesseractCmd,
		EnvLang:         &c.Lang,
		EnvConfig:       &c.EngineConfig,
		EnvBackground:   &c.Background,
		EnvTempDir:      &c.TempDir,
		EnvLogLevel:     &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvNice); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNice, v, err)
		}
		c.Nice = n
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("2m30s") or a number of seconds ("9.5").
func parseTimeout(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := imaging.ParseBackground(c.Background); err != nil {
		return err
	}
	return nil
}

// ClientConfig converts the settings into an ocr.ClientConfig.
func (c Config) ClientConfig(logger *slog.Logger) (ocr.ClientConfig, error) {
	bg, err := imaging.ParseBackground(c.Background)
	if err != nil {
		return ocr.ClientConfig{}, err
	}
	return ocr.ClientConfig{
		Command:    c.TesseractCmd,
		TempDir:    c.TempDir,
		Background: bg,
		Logger:     logger,
	}, nil
}

// Options returns the per-call engine options the settings describe.
func (c Config) Options() ocr.Options {
	return ocr.Options{
		Lang:    c.Lang,
		Config:  c.EngineConfig,
		Nice:    c.Nice,
		Timeout: c.Timeout,
	}
}

// ParseLogLevel maps DEBUG, INFO, WARN and ERROR (any case) to slog levels.
// Unknown values select INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
