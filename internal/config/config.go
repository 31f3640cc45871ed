// Package config loads triviaz runtime settings from defaults, an optional
// YAML file and TRIVIAZ_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/triviaz/internal/question"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TRIVIAZ_"

// Bounds for QuestionCount.
const (
	MinQuestionCount = 1
	MaxQuestionCount = 100
)

// Config holds the settings shared by every command.
type Config struct {
	DBPath        string `yaml:"db_path" env:"DB"`
	QuestionCount int    `yaml:"question_count" env:"QUESTION_COUNT"`
	Difficulty    string `yaml:"difficulty" env:"DIFFICULTY"`
	ExcludeUsed   bool   `yaml:"exclude_used" env:"EXCLUDE_USED"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	Env           string `yaml:"env" env:"ENV"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		QuestionCount: 20,
		Difficulty:    "mixed",
		ExcludeUsed:   true,
		LogLevel:      "info",
		Env:           "development",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := parseYAML(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseYAML decodes a single strict document over cfg, keeping fields the
// document does not mention.
func parseYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.QuestionCount < MinQuestionCount || c.QuestionCount > MaxQuestionCount {
		return fmt.Errorf("question_count must be between %d and %d, got %d",
			MinQuestionCount, MaxQuestionCount, c.QuestionCount)
	}
	if _, err := question.ParseDifficulty(c.Difficulty); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	return nil
}

// DifficultyValue returns the parsed difficulty. Call after Validate.
func (c Config) DifficultyValue() question.Difficulty {
	d, _ := question.ParseDifficulty(c.Difficulty)
	return d
}

// IsProduction reports whether the process runs in the production env.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
