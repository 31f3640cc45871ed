package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/question"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triviaz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, question.DifficultyMixed, cfg.DifficultyValue())
	assert.False(t, cfg.IsProduction())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "question_count: 5\ndifficulty: Hard\nexclude_used: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.QuestionCount)
	assert.Equal(t, question.DifficultyHard, cfg.DifficultyValue())
	assert.False(t, cfg.ExcludeUsed)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "question_count: 5\nlog_level: warn\n")
	t.Setenv("TRIVIAZ_QUESTION_COUNT", "12")
	t.Setenv("TRIVIAZ_DB", "/tmp/custom.db")
	t.Setenv("TRIVIAZ_ENV", "production")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.QuestionCount)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown field", body: "questions: 3\n"},
		{name: "multiple documents", body: "question_count: 3\n---\nquestion_count: 4\n"},
		{name: "count too high", body: "question_count: 101\n"},
		{name: "count zero", body: "question_count: 0\n"},
		{name: "bad difficulty", body: "difficulty: brutal\n"},
		{name: "bad env int", body: "", env: map[string]string{"TRIVIAZ_QUESTION_COUNT": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
