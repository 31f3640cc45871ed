package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_DefaultsToNop(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestIntoContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "triviaz", "production", "debug")

	ctx := IntoContext(context.Background(), logger)
	got := FromContext(ctx)
	got.Info().Str("question_id", "q-1").Msg("displayed")

	out := buf.String()
	assert.Contains(t, out, "displayed")
	assert.Contains(t, out, "q-1")
	assert.Contains(t, out, "triviaz")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "triviaz", "production", "chatty")

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
