package logger

import (
	"testing"

	"chatbot-ai/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { log = prev })

	require.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(config.LoggerConfig{Level: "warn"}))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestInitialize_InvalidLevel(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { log = prev })

	err := Initialize(config.LoggerConfig{Level: "chatty"})
	assert.Error(t, err)
}
