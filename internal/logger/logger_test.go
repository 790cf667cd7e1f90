package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lypt0x/openai-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "openai.log")

	log, err := New(config.LoggingConfig{
		Level:      "debug",
		Output:     output,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)

	log.Debug("request sent")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"request sent"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	output := filepath.Join(t.TempDir(), "openai.log")

	log, err := New(config.LoggingConfig{Level: "warn", Output: output})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
