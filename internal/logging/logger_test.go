package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewDefaultsOutput(t *testing.T) {
	logger, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	require.NotNil(t, logger.Logger)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.log")

	logger, err := New(Config{Level: "info", OutputPaths: []string{"stderr"}, File: path})
	require.NoError(t, err)

	logger.Named("vault").Info("credential stored", zap.Int("bytes", 6))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "credential stored")
	assert.Contains(t, string(data), `"logger":"vault"`)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil).Logger)

	logger := NewDevelopment()
	assert.Same(t, logger, OrNop(logger))
}
