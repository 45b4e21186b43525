package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_LevelFromConfig(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "console"},
		&config.AppConfig{Name: "test", Environment: "development"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "chatty", Format: "json"},
		&config.AppConfig{Name: "test", Environment: "production"},
	)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	cfg := &config.LoggingConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1}

	log, err := logger.NewLogger(cfg, &config.AppConfig{Name: "concrete-calc", Environment: "test"})
	require.NoError(t, err)

	logger.WithEstimate(log, "abc", "slab").Info("estimate saved", zap.Int("quantity", 2))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"estimate saved"`)
	assert.Contains(t, string(data), `"estimate_id":"abc"`)
	assert.Contains(t, string(data), `"app":"concrete-calc"`)
}
