package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	assert "github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yougroupteam/swagger-router/config"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(config.LogConfig{}, false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Equal(t, os.Stderr, logger.Out)

	logger = NewLogger(config.LogConfig{}, true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router.log")
	cfg := config.Default().Log
	cfg.File = path

	logger := NewLogger(cfg, false)
	rotated, ok := logger.Out.(*lumberjack.Logger)
	assert.True(t, ok)
	assert.Equal(t, path, rotated.Filename)
	assert.Equal(t, 10, rotated.MaxSize)
	defer rotated.Close()

	logger.Info("listening")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "listening")
}

func TestWarningf(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	SetWarningLogger(logger)
	defer SetWarningLogger(logrus.StandardLogger())

	Warningf("could not resolve schema reference %s", "#/definitions/Missing")

	entry := hook.LastEntry()
	assert.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "could not resolve schema reference #/definitions/Missing", entry.Message)
}
