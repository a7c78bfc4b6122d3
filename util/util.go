package util

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yougroupteam/swagger-router/config"
)

// warningLogger receives the warnings raised while loading documents.
var warningLogger logrus.FieldLogger = logrus.StandardLogger()

// NewLogger builds the process logger. It writes to stderr, or to a rotated
// file when the configuration names one, and logs at debug level when
// verbose.
func NewLogger(cfg config.LogConfig, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logger.SetOutput(LogWriter(cfg))

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// LogWriter returns where logs should be written.
func LogWriter(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// SetWarningLogger changes where Warningf writes to.
func SetWarningLogger(logger logrus.FieldLogger) {
	warningLogger = logger
}

// Warningf reports a problem that doesn't stop the program.
func Warningf(format string, a ...interface{}) {
	warningLogger.Warnf(format, a...)
}
