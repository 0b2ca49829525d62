package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = New("info")

// New builds a JSON logrus logger writing to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Init replaces the process logger. Called once from main after config load.
func Init(level string) *logrus.Logger {
	log = New(level)
	return log
}

// Get returns the process logger
func Get() *logrus.Logger {
	return log
}

// LogError records a failed operation with the module and function it came from
func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
