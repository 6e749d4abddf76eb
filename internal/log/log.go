// Package log wraps logrus with the five severity levels the command
// line surface exposes: debug, info, warning, error, critical.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var std = logrus.New()

func init() {
	std.Out = os.Stderr
	std.SetLevel(logrus.WarnLevel)
}

// Level is one of the five levels the --log-level flag accepts.
type Level string

const (
	LevelDebug    Level = "debug"
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

var levels = map[Level]logrus.Level{
	LevelDebug:    logrus.DebugLevel,
	LevelInfo:     logrus.InfoLevel,
	LevelWarning:  logrus.WarnLevel,
	LevelError:    logrus.ErrorLevel,
	LevelCritical: logrus.FatalLevel,
}

// SetLevel configures the minimum severity that reaches stderr. An
// unrecognized level is silently ignored, leaving the current level.
func SetLevel(l Level) {
	if lv, ok := levels[l]; ok {
		std.SetLevel(lv)
	}
}

func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }

// Criticalf logs at the highest severity without terminating the
// process; the boundary logs one line and the caller decides the exit
// code.
func Criticalf(format string, args ...any) { std.Logf(logrus.FatalLevel, format, args...) }
