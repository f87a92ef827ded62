// Package logger provides the shared logging facility for dockling.
//
// The package wraps a single logrus logger behind printf-style helpers so
// callers never touch the logrus global instance directly. Output goes to
// stderr, keeping stdout free for command output (banners, tag listings,
// usage hints) that operators may want to pipe or copy.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// log is the process-wide logger instance.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// SetVerbose switches the logger between info and debug level.
//
// Called once from the root command when the --verbose flag is parsed.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output. Used by tests to capture log lines.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	log.Infof(format, args...)
}

// Warn logs a formatted message at warning level.
func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...any) {
	log.Errorf(format, args...)
}
