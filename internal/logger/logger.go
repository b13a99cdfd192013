// Package logger provides the leveled stderr logging used by both the
// waiter and the check runner.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

const flags = log.Ldate | log.Ltime | log.Lmicroseconds

var (
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
)

func init() {
	Init(WARN)
}

// LevelFromString parses a case-insensitive level name, defaulting to WARN
// for anything unrecognized.
func LevelFromString(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN
	}
}

// Init (re)configures the package loggers. All diagnostics go to stderr,
// per the CLI contract ("Standard error carries diagnostics"); none of this
// package ever writes to stdout.
func Init(level Level) {
	debugLogger = log.New(discardUnless(level <= DEBUG), "DEBUG - ", flags)
	infoLogger = log.New(discardUnless(level <= INFO), "INFO  - ", flags)
	warnLogger = log.New(discardUnless(level <= WARN), "WARN  - ", flags)
	errorLogger = log.New(discardUnless(level <= ERROR), "ERROR - ", flags)
}

func discardUnless(enabled bool) io.Writer {
	if enabled {
		return os.Stderr
	}
	return io.Discard
}

func Debugf(format string, args ...interface{}) { debugLogger.Printf(format, args...) }
func Infof(format string, args ...interface{})  { infoLogger.Printf(format, args...) }
func Warnf(format string, args ...interface{})  { warnLogger.Printf(format, args...) }
func Errorf(format string, args ...interface{}) { errorLogger.Printf(format, args...) }
