// Package logger provides leveled logging with optional colors on top of
// logrus. It supports -v (verbose) and --debug flags. In debug mode, logs are
// also written to a rotating file at $HOME/.bundlekit/logs/bundlekit.log for
// troubleshooting.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelVerbose
	LevelDebug
)

// logrus has no verbose level, so verbose maps to Debug and debug to Trace.
var logrusLevels = map[Level]logrus.Level{
	LevelError:   logrus.ErrorLevel,
	LevelWarn:    logrus.WarnLevel,
	LevelInfo:    logrus.InfoLevel,
	LevelVerbose: logrus.DebugLevel,
	LevelDebug:   logrus.TraceLevel,
}

// Logger provides leveled logging
type Logger struct {
	mu      sync.Mutex
	level   Level
	base    *logrus.Logger
	file    io.WriteCloser
	timings map[string]time.Time
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Initialize sets up the global logger
func Initialize(verbose, debug bool) {
	once.Do(func() {
		level := LevelInfo
		if verbose {
			level = LevelVerbose
		}
		if debug {
			level = LevelDebug
		}

		defaultLogger = newLogger(level, os.Stderr, isTerminal())

		if debug {
			logFile := filepath.Join(os.ExpandEnv("$HOME/.bundlekit/logs"), "bundlekit.log")
			if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
				rotating := &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    10, // MB
					MaxBackups: 5,
					MaxAge:     14, // days
					Compress:   true,
				}
				defaultLogger.attachFile(rotating)
				Debugf("Logging to %s", logFile)
			}
		}
	})
}

func newLogger(level Level, out io.Writer, colors bool) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrusLevels[level])
	base.SetFormatter(&lineFormatter{colors: colors})
	return &Logger{
		level:   level,
		base:    base,
		timings: make(map[string]time.Time),
	}
}

// attachFile mirrors every entry, uncolored, into w.
func (l *Logger) attachFile(w io.WriteCloser) {
	l.file = w
	l.base.AddHook(&fileHook{out: w, formatter: &lineFormatter{}})
}

// SetOutput redirects console logging. The terminal UI passes io.Discard
// while it owns the screen; the debug file keeps receiving entries.
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.base.SetOutput(w)
		defaultLogger.mu.Unlock()
	}
}

// Close closes any resources used by the logger
func Close() {
	if defaultLogger != nil && defaultLogger.file != nil {
		_ = defaultLogger.file.Close()
	}
}

// Info logs at info level (always shown)
func Info(msg string) {
	if defaultLogger != nil {
		defaultLogger.log(LevelInfo, msg)
	}
}
func Infof(format string, args ...interface{}) { Info(fmt.Sprintf(format, args...)) }

// Verbose logs at verbose level (shown with -v)
func Verbose(msg string) {
	if defaultLogger != nil {
		defaultLogger.log(LevelVerbose, msg)
	}
}
func Verbosef(format string, args ...interface{}) { Verbose(fmt.Sprintf(format, args...)) }

// Debug logs at debug level (shown with --debug)
func Debug(msg string) {
	if defaultLogger != nil {
		defaultLogger.log(LevelDebug, msg)
	}
}
func Debugf(format string, args ...interface{}) { Debug(fmt.Sprintf(format, args...)) }

// Warn logs warnings
func Warn(msg string) {
	if defaultLogger != nil {
		defaultLogger.log(LevelWarn, msg)
	}
}
func Warnf(format string, args ...interface{}) { Warn(fmt.Sprintf(format, args...)) }

// Error logs errors (always shown)
func Error(msg string) {
	if defaultLogger != nil {
		defaultLogger.log(LevelError, msg)
	}
}
func Errorf(format string, args ...interface{}) { Error(fmt.Sprintf(format, args...)) }

// StartTimer begins timing an operation
func StartTimer(operation string) {
	if defaultLogger != nil && defaultLogger.level >= LevelVerbose {
		defaultLogger.mu.Lock()
		defaultLogger.timings[operation] = time.Now()
		defaultLogger.mu.Unlock()
		Verbosef("⏱  Starting: %s", operation)
	}
}

// EndTimer logs the duration of an operation
func EndTimer(operation string) {
	if defaultLogger != nil && defaultLogger.level >= LevelVerbose {
		defaultLogger.mu.Lock()
		if start, ok := defaultLogger.timings[operation]; ok {
			delete(defaultLogger.timings, operation)
			defaultLogger.mu.Unlock()
			Verbosef("✓ Completed %s in %v", operation, time.Since(start))
		} else {
			defaultLogger.mu.Unlock()
		}
	}
}

// log hands a message to logrus, attaching the caller in debug mode.
func (l *Logger) log(level Level, msg string) {
	if level > l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := logrus.NewEntry(l.base)
	if level == LevelDebug {
		if _, file, line, ok := runtime.Caller(3); ok {
			entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}
	entry.Log(logrusLevels[level], strings.TrimRight(msg, "\n"))
}

// lineFormatter renders "[15:04:05] LEVEL [caller]: message".
type lineFormatter struct {
	colors bool
}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix, color string
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		prefix, color = "ERROR", "\033[31m" // red
	case logrus.WarnLevel:
		prefix, color = "WARN", "\033[33m" // yellow
	case logrus.InfoLevel:
		prefix, color = "INFO", "\033[32m" // green
	case logrus.DebugLevel:
		prefix, color = "VERBOSE", "\033[36m" // cyan
	case logrus.TraceLevel:
		prefix, color = "DEBUG", "\033[35m" // magenta
	}

	caller := ""
	if c, ok := entry.Data["caller"].(string); ok {
		caller = fmt.Sprintf(" [%s]", c)
	}

	timestamp := entry.Time.Format("15:04:05")
	if f.colors {
		return []byte(fmt.Sprintf("[%s] %s%s%s%s: %s\n", timestamp, color, prefix, "\033[0m", caller, entry.Message)), nil
	}
	return []byte(fmt.Sprintf("[%s] %s%s: %s\n", timestamp, prefix, caller, entry.Message)), nil
}

type fileHook struct {
	out       io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
