// Package logger provides the logging used across taskxm.
// It wraps zap with custom levels (SUCCESS and FAIL), a colored console
// encoder that prints a short context prefix, and an optional JSON file
// output rotated by lumberjack.
//
// Basic usage:
//
//	opts := logger.DefaultOptions()
//	opts.ConsoleLevel = logger.DebugLevel
//	log, err := logger.NewLoggerWithCustomSink(opts, os.Stderr)
//	...
//	defer log.Sync()
//
//	log.Infof("loaded %d tasks", n)
//	log.Successf("tasks saved to %s", path)
//
// Components take a *Logger explicitly; NewNop returns one that discards everything.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the verbosity of a log entry. Custom levels are mapped onto zap
// levels and told apart by the console encoder through the "customlevel" field.
type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel
	// SuccessLevel marks a completed user-visible operation. Logged at zap Info.
	SuccessLevel
	WarnLevel
	ErrorLevel
	// FailLevel marks a user-visible operation that was refused. Logged at zap Error.
	FailLevel
)

const (
	customLevelKey = "customlevel"
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case SuccessLevel:
		return "success"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FailLevel:
		return "fail"
	default:
		return fmt.Sprintf("level(%d)", l)
	}
}

// CapitalString returns the uppercase name used as the console prefix.
func (l Level) CapitalString() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case SuccessLevel:
		return "SUCCESS"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FailLevel:
		return "FAIL"
	default:
		return fmt.Sprintf("LEVEL(%d)", l)
	}
}

// ToZapLevel converts l to the zap level it is written at.
func (l Level) ToZapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel, SuccessLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel, FailLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel accepts the names returned by Level.String, case insensitive.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, l := range []Level{DebugLevel, InfoLevel, SuccessLevel, WarnLevel, ErrorLevel, FailLevel} {
		if l.String() == name {
			return l, nil
		}
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Options configures a Logger.
type Options struct {
	ConsoleLevel  Level
	FileLevel     Level
	ConsoleOutput bool
	FileOutput    bool
	ColorConsole  bool
	// LogFilePath is required when FileOutput is true.
	LogFilePath string
	// MaxSizeMB and MaxBackups control lumberjack rotation of the log file.
	MaxSizeMB       int
	MaxBackups      int
	TimestampFormat string
}

// DefaultOptions logs INFO and above to a colored console, with file output disabled.
func DefaultOptions() Options {
	return Options{
		ConsoleLevel:    InfoLevel,
		FileLevel:       DebugLevel,
		ConsoleOutput:   true,
		FileOutput:      false,
		ColorConsole:    true,
		LogFilePath:     "taskxm.log",
		MaxSizeMB:       10,
		MaxBackups:      3,
		TimestampFormat: time.RFC3339,
	}
}

// Logger wraps zap.SugaredLogger with the custom levels.
type Logger struct {
	*zap.SugaredLogger
	opts Options
}

// NewLogger builds a logger writing to os.Stdout and, when enabled, the log file.
func NewLogger(opts Options) (*Logger, error) {
	return newLogger(opts, os.Stdout)
}

// NewLoggerWithCustomSink is NewLogger with the console output sent to sink.
func NewLoggerWithCustomSink(opts Options, sink io.Writer) (*Logger, error) {
	return newLogger(opts, sink)
}

// NewNop returns a logger that drops every entry.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newLogger(opts Options, console io.Writer) (*Logger, error) {
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = time.RFC3339
	}

	var cores []zapcore.Core

	if opts.ConsoleOutput {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "time"
		cfg.LevelKey = "" // the console encoder prints its own level prefix
		cfg.CallerKey = ""
		cfg.MessageKey = "msg"
		enc := NewConsoleEncoder(cfg, opts)
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(console), levelEnabler(opts.ConsoleLevel)))
	}

	if opts.FileOutput {
		if opts.LogFilePath == "" {
			return nil, fmt.Errorf("log file path cannot be empty when file output is enabled")
		}
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		rotator := &lumberjack.Logger{
			Filename:   opts.LogFilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(rotator), levelEnabler(opts.FileLevel)))
	}

	if len(cores) == 0 {
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), opts: opts}, nil
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{SugaredLogger: z.Sugar(), opts: opts}, nil
}

// levelEnabler keeps SUCCESS visible whenever INFO is, since both share zap's InfoLevel.
func levelEnabler(min Level) zap.LevelEnablerFunc {
	return func(lvl zapcore.Level) bool {
		if min == SuccessLevel {
			return lvl >= zapcore.InfoLevel
		}
		return lvl >= min.ToZapLevel()
	}
}

func (l *Logger) log(level Level, template string, args ...interface{}) {
	if l == nil || l.SugaredLogger == nil {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level.CapitalString(), fmt.Sprintf(template, args...))
		return
	}

	msg := fmt.Sprintf(template, args...)
	s := l.SugaredLogger.WithOptions(zap.AddCallerSkip(1))
	field := zap.String(customLevelKey, level.CapitalString())

	switch level {
	case DebugLevel:
		s.Debugw(msg, field)
	case InfoLevel, SuccessLevel:
		s.Infow(msg, field)
	case WarnLevel:
		s.Warnw(msg, field)
	case ErrorLevel, FailLevel:
		s.Errorw(msg, field)
	default:
		s.Infow(msg, field)
	}
}

func (l *Logger) Debugf(template string, args ...interface{})   { l.log(DebugLevel, template, args...) }
func (l *Logger) Infof(template string, args ...interface{})    { l.log(InfoLevel, template, args...) }
func (l *Logger) Successf(template string, args ...interface{}) { l.log(SuccessLevel, template, args...) }
func (l *Logger) Warnf(template string, args ...interface{})    { l.log(WarnLevel, template, args...) }
func (l *Logger) Errorf(template string, args ...interface{})   { l.log(ErrorLevel, template, args...) }

// Failf logs at FailLevel. Unlike zap's Fatal it does not exit.
func (l *Logger) Failf(template string, args ...interface{}) { l.log(FailLevel, template, args...) }

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil || l.SugaredLogger == nil {
		return l
	}
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), opts: l.opts}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	if l == nil || l.SugaredLogger == nil {
		return nil
	}
	return l.SugaredLogger.Sync()
}
