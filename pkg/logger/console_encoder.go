package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorMagenta = "\x1b[35m"
	colorReset   = "\x1b[0m"
)

var _bufferPool = buffer.NewPool()

// contextKeys are printed as a compact prefix, in this order, instead of as key=value pairs.
var contextKeys = []struct{ key, short string }{
	{"session", "S"},
	{"op", "op"},
	{"task_id", "T"},
}

// consoleEncoder renders "<time> [ctx] [LEVEL] message k=v ...".
// Fields added through With are kept in the embedded map encoder.
type consoleEncoder struct {
	*zapcore.MapObjectEncoder
	cfg  zapcore.EncoderConfig
	opts Options
}

// NewConsoleEncoder creates the console encoder. Colors are applied only when opts.ColorConsole is set.
func NewConsoleEncoder(cfg zapcore.EncoderConfig, opts Options) zapcore.Encoder {
	return &consoleEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              cfg,
		opts:             opts,
	}
}

func (enc *consoleEncoder) Clone() zapcore.Encoder {
	clone := &consoleEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		cfg:              enc.cfg,
		opts:             enc.opts,
	}
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	all := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		all.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(all)
	}

	line := _bufferPool.Get()

	if enc.cfg.TimeKey != "" {
		line.AppendString(ent.Time.Format(enc.opts.TimestampFormat))
		line.AppendByte(' ')
	}

	var prefix strings.Builder
	for _, ck := range contextKeys {
		if v, ok := all.Fields[ck.key]; ok {
			fmt.Fprintf(&prefix, "[%s:%v]", ck.short, v)
			delete(all.Fields, ck.key)
		}
	}
	if prefix.Len() > 0 {
		line.AppendString(prefix.String())
		line.AppendByte(' ')
	}

	level := levelFromEntry(ent.Level, all.Fields[customLevelKey])
	delete(all.Fields, customLevelKey)
	line.AppendString(enc.levelString(level))
	line.AppendByte(' ')
	line.AppendString(ent.Message)

	keys := make([]string, 0, len(all.Fields))
	for k := range all.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := all.Fields[k]
		if s, ok := v.(string); ok && (s == "" || strings.ContainsAny(s, " \t")) {
			fmt.Fprintf(line, " %s=%q", k, s)
			continue
		}
		fmt.Fprintf(line, " %s=%v", k, v)
	}

	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

func (enc *consoleEncoder) levelString(l Level) string {
	s := "[" + l.CapitalString() + "]"
	if !enc.opts.ColorConsole {
		return s
	}
	switch l {
	case DebugLevel:
		return colorMagenta + s + colorReset
	case SuccessLevel:
		return colorGreen + s + colorReset
	case WarnLevel:
		return colorYellow + s + colorReset
	case ErrorLevel, FailLevel:
		return colorRed + s + colorReset
	default:
		return s
	}
}

// levelFromEntry prefers the custom level name carried in the entry fields.
func levelFromEntry(zl zapcore.Level, custom interface{}) Level {
	if name, ok := custom.(string); ok {
		if l, err := ParseLevel(name); err == nil {
			return l
		}
	}
	switch zl {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.WarnLevel:
		return WarnLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return FailLevel
	default:
		return InfoLevel
	}
}
