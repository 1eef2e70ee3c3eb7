// Package logger holds the process-wide zap logger. Output goes to a file
// because the terminal belongs to the screen.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logFile *os.File
)

// Init opens the log file, truncating the previous run, and installs the
// global logger.
func Init(debug bool) error {
	logPath, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	Close()
	logFile = f
	SetDebug(debug)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(f), level)
	// Skip the helper frame so callers show up in the caller field.
	L = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	S = L.Sugar()

	S.Infow("logger initialized", "path", logPath, "debug", debug)
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.NameKey = "component"
	cfg.FunctionKey = zapcore.OmitKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// SetDebug switches between debug and info level without reopening the file.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// DebugEnabled reports whether debug lines are written.
func DebugEnabled() bool {
	return S != nil && level.Enabled(zapcore.DebugLevel)
}

// Close flushes and closes the log file.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	L = nil
	S = nil
}

// Path returns the log file location.
func Path() (string, error) {
	if v := os.Getenv("TATEMEMO_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("TATEMEMO_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tatememo.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tatememo", "tatememo.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tatememo", "tatememo.log"), nil
}

// Component is a named logger for one package. It resolves the global
// logger on every call, so a package level Component works before Init.
type Component string

func (c Component) sugar() *zap.SugaredLogger {
	if S == nil {
		return nil
	}
	return S.Named(string(c))
}

func (c Component) Debug(msg string, keysAndValues ...interface{}) {
	if s := c.sugar(); s != nil {
		s.Debugw(msg, keysAndValues...)
	}
}

func (c Component) Info(msg string, keysAndValues ...interface{}) {
	if s := c.sugar(); s != nil {
		s.Infow(msg, keysAndValues...)
	}
}

func (c Component) Warn(msg string, keysAndValues ...interface{}) {
	if s := c.sugar(); s != nil {
		s.Warnw(msg, keysAndValues...)
	}
}

func (c Component) Error(msg string, keysAndValues ...interface{}) {
	if s := c.sugar(); s != nil {
		s.Errorw(msg, keysAndValues...)
	}
}

// Package helpers log under the "app" component. They are no-ops until Init.

const app Component = "app"

func Debug(msg string, keysAndValues ...interface{}) {
	if s := app.sugar(); s != nil {
		s.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if s := app.sugar(); s != nil {
		s.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if s := app.sugar(); s != nil {
		s.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if s := app.sugar(); s != nil {
		s.Errorw(msg, keysAndValues...)
	}
}
