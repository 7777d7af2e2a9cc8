package logging

import (
	"errors"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logger is the global logger instance.
var Logger = zap.NewNop()

// Setup builds the process logger. Debug selects the development config at
// debug level; otherwise the production config is used at warn level so a
// normal run only reports problems. Both write to stderr, leaving stdout
// for the document.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.InitialFields = map[string]interface{}{
		"app":     appName,
		"version": appVersion,
	}

	l, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = l
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}

// Sync flushes the logger. Syncing a stderr that is a pipe or a character
// device fails with EINVAL or ENOTTY on some platforms, so it is only
// attempted for terminals and regular files and those errors are dropped.
func Sync(l *zap.Logger) error {
	if l == nil {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return nil
	}
	err := l.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) ||
		strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
		return nil
	}
	return err
}

func isRegularFile(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
