package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	writer io.Writer = os.Stdout
	level            = slog.LevelInfo
	logger           = newLogger(writer, level)
)

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Info(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) {
	current().Debug(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...any) {
	current().Error(fmt.Sprintf(format, args...))
}

// SetLevel rebuilds the logger with the given minimum level, keeping the writer.
func SetLevel(lvl slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	logger = newLogger(writer, level)
}

// SetWriter redirects log output, keeping the level.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
	logger = newLogger(writer, level)
}
