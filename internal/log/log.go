// Package log configures the process-wide slog logger. The TUI owns the
// terminal, so logs go to a rotated file.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup installs a JSON slog handler writing to logFile. Only the first call
// has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 0,
			MaxAge:     30, // days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// Initialized reports whether [Setup] ran.
func Initialized() bool {
	return initialized.Load()
}

// File returns the path of the log file inside dataDir.
func File(dataDir string) string {
	return filepath.Join(dataDir, "logs", "flick.log")
}

// RecoverPanic logs a panic with its stack to a crash file and then calls
// cleanup, if any.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}
	filename := fmt.Sprintf("flick-panic-%s-%s.log", name, time.Now().Format("20060102-150405"))
	if f, err := os.Create(filepath.Join(os.TempDir(), filename)); err == nil {
		fmt.Fprintf(f, "panic in %s: %v\n", name, r)
		f.Close()
	}
	slog.Error("Recovered from panic", "name", name, "panic", r)
	if cleanup != nil {
		cleanup()
	}
}
