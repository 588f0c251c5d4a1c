package logging

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

// Setup points the shared logger at a rotating log file next to the storage
// path. Safe to call more than once; the last call wins.
func Setup(storagePath string) {
	mu.Lock()
	defer mu.Unlock()

	logger = log.NewWithOptions(&lumberjack.Logger{
		Filename:   filepath.Join(filepath.Dir(storagePath), "growlog.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}, log.Options{
		ReportTimestamp: true,
		Prefix:          "growlog",
	})
}

// Logger returns the shared logger. Before Setup it logs to stderr so early
// failures are still visible.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = log.Default()
	}
	return logger
}
