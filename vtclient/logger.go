package vtclient

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/stoewer/go-strcase"
)

// Logger is the minimal logging sink the client writes to. Embedders
// supply their own implementation; NoopLogger is the default.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}

// FileLogger writes timestamped log lines to a file.
type FileLogger struct {
	file *os.File
	mu   sync.Mutex
}

// NewFileLogger opens (creating/appending) a log file.
func NewFileLogger(path string) (*FileLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: file}, nil
}

func (l *FileLogger) log(level, format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.file, "[%s] %s: %s\n", timestamp, level, msg)
}

func (l *FileLogger) Debug(format string, args ...interface{}) { l.log("DEBUG", format, args...) }
func (l *FileLogger) Info(format string, args ...interface{})  { l.log("INFO", format, args...) }
func (l *FileLogger) Error(format string, args ...interface{}) { l.log("ERROR", format, args...) }

// Close closes the underlying file.
func (l *FileLogger) Close() error {
	if l != nil && l.file != nil {
		return l.file.Close()
	}
	return nil
}

// logField renders a frame-type or state name as a stable snake_case key,
// e.g. for structured-looking log lines ("state=ready_for_object_pool").
func logField(name string) string {
	return strcase.SnakeCase(name)
}

// logTransition formats a state-machine transition for Logger.Info.
func logTransition(from, to ConnectionState) string {
	return fmt.Sprintf("%s -> %s", logField(from.String()), logField(to.String()))
}
