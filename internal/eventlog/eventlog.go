// Package eventlog records run events to an append-only log file and echoes
// them to the console.
package eventlog

import (
	"io"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joe/file-report/internal/clock"
	"github.com/joe/file-report/pkg/filesystem"
)

// Logger writes `[<unix-seconds>] <message>` lines to the log file and the
// bare message to stdout.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger appending to logPath on fsys. The log directory is
// created on every write, so it may not exist yet.
func New(fsys filesystem.FileSystem, logPath string, stdout io.Writer, clk clock.Clock) *Logger {
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileEncoderConfig()),
		&appendSink{fsys: fsys, path: logPath},
		zapcore.DebugLevel,
	)
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey: "msg",
			LineEnding: zapcore.DefaultLineEnding,
		}),
		zapcore.AddSync(stdout),
		zapcore.DebugLevel,
	)

	return &Logger{
		zap: zap.New(
			zapcore.NewTee(fileCore, consoleCore),
			zap.WithClock(clk),
			zap.ErrorOutput(zapcore.AddSync(io.Discard)),
		),
	}
}

// Event records message. It never fails: if the log file cannot be written
// only the console copy appears.
func (l *Logger) Event(message string) {
	l.zap.Info(message)
}

// Sync flushes the console writer.
func (l *Logger) Sync() {
	_ = l.zap.Sync()
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       epochSeconds,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func epochSeconds(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + strconv.FormatInt(t.Unix(), 10) + "]")
}

// appendSink opens, writes and closes the log file on every entry.
type appendSink struct {
	fsys filesystem.FileSystem
	path string
}

// Sync is a no-op; every Write is already closed out.
func (s *appendSink) Sync() error {
	return nil
}

// Write reports success even when the file is unavailable so the tee keeps
// writing to the console.
func (s *appendSink) Write(p []byte) (int, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fsys.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // standard directory mode
			return len(p), nil
		}
	}

	file, err := s.fsys.OpenAppend(s.path)
	if err != nil {
		return len(p), nil
	}

	defer func() { _ = file.Close() }()

	_, _ = file.Write(p)

	return len(p), nil
}
