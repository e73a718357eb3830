package eventlog_test

import (
	"bytes"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
	"go.uber.org/zap/zapcore"

	"github.com/joe/file-report/internal/clock"
	"github.com/joe/file-report/internal/eventlog"
	"github.com/joe/file-report/pkg/filesystem"
)

var fixedClock = clock.Fixed{At: time.Unix(1700000000, 0)}

func TestEvent_AppendsEpochLineAndEchoesMessage(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := filesystem.NewMockFileSystem()

	var stdout bytes.Buffer

	logger := eventlog.New(fsys, "/logs/integrity_log.txt", &stdout, fixedClock)
	logger.Event("File report generated in /logs/r.txt")

	content, err := fsys.GetFile("/logs/integrity_log.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(content)).To(Equal("[1700000000] File report generated in /logs/r.txt\n"))
	g.Expect(stdout.String()).To(Equal("File report generated in /logs/r.txt\n"))
}

func TestEvent_WritesMessageBytesUnescaped(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := filesystem.NewMockFileSystem()

	var stdout bytes.Buffer

	message := "Directory /data/odd\nname\xff does not exist."
	eventlog.New(fsys, "/logs/log.txt", &stdout, fixedClock).Event(message)

	content, err := fsys.GetFile("/logs/log.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(content)).To(Equal("[1700000000] " + message + "\n"))
	g.Expect(stdout.String()).To(Equal(message + "\n"))
}

func TestEvent_AppendsAcrossCallsAndLoggers(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := filesystem.NewMockFileSystem()

	var stdout bytes.Buffer

	eventlog.New(fsys, "/logs/log.txt", &stdout, fixedClock).Event("first")

	// No Sync: each event must already be on disk.
	content, err := fsys.GetFile("/logs/log.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(content)).To(Equal("[1700000000] first\n"))

	later := clock.Fixed{At: time.Unix(1700000042, 0)}
	eventlog.New(fsys, "/logs/log.txt", &stdout, later).Event("second")

	content, err = fsys.GetFile("/logs/log.txt")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(content)).To(Equal("[1700000000] first\n[1700000042] second\n"))
	g.Expect(stdout.String()).To(Equal("first\nsecond\n"))
}

func TestEvent_UnwritableLogStillEchoes(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := filesystem.NewMockFileSystem()
	fsys.DenyWrites("/logs")

	var stdout bytes.Buffer

	logger := eventlog.New(fsys, "/logs/log.txt", &stdout, fixedClock)
	logger.Event("Directory /data does not exist.")
	logger.Sync()

	g.Expect(fsys.Exists("/logs/log.txt")).To(BeFalse())
	g.Expect(stdout.String()).To(Equal("Directory /data does not exist.\n"))
}

func TestEvent_LogPathBlockedByFile(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	fsys := filesystem.NewMockFileSystem()
	fsys.AddFile("/logs", []byte("not a dir"), fixedClock.At)

	var stdout bytes.Buffer

	eventlog.New(fsys, "/logs/log.txt", &stdout, fixedClock).Event("still printed")

	g.Expect(stdout.String()).To(Equal("still printed\n"))
}

func TestEvent_RealFileSystem(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dir := t.TempDir()
	fsys := filesystem.NewRealFileSystem()
	logPath := fsys.Join(dir, "nested", "logs", "integrity_log.txt")

	var stdout bytes.Buffer

	eventlog.New(fsys, logPath, &stdout, fixedClock).Event("hello")

	info, err := fsys.Stat(logPath)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(info.Size()).To(BeEquivalentTo(len("[1700000000] hello\n")))
}

func TestNewDiagnostics(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	for _, verbose := range []bool{true, false} {
		logger, err := eventlog.NewDiagnostics(verbose)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(logger).ToNot(BeNil())
		g.Expect(logger.Core().Enabled(zapcore.DebugLevel)).To(Equal(verbose), "debug enabled only when verbose")
	}
}
