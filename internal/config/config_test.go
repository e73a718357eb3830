//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexflint/go-arg"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/file-report/internal/clock"
	"github.com/joe/file-report/internal/config"
	"github.com/joe/file-report/internal/report"
)

var fixedClock = clock.Fixed{At: time.Date(2024, time.March, 1, 9, 5, 7, 0, time.Local)}

func builtInDefaults() *config.Config {
	return &config.Config{
		Directory: config.DefaultDirectory,
		OutputDir: config.DefaultOutputDir,
		LogFile:   config.DefaultLogFile,
	}
}

func parse(args ...string) (*config.Config, string, string, error) {
	var stdout, stderr bytes.Buffer

	cfg, err := config.Parse(args, builtInDefaults(), fixedClock, &stdout, &stderr)

	return cfg, stdout.String(), stderr.String(), err
}

func TestConfigDescription(t *testing.T) {
	t.Parallel()

	if (config.Config{}).Description() == "" {
		t.Error("Description() should not be empty")
	}
}

func TestConfigVersion(t *testing.T) {
	t.Parallel()

	if (config.Config{}).Version() == "" {
		t.Error("Version() should not be empty")
	}
}

func TestDefaultOutputName(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	g.Expect(config.DefaultOutputName(fixedClock.At)).To(Equal("file_report_2024-03-01_09-05-07.txt"))
}

func TestParse_AllPositionals(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg, _, _, err := parse("report", "/srv/data", "out.txt")

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Action).To(Equal("report"))
	g.Expect(cfg.Directory).To(Equal("/srv/data"))
	g.Expect(cfg.Output).To(Equal("out.txt"))
	g.Expect(cfg.OutputDir).To(Equal("logs"))
	g.Expect(cfg.LogPath()).To(Equal(filepath.Join("logs", "integrity_log.txt")))
}

func TestParse_DefaultOutputName(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg, _, _, err := parse("report", "/srv/data")

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Output).To(Equal("file_report_2024-03-01_09-05-07.txt"))
}

func TestParse_DefaultDirectory(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg, _, _, err := parse("report")

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Directory).To(Equal(config.DefaultDirectory))
}

func TestParse_Flags(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg, _, _, err := parse("report", "data",
		"--output-dir", "/tmp/reports",
		"--log-file", "/var/log/file-report.log",
		"--pattern", "**/*.txt",
		"--relative", "--create-missing", "-v")

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.LogPath()).To(Equal("/var/log/file-report.log"))
	g.Expect(cfg.Verbose).To(BeTrue())
	g.Expect(cfg.ReportOptions()).To(Equal(report.Options{
		OutputDir:     "/tmp/reports",
		Pattern:       "**/*.txt",
		Relative:      true,
		CreateMissing: true,
	}))
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{},
		{"report", "dir", "out.txt", "extra"},
		{"report", "--no-such-flag"},
	} {
		g := NewWithT(t)
		cfg, _, stderr, err := parse(args...)

		g.Expect(cfg).To(BeNil())
		g.Expect(errors.Is(err, config.ErrUsage)).To(BeTrue(), "args %v", args)
		g.Expect(stderr).To(ContainSubstring("Usage: file-report"))
	}
}

func TestParse_InvalidAction(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	_, _, _, err := parse("delete", "dir")

	g.Expect(errors.Is(err, config.ErrInvalidAction)).To(BeTrue())
}

func TestParse_InvalidPattern(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	_, _, _, err := parse("report", "dir", "--pattern", "[oops")

	g.Expect(errors.Is(err, report.ErrInvalidPattern)).To(BeTrue())
}

func TestParse_HelpAndVersion(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, stdout, _, err := parse("--help")
	g.Expect(errors.Is(err, arg.ErrHelp)).To(BeTrue())
	g.Expect(stdout).To(ContainSubstring("--create-missing"))

	_, stdout, _, err = parse("--version")
	g.Expect(errors.Is(err, arg.ErrVersion)).To(BeTrue())
	g.Expect(stdout).To(Equal("file-report 1.0.0\n"))
}

func TestParse_DoesNotModifyDefaults(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	defaults := builtInDefaults()

	_, err := config.Parse([]string{"report", "x", "--output-dir", "elsewhere"}, defaults, fixedClock, &bytes.Buffer{}, &bytes.Buffer{})

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(defaults.OutputDir).To(Equal(config.DefaultOutputDir))
}

func TestPostProcessConfig_FillsLogFile(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg, err := config.PostProcessConfig(&config.Config{Action: "report", OutputDir: "out"}, fixedClock)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.LogPath()).To(Equal(filepath.Join("out", config.DefaultLogFile)))
	g.Expect(cfg.Directory).To(Equal(config.DefaultDirectory))
}

//nolint:paralleltest // t.Setenv cannot be used with parallel tests
func TestLoadDefaults_BuiltIn(t *testing.T) {
	g := NewWithT(t)
	t.Setenv("FILE_REPORT_OUTPUT_DIR", "")

	cfg, err := config.LoadDefaults(t.TempDir())

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.Directory).To(Equal(config.DefaultDirectory))
	g.Expect(cfg.LogFile).To(Equal(config.DefaultLogFile))
}

//nolint:paralleltest // t.Setenv cannot be used with parallel tests
func TestLoadDefaults_ConfigFileAndEnv(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	yaml := "output_dir: from-file\npattern: \"*.log\"\nrelative: true\n"
	g.Expect(os.WriteFile(filepath.Join(dir, ".file-report.yaml"), []byte(yaml), 0o644)).To(Succeed())

	t.Setenv("FILE_REPORT_OUTPUT_DIR", "from-env")
	t.Setenv("FILE_REPORT_CREATE_MISSING", "true")

	cfg, err := config.LoadDefaults(dir)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(cfg.OutputDir).To(Equal("from-env"), "env beats the config file")
	g.Expect(cfg.Pattern).To(Equal("*.log"))
	g.Expect(cfg.Relative).To(BeTrue())
	g.Expect(cfg.CreateMissing).To(BeTrue())

	// Flags still win over both.
	parsed, err := config.Parse([]string{"report", "--output-dir", "from-flag"}, cfg, fixedClock, &bytes.Buffer{}, &bytes.Buffer{})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(parsed.OutputDir).To(Equal("from-flag"))
	g.Expect(parsed.Pattern).To(Equal("*.log"))
}

//nolint:paralleltest // t.Setenv cannot be used with parallel tests
func TestLoadDefaults_MalformedConfigFile(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	g.Expect(os.WriteFile(filepath.Join(dir, ".file-report.yaml"), []byte("output_dir: [unterminated\n"), 0o644)).To(Succeed())

	_, err := config.LoadDefaults(dir)
	g.Expect(err).To(HaveOccurred())
}
