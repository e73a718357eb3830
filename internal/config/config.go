// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/spf13/viper"

	"github.com/joe/file-report/internal/clock"
	"github.com/joe/file-report/internal/report"
	"github.com/joe/file-report/pkg/filesystem"
)

// ActionReport is the only supported action.
const ActionReport = "report"

// Defaults used when neither flags, env vars nor the config file set a value.
const (
	DefaultDirectory = "target_folder"
	DefaultLogFile   = "integrity_log.txt"
	DefaultOutputDir = "logs"
)

// EnvPrefix prefixes environment overrides, e.g. FILE_REPORT_OUTPUT_DIR.
const EnvPrefix = "FILE_REPORT"

// Exported variables.
var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidDirectory = errors.New("invalid directory")
	ErrUsage            = errors.New("usage error")
)

const outputTimestampLayout = "2006-01-02_15-04-05"

// Config holds the application configuration
type Config struct {
	Action    string `arg:"positional,required" help:"action to perform (report)" mapstructure:"-"`
	Directory string `arg:"positional" help:"directory to scan, a local path or sftp://user@host[:port]/path" mapstructure:"directory"`
	Output    string `arg:"positional" help:"report file name (default: file_report_<timestamp>.txt)" mapstructure:"-"`

	OutputDir     string `arg:"-o,--output-dir" help:"folder for reports and the log file" mapstructure:"output_dir"`
	LogFile       string `arg:"--log-file" help:"log file name, relative to the output folder" mapstructure:"log_file"`
	Pattern       string `arg:"-p,--pattern" help:"only list files whose relative path matches this glob (e.g. **/*.txt)" mapstructure:"pattern"`
	Relative      bool   `arg:"--relative" help:"print paths relative to the scanned directory" mapstructure:"relative"`
	CreateMissing bool   `arg:"--create-missing" help:"create the scanned directory if it does not exist" mapstructure:"create_missing"`
	Verbose       bool   `arg:"-v,--verbose" help:"print per-file diagnostics" mapstructure:"verbose"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Writes a report of every file under a directory with its size and last-modified time"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "file-report 1.0.0"
}

// LogPath returns the log file location. Relative log file names live in
// the output folder.
func (cfg *Config) LogPath() string {
	if filepath.IsAbs(cfg.LogFile) {
		return cfg.LogFile
	}

	return filepath.Join(cfg.OutputDir, cfg.LogFile)
}

// ReportOptions returns the generator options for this configuration.
func (cfg *Config) ReportOptions() report.Options {
	return report.Options{
		OutputDir:     cfg.OutputDir,
		Pattern:       cfg.Pattern,
		Relative:      cfg.Relative,
		CreateMissing: cfg.CreateMissing,
	}
}

// DefaultOutputName returns file_report_<YYYY-MM-DD_HH-MM-SS>.txt for now.
func DefaultOutputName(now time.Time) string {
	return "file_report_" + now.Format(outputTimestampLayout) + ".txt"
}

// LoadDefaults builds the pre-flag configuration from built-in defaults,
// an optional .file-report.yaml in configDir, and FILE_REPORT_* env vars.
func LoadDefaults(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("directory", DefaultDirectory)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("pattern", "")
	v.SetDefault("relative", false)
	v.SetDefault("create_missing", false)
	v.SetDefault("verbose", false)

	v.SetConfigName(".file-report")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &cfg, nil
}

// Parse applies command-line args on top of defaults and post-processes the
// result. Help and version requests are written to stdout and returned as
// arg.ErrHelp / arg.ErrVersion. Malformed command lines print usage to
// stderr and return ErrUsage.
func Parse(args []string, defaults *Config, clk clock.Clock, stdout, stderr io.Writer) (*Config, error) {
	cfg := *defaults

	parser, err := arg.NewParser(arg.Config{Program: "file-report"}, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)

	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)

		return nil, err
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, cfg.Version())

		return nil, err
	case err != nil:
		parser.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)

		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return PostProcessConfig(&cfg, clk)
}

// PostProcessConfig validates a parsed config and fills in derived values.
func PostProcessConfig(cfg *Config, clk clock.Clock) (*Config, error) {
	if cfg.Action != ActionReport {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, cfg.Action)
	}

	if cfg.Directory == "" {
		cfg.Directory = DefaultDirectory
	}

	if _, err := filesystem.ParsePath(cfg.Directory); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	if err := report.ValidatePattern(cfg.Pattern); err != nil {
		return nil, err
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutputName(clk.Now())
	}

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	return cfg, nil
}
