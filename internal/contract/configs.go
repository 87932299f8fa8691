package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/covgate/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultTargetRef = "HEAD"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for one gate invocation.
// This struct remains the "final, validated" config. The embedded
// Thresholds value is immutable per run: concurrent runs never observe
// or influence each other's thresholds.
type Config struct {
	RepoPath  string
	BaseRef   string
	TargetRef string

	// ChangedFile points to a newline-delimited path list that replaces
	// the git diff as the changed-path source. "-" reads from stdin.
	ChangedFile string

	// ParentCount overrides merge detection; 0 means detect via git.
	ParentCount int

	HeadReportPath string
	BaseReportPath string
	ReportFormat   schema.ReportFormat

	Thresholds schema.Thresholds
	Excludes   []string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	Exclude          string `mapstructure:"exclude"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from checkCmd / classifyCmd flags ---
	BaseRef        string  `mapstructure:"base-ref"`
	TargetRef      string  `mapstructure:"target-ref"`
	ChangedFile    string  `mapstructure:"changed-file"`
	ParentCount    int     `mapstructure:"parent-count"`
	HeadReport     string  `mapstructure:"head-report"`
	BaseReport     string  `mapstructure:"base-report"`
	ReportFormat   string  `mapstructure:"report-format"`
	MinLine        float64 `mapstructure:"min-line-coverage"`
	MinBranch      float64 `mapstructure:"min-branch-coverage"`
	MergeCommits   int     `mapstructure:"merge-commit-threshold"`
	SignificantPct float64 `mapstructure:"significant-decrease"`
}

// Clone returns a copy of the config safe for per-request mutation. Slices
// are copied so concurrent requests never share backing arrays.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Excludes = append([]string(nil), c.Excludes...)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseRef = input.BaseRef
	cfg.TargetRef = input.TargetRef
	if cfg.TargetRef == "" {
		cfg.TargetRef = DefaultTargetRef
	}
	cfg.ChangedFile = input.ChangedFile
	cfg.HeadReportPath = input.HeadReport
	cfg.BaseReportPath = input.BaseReport
	cfg.OutputFile = input.OutputFile

	// --- Parent count ---
	if input.ParentCount < 0 {
		return fmt.Errorf("parent-count cannot be negative (received %d)", input.ParentCount)
	}
	cfg.ParentCount = input.ParentCount

	// --- Report format ---
	cfg.ReportFormat = schema.ReportFormat(strings.ToLower(input.ReportFormat))
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = schema.AutoFormat
	}
	if _, ok := schema.ValidReportFormats[cfg.ReportFormat]; !ok {
		return fmt.Errorf("invalid report format '%s'. must be auto, json, lcov, cobertura", input.ReportFormat)
	}

	// --- Output ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, markdown", input.Output)
	}

	// --- Precision ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision
	cfg.Width = input.Width

	// --- Emoji and color flags ---
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Excludes ---
	cfg.Excludes = nil
	for _, ex := range strings.Split(input.Exclude, ",") {
		if ex = strings.TrimSpace(ex); ex != "" {
			cfg.Excludes = append(cfg.Excludes, ex)
		}
	}

	// --- History backend ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// processThresholds validates the gate thresholds and freezes them into an
// immutable value object for the run.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	if input.MinLine < 0 || input.MinLine > 100 {
		return fmt.Errorf("min-line-coverage must be within [0,100] (received %.1f)", input.MinLine)
	}
	if input.MinBranch < 0 || input.MinBranch > 100 {
		return fmt.Errorf("min-branch-coverage must be within [0,100] (received %.1f)", input.MinBranch)
	}
	if input.MergeCommits < 1 {
		return fmt.Errorf("merge-commit-threshold must be at least 1 (received %d)", input.MergeCommits)
	}
	if input.SignificantPct < 0 || input.SignificantPct > 100 {
		return fmt.Errorf("significant-decrease must be within [0,100] (received %.1f)", input.SignificantPct)
	}

	cfg.Thresholds = schema.Thresholds{
		MinLine:              input.MinLine,
		MinBranch:            input.MinBranch,
		MergeCommitThreshold: input.MergeCommits,
		SignificantDecrease:  input.SignificantPct,
	}
	return nil
}

// resolveRepoPath resolves the repository path. When git is the source of
// changed paths, the path must be inside a git repository and is normalized
// to the repository root.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	repoPath := input.RepoPathStr
	if repoPath == "" {
		repoPath = "."
	}
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("could not resolve repository path %q: %w", repoPath, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("repository path %q does not exist: %w", absPath, err)
	}

	// With an explicit changed-path list, git is not consulted at all.
	if cfg.ChangedFile != "" {
		cfg.RepoPath = absPath
		return nil
	}

	root, err := client.GetRepoRoot(ctx, absPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = root
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig validates the profiling prefix and enables
// profiling when one is set.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix cannot contain whitespace (received %q)", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}
