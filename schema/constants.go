package schema

// Custom string types for type safety.
type (
	// FileCategory represents the category assigned to a single changed path.
	FileCategory string

	// ChangeClassification represents the category assigned to an entire run.
	ChangeClassification string

	// EnforcementMode represents how strictly a verdict can block a merge.
	EnforcementMode string

	// VerdictStatus represents the terminal status of a gate evaluation.
	VerdictStatus string

	// MetricAxis represents a tracked coverage axis.
	MetricAxis string

	// ReportFormat represents the on-disk format of a coverage report.
	ReportFormat string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for history tracking.
	DatabaseBackend string
)

// All file categories supported.
const (
	SourceCategory        FileCategory = "source"
	TestCategory          FileCategory = "test"
	ConfigCategory        FileCategory = "config"
	WorkflowCategory      FileCategory = "workflow"
	DocumentationCategory FileCategory = "docs"
	OtherCategory         FileCategory = "other"
)

// All change classifications supported.
const (
	ConfigOnlyChange  ChangeClassification = "config-only"
	TestOnlyChange    ChangeClassification = "test-only"
	MergeCommitChange ChangeClassification = "merge-commit"
	SourceCodeChange  ChangeClassification = "source-code"
)

// All enforcement modes supported.
const (
	SkipMode          EnforcementMode = "skip"
	InformationalMode EnforcementMode = "informational"
	FullMode          EnforcementMode = "full"
)

// All verdict statuses supported.
const (
	PassStatus VerdictStatus = "pass"
	WarnStatus VerdictStatus = "warn"
	FailStatus VerdictStatus = "fail"
)

// All tracked metric axes. Both are required in a head report.
const (
	LineAxis   MetricAxis = "line"
	BranchAxis MetricAxis = "branch"
)

// All report formats supported.
const (
	AutoFormat      ReportFormat = "auto" // default
	JSONFormat      ReportFormat = "json"
	LCOVFormat      ReportFormat = "lcov"
	CoberturaFormat ReportFormat = "cobertura"
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
	MarkdownOut OutputMode = "markdown"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllFileCategories returns a list of all supported file categories.
var AllFileCategories = []FileCategory{
	SourceCategory,
	TestCategory,
	ConfigCategory,
	WorkflowCategory,
	DocumentationCategory,
	OtherCategory,
}

// AllMetricAxes lists the tracked axes in their canonical order.
var AllMetricAxes = []MetricAxis{LineAxis, BranchAxis}

// ValidReportFormats lists all valid report formats.
var ValidReportFormats = map[ReportFormat]struct{}{
	AutoFormat:      {},
	JSONFormat:      {},
	LCOVFormat:      {},
	CoberturaFormat: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	JSONOut:     {},
	CSVOut:      {},
	MarkdownOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
