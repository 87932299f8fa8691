package schema

import "time"

// HistoryStatus represents the status of the gate history store.
type HistoryStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalRuns      int       `json:"total_runs"`
	LastRunTime    time.Time `json:"last_run_time"`
	OldestRunTime  time.Time `json:"oldest_run_time"`
	TableSizeBytes int64     `json:"table_size_bytes"`
}

// GateRunRecord represents a row from the covgate_runs table.
type GateRunRecord struct {
	RunID          int64
	CreatedAt      time.Time
	RepoPath       string
	BaseRef        string
	TargetRef      string
	Classification string
	Mode           string
	Status         string
	TotalFiles     int32
	SourceFiles    int32
	TestFiles      int32
	HeadLine       float64
	HeadBranch     float64
	BaseLine       *float64
	BaseBranch     *float64
	Reasons        string
}
