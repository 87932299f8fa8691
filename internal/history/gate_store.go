package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// GateStoreImpl handles durable storage of gate runs using various
// database backends.
type GateStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.GateStore = &GateStoreImpl{} // Compile-time check

// NewGateStore initializes and returns a new GateStore based on the
// backend type.
func NewGateStore(backend schema.DatabaseBackend, connStr string) (contract.GateStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history tracking
		return &GateStoreImpl{db: nil, backend: backend, driverName: ""}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateGateRunsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", gateRunsTable, err)
	}

	return &GateStoreImpl{db: db, backend: backend, driverName: driverName}, nil
}

// getCreateGateRunsQuery returns the CREATE TABLE query for covgate_runs.
func getCreateGateRunsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				created_at VARCHAR(64) NOT NULL,
				repo_path VARCHAR(1024) NOT NULL,
				base_ref VARCHAR(255),
				target_ref VARCHAR(255),
				classification VARCHAR(32) NOT NULL,
				mode VARCHAR(32) NOT NULL,
				status VARCHAR(16) NOT NULL,
				total_files INT NOT NULL,
				source_files INT NOT NULL,
				test_files INT NOT NULL,
				head_line DOUBLE NOT NULL,
				head_branch DOUBLE NOT NULL,
				base_line DOUBLE,
				base_branch DOUBLE,
				reasons TEXT
			);
		`, gateRunsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				created_at TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				base_ref TEXT,
				target_ref TEXT,
				classification TEXT NOT NULL,
				mode TEXT NOT NULL,
				status TEXT NOT NULL,
				total_files INT NOT NULL,
				source_files INT NOT NULL,
				test_files INT NOT NULL,
				head_line DOUBLE PRECISION NOT NULL,
				head_branch DOUBLE PRECISION NOT NULL,
				base_line DOUBLE PRECISION,
				base_branch DOUBLE PRECISION,
				reasons TEXT
			);
		`, gateRunsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TEXT NOT NULL,
				repo_path TEXT NOT NULL,
				base_ref TEXT,
				target_ref TEXT,
				classification TEXT NOT NULL,
				mode TEXT NOT NULL,
				status TEXT NOT NULL,
				total_files INTEGER NOT NULL,
				source_files INTEGER NOT NULL,
				test_files INTEGER NOT NULL,
				head_line REAL NOT NULL,
				head_branch REAL NOT NULL,
				base_line REAL,
				base_branch REAL,
				reasons TEXT
			);
		`, gateRunsTable)
	}
}

// placeholders renders n parameter placeholders for the store's backend.
// PostgreSQL uses $1..$n; MySQL and SQLite use ?.
func (s *GateStoreImpl) placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		if s.backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// RecordRun stores one completed gate run and returns its unique ID.
func (s *GateStoreImpl) RecordRun(record schema.GateRunRecord) (int64, error) {
	if s.db == nil {
		return 0, nil // No-op for NoneBackend
	}

	columns := []string{
		"created_at", "repo_path", "base_ref", "target_ref",
		"classification", "mode", "status",
		"total_files", "source_files", "test_files",
		"head_line", "head_branch", "base_line", "base_branch", "reasons",
	}
	args := []any{
		s.formatTime(record.CreatedAt), record.RepoPath, record.BaseRef, record.TargetRef,
		record.Classification, record.Mode, record.Status,
		record.TotalFiles, record.SourceFiles, record.TestFiles,
		record.HeadLine, record.HeadBranch, record.BaseLine, record.BaseBranch, record.Reasons,
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		gateRunsTable,
		strings.Join(columns, ", "),
		strings.Join(s.placeholders(len(columns)), ", "),
	)

	if s.backend == schema.PostgreSQLBackend {
		// PostgreSQL needs RETURNING to surface the generated ID.
		var runID int64
		query += " RETURNING run_id"
		if err := s.db.QueryRow(query, args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to record gate run: %w", err)
		}
		return runID, nil
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to record gate run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get gate run ID: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent gate runs, newest first.
func (s *GateStoreImpl) ListRuns(limit int) ([]schema.GateRunRecord, error) {
	if s.db == nil {
		return nil, nil // No-op for NoneBackend
	}
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT run_id, created_at, repo_path, base_ref, target_ref,
			classification, mode, status,
			total_files, source_files, test_files,
			head_line, head_branch, base_line, base_branch, reasons
		FROM %s ORDER BY run_id DESC LIMIT %d`, gateRunsTable, limit)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gate runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.GateRunRecord
	for rows.Next() {
		var rec schema.GateRunRecord
		var createdAt string
		if err := rows.Scan(
			&rec.RunID, &createdAt, &rec.RepoPath, &rec.BaseRef, &rec.TargetRef,
			&rec.Classification, &rec.Mode, &rec.Status,
			&rec.TotalFiles, &rec.SourceFiles, &rec.TestFiles,
			&rec.HeadLine, &rec.HeadBranch, &rec.BaseLine, &rec.BaseBranch, &rec.Reasons,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gate run row: %w", err)
		}
		rec.CreatedAt = s.parseTime(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStatus returns status information about the history store.
func (s *GateStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{Backend: string(s.backend)}
	if s.db == nil {
		return status, nil
	}
	if err := s.db.Ping(); err != nil {
		return status, nil
	}
	status.Connected = true

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", gateRunsTable)
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to count gate runs: %w", err)
	}
	if status.TotalRuns == 0 {
		return status, nil
	}

	rangeQuery := fmt.Sprintf("SELECT MIN(created_at), MAX(created_at) FROM %s", gateRunsTable)
	var oldest, newest string
	if err := s.db.QueryRow(rangeQuery).Scan(&oldest, &newest); err != nil {
		return status, fmt.Errorf("failed to query gate run range: %w", err)
	}
	status.OldestRunTime = s.parseTime(oldest)
	status.LastRunTime = s.parseTime(newest)
	return status, nil
}

// Close closes the underlying connection.
func (s *GateStoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// formatTime normalizes timestamps for storage. All backends store
// RFC3339 text in UTC, which keeps MIN/MAX ordering chronological.
func (s *GateStoreImpl) formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime is the inverse of formatTime for scanned values.
func (s *GateStoreImpl) parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
