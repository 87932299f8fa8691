// Package history persists completed gate runs so teams can audit how the
// gate has been deciding over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
)

// gateRunsTable is the name of the table for gate run history.
const gateRunsTable = "covgate_runs"

// GateStoreManager manages the gate history store.
type GateStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	gate         contract.GateStore
}

var _ contract.HistoryManager = &GateStoreManager{} // Compile-time check

// GetGateStore returns the gate history store.
func (mgr *GateStoreManager) GetGateStore() contract.GateStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.gate
}

// Global Manager instance for main logic.
var (
	Manager   = &GateStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetHistoryDBFilePath returns the path to the SQLite DB file for gate
// history storage.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitStores initializes the global history manager.
// backend can be empty to disable history tracking entirely.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewGateStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize gate history: %w", err)
			return
		}
		Manager.gate = store
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.gate != nil {
			_ = Manager.gate.Close()
		}
	})
}

// ClearHistory clears the gate history for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, gateRunsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, gateRunsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
