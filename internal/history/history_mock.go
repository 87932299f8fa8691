package history

import (
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetGateStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetGateStore() contract.GateStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.GateStore)
	return store
}

// MockGateStore is a mock implementation of GateStore for testing.
type MockGateStore struct {
	mock.Mock
}

var _ contract.GateStore = &MockGateStore{} // Compile-time check

// RecordRun implements the GateStore interface.
func (m *MockGateStore) RecordRun(record schema.GateRunRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

// ListRuns implements the GateStore interface.
func (m *MockGateStore) ListRuns(limit int) ([]schema.GateRunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.GateRunRecord)
	return records, args.Error(1)
}

// GetStatus implements the GateStore interface.
func (m *MockGateStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the GateStore interface.
func (m *MockGateStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
