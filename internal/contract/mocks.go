package contract

import (
	"context"

	"github.com/huangsam/burndown/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ RecordSource = &MockRecordSource{} // Compile-time check

// Kind implements the RecordSource interface.
func (m *MockRecordSource) Kind() schema.SourceKind {
	args := m.Called()
	return args.Get(0).(schema.SourceKind)
}

// Describe implements the RecordSource interface.
func (m *MockRecordSource) Describe() string {
	args := m.Called()
	return args.String(0)
}

// Load implements the RecordSource interface.
func (m *MockRecordSource) Load(ctx context.Context) ([]schema.TicketRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.TicketRecord)
	return records, args.Error(1)
}
