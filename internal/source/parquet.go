package source

import (
	"context"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/internal/parquet"
	"github.com/huangsam/burndown/schema"
)

// ParquetSource reads ticket records from a Parquet file with key, created,
// resolved and story_points columns.
type ParquetSource struct {
	path string
}

var _ contract.RecordSource = &ParquetSource{} // Compile-time check

// NewParquetSource creates a Parquet source.
func NewParquetSource(path string) *ParquetSource {
	return &ParquetSource{path: path}
}

// Kind implements the RecordSource interface.
func (s *ParquetSource) Kind() schema.SourceKind { return schema.ParquetSource }

// Describe implements the RecordSource interface.
func (s *ParquetSource) Describe() string { return s.path }

// Load implements the RecordSource interface.
func (s *ParquetSource) Load(_ context.Context) ([]schema.TicketRecord, error) {
	return parquet.ReadTicketRecords(s.path)
}
