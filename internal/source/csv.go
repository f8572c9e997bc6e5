package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// CSVSource reads ticket records from a comma or tab separated export.
type CSVSource struct {
	path    string
	columns contract.ColumnMapping
}

var _ contract.RecordSource = &CSVSource{} // Compile-time check

// NewCSVSource creates a CSV source. Files ending in .tsv are read as tab separated.
func NewCSVSource(path string, columns contract.ColumnMapping) *CSVSource {
	return &CSVSource{path: path, columns: columns}
}

// Kind implements the RecordSource interface.
func (s *CSVSource) Kind() schema.SourceKind { return schema.CSVSource }

// Describe implements the RecordSource interface.
func (s *CSVSource) Describe() string { return s.path }

// Load implements the RecordSource interface.
func (s *CSVSource) Load(_ context.Context) ([]schema.TicketRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if strings.EqualFold(filepath.Ext(s.path), ".tsv") {
		reader.Comma = '\t'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	records, err := parseTable(rows, s.columns, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}
