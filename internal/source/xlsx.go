package source

import (
	"context"
	"fmt"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads ticket records from one sheet of an Excel workbook.
type XLSXSource struct {
	path    string
	sheet   string
	columns contract.ColumnMapping
}

var _ contract.RecordSource = &XLSXSource{} // Compile-time check

// NewXLSXSource creates an Excel source. An empty sheet selects the first sheet.
func NewXLSXSource(path, sheet string, columns contract.ColumnMapping) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, columns: columns}
}

// Kind implements the RecordSource interface.
func (s *XLSXSource) Kind() schema.SourceKind { return schema.XLSXSource }

// Describe implements the RecordSource interface.
func (s *XLSXSource) Describe() string {
	if s.sheet == "" {
		return s.path
	}
	return fmt.Sprintf("%s#%s", s.path, s.sheet)
}

// Load implements the RecordSource interface.
func (s *XLSXSource) Load(_ context.Context) ([]schema.TicketRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	// Raw values keep dates as serial numbers instead of locale formatted text
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, s.path, err)
	}
	records, err := parseTable(rows, s.columns, true)
	if err != nil {
		return nil, fmt.Errorf("%s#%s: %w", s.path, sheet, err)
	}
	return records, nil
}
