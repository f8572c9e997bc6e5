// Package source has record sources that turn spreadsheets, exports and issue
// trackers into ticket records.
package source

import (
	"fmt"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
)

// NewRecordSource returns the record source selected by the config.
// cfg.Source must already be resolved by contract.ProcessAndValidate.
func NewRecordSource(cfg *contract.Config) (contract.RecordSource, error) {
	switch cfg.Source {
	case schema.CSVSource:
		return NewCSVSource(cfg.InputPath, cfg.Columns), nil
	case schema.XLSXSource:
		return NewXLSXSource(cfg.InputPath, cfg.Sheet, cfg.Columns), nil
	case schema.ParquetSource:
		return NewParquetSource(cfg.InputPath), nil
	case schema.JiraSource:
		return NewJiraSource(cfg.Jira)
	case schema.GitHubSource:
		return NewGitHubSource(cfg.GitHub)
	default:
		return nil, fmt.Errorf("unsupported record source: %q", cfg.Source)
	}
}
