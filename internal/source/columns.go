package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	"github.com/xuri/excelize/v2"
)

// Fallback header names tried when the configured column is not present.
var (
	createdAliases  = []string{"created", "created at", "created_at", "created date", "opened"}
	resolvedAliases = []string{"resolved", "resolved at", "resolved_at", "resolution date", "resolutiondate", "closed", "closed at", "closed_at", "done"}
	pointsAliases   = []string{"story points", "story_points", "storypoints", "points", "estimate", "sp"}
	keyAliases      = []string{"key", "issue key", "id", "issue id", "number", "ticket"}
)

// dateLayouts are the textual date formats accepted in tabular cells.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000-0700",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// maxExcelSerial is the serial date after 9999-12-31, the last date a spreadsheet can hold.
const maxExcelSerial = 2958466

// columnIndex holds the header positions of each record field. key is -1 when absent.
type columnIndex struct {
	key      int
	created  int
	resolved int
	points   int
}

// normalizeHeader lowercases a header cell and strips a UTF-8 BOM and surrounding space.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// findColumn returns the position of the first header matching want or one of the aliases.
func findColumn(header []string, want string, aliases []string) int {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		n := normalizeHeader(h)
		if _, seen := positions[n]; !seen {
			positions[n] = i
		}
	}
	if want != "" {
		if i, ok := positions[normalizeHeader(want)]; ok {
			return i
		}
	}
	for _, alias := range aliases {
		if i, ok := positions[alias]; ok {
			return i
		}
	}
	return -1
}

// resolveColumns maps the configured column names onto a header row.
func resolveColumns(header []string, mapping contract.ColumnMapping) (columnIndex, error) {
	idx := columnIndex{
		key:      findColumn(header, "", keyAliases),
		created:  findColumn(header, mapping.Created, createdAliases),
		resolved: findColumn(header, mapping.Resolved, resolvedAliases),
		points:   findColumn(header, mapping.Points, pointsAliases),
	}
	var missing []string
	if idx.created < 0 {
		missing = append(missing, mapping.Created)
	}
	if idx.resolved < 0 {
		missing = append(missing, mapping.Resolved)
	}
	if idx.points < 0 {
		missing = append(missing, mapping.Points)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required columns %q in header %q", missing, header)
	}
	return idx, nil
}

// cell returns the trimmed value at position i, or an empty string when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRow converts a data row into a ticket record. The boolean is false for
// rows without a creation date, which never count toward scope.
func parseRow(row []string, idx columnIndex, line int, serialDates bool) (schema.TicketRecord, bool, error) {
	createdStr := cell(row, idx.created)
	if createdStr == "" {
		return schema.TicketRecord{}, false, nil
	}
	created, err := parseCellDate(createdStr, serialDates)
	if err != nil {
		return schema.TicketRecord{}, false, fmt.Errorf("row %d: created: %w", line, err)
	}

	record := schema.TicketRecord{
		Key:     cell(row, idx.key),
		Created: created,
	}
	if record.Key == "" {
		record.Key = fmt.Sprintf("row-%d", line)
	}

	if resolvedStr := cell(row, idx.resolved); resolvedStr != "" {
		resolved, err := parseCellDate(resolvedStr, serialDates)
		if err != nil {
			return schema.TicketRecord{}, false, fmt.Errorf("row %d: resolved: %w", line, err)
		}
		record.Resolved = &resolved
	}

	if pointsStr := cell(row, idx.points); pointsStr != "" {
		points, err := strconv.ParseFloat(pointsStr, 64)
		if err != nil {
			return schema.TicketRecord{}, false, fmt.Errorf("row %d: story points: invalid number %q", line, pointsStr)
		}
		if !schema.ValidStoryPoints(points) {
			return schema.TicketRecord{}, false, fmt.Errorf("row %d: story points: must be a finite non-negative number, got %q", line, pointsStr)
		}
		record.StoryPoints = points
	}
	return record, true, nil
}

// parseCellDate parses a date cell. When serialDates is set, numeric cells are
// read as spreadsheet serial dates.
func parseCellDate(s string, serialDates bool) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serialDates {
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < maxExcelSerial {
			return excelize.ExcelDateToTime(serial, false)
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseTable turns a header row plus data rows into ticket records.
func parseTable(rows [][]string, mapping contract.ColumnMapping, serialDates bool) ([]schema.TicketRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row found")
	}
	idx, err := resolveColumns(rows[0], mapping)
	if err != nil {
		return nil, err
	}

	records := make([]schema.TicketRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, ok, err := parseRow(row, idx, i+2, serialDates)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, record)
		}
	}
	return records, nil
}
