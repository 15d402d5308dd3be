package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// extractDelimited reads CSV/TSV data with a header row and pulls the
// citation key column. A header missing the configured field is an
// error naming the available fields; a malformed or empty row is a
// recoverable warning, not a fault.
func extractDelimited(text string, delimiter rune, keyField string) (keys, warnings []string, err error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("delimited data has no header row")
		}
		return nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}

	// Case-insensitive field matching
	target := strings.ToLower(strings.TrimSpace(keyField))
	column := -1
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) == target {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, nil, fmt.Errorf("field %q not found in delimited data (available: %s); use --read-citation-key-field to specify",
			keyField, strings.Join(header, ", "))
	}

	row := 1
	for {
		row++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped malformed row %d: %v", row, err))
			continue
		}
		if column >= len(record) {
			warnings = append(warnings, fmt.Sprintf("skipped row %d: missing %q column", row, keyField))
			continue
		}
		val := strings.TrimSpace(record[column])
		if val == "" {
			warnings = append(warnings, fmt.Sprintf("empty citation key at row %d", row))
			continue
		}
		keys = append(keys, val)
	}
	return keys, warnings, nil
}
