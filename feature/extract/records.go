package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// extractJSON reads a top-level JSON array of objects and pulls the
// citation key field from each record.
func extractJSON(text string, keyField string) (keys, warnings []string, err error) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, nil, fmt.Errorf("expected a JSON list of objects: %w", err)
	}
	return extractFromRecords(records, keyField)
}

// extractYAML reads a top-level YAML sequence of mappings and pulls the
// citation key field from each record. Valid JSON is a YAML subset, so
// JSON input parses here too.
func extractYAML(text string, keyField string) (keys, warnings []string, err error) {
	var records []map[string]any
	if err := yaml.Unmarshal([]byte(text), &records); err != nil {
		return nil, nil, fmt.Errorf("expected a YAML sequence of mappings: %w", err)
	}
	return extractFromRecords(records, keyField)
}

// extractFromRecords pulls the citation key from each record, matching
// the field name case-insensitively. A record missing the field, or
// holding a non-scalar value, is skipped with a warning.
func extractFromRecords(records []map[string]any, keyField string) (keys, warnings []string, err error) {
	if records == nil {
		return nil, nil, errors.New("expected a list of records")
	}
	target := strings.ToLower(strings.TrimSpace(keyField))

	for i, record := range records {
		value, ok := fieldValue(record, target)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skipped record %d: no %q field", i, keyField))
			continue
		}
		scalar, ok := scalarString(value)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skipped record %d: %q is not a scalar value", i, keyField))
			continue
		}
		if scalar = strings.TrimSpace(scalar); scalar != "" {
			keys = append(keys, scalar)
		}
	}
	return keys, warnings, nil
}

func fieldValue(record map[string]any, target string) (any, bool) {
	for name, value := range record {
		if strings.ToLower(strings.TrimSpace(name)) == target {
			return value, true
		}
	}
	return nil, false
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool, int, int64, float64:
		return fmt.Sprint(v), true
	}
	return "", false
}
