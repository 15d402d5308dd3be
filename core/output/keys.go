package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"zotcurator/core/bibtex"
)

// FormatKeys renders a bare citation key list.
func FormatKeys(keys []string, format Format, opts Options) (string, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatPlaintext:
		return strings.Join(keys, "\n"), nil
	case FormatCSV, FormatTSV:
		rows := make([][]string, 0, len(keys)+1)
		rows = append(rows, []string{opts.KeyField})
		for _, k := range keys {
			rows = append(rows, []string{k})
		}
		return writeDelimited(rows, delimiterFor(format, opts))
	case FormatJSON:
		return marshalJSON(keys)
	case FormatYAML:
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s\n", k)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

// FormatKeyRecords renders resolution outcomes. Unresolved keys render
// with an explicit NOT_FOUND marker in plaintext so they are never
// silently dropped.
func FormatKeyRecords(records []bibtex.KeyRecord, format Format, opts Options) (string, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatPlaintext:
		var b strings.Builder
		for _, r := range records {
			status := r.ItemKey
			if !r.Found {
				status = "NOT_FOUND"
			}
			fmt.Fprintf(&b, "%s\t%s\n", r.CitationKey, status)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	case FormatCSV, FormatTSV:
		rows := make([][]string, 0, len(records)+1)
		rows = append(rows, []string{opts.KeyField, "itemKey", "found"})
		for _, r := range records {
			rows = append(rows, []string{r.CitationKey, r.ItemKey, strconv.FormatBool(r.Found)})
		}
		return writeDelimited(rows, delimiterFor(format, opts))
	case FormatJSON:
		data := make([]map[string]any, 0, len(records))
		for _, r := range records {
			entry := map[string]any{
				opts.KeyField: r.CitationKey,
				"itemKey":     nil,
				"found":       r.Found,
			}
			if r.Found {
				entry["itemKey"] = r.ItemKey
			}
			data = append(data, entry)
		}
		return marshalJSON(data)
	case FormatYAML:
		var b strings.Builder
		for _, r := range records {
			fmt.Fprintf(&b, "- %s: %s\n", opts.KeyField, r.CitationKey)
			fmt.Fprintf(&b, "  itemKey: %s\n", r.ItemKey)
			fmt.Fprintf(&b, "  found: %t\n", r.Found)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

// FormatRecords renders full lookup table records (for keys list).
func FormatRecords(records []bibtex.Record, format Format, opts Options) (string, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatPlaintext:
		var b strings.Builder
		for _, r := range records {
			fmt.Fprintf(&b, "%s\t%s\n", r.CitationKey, r.ItemKey)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	case FormatCSV, FormatTSV:
		rows := make([][]string, 0, len(records)+1)
		rows = append(rows, []string{"citationKey", "itemKey", "itemID", "libraryID", "pinned"})
		for _, r := range records {
			rows = append(rows, []string{
				r.CitationKey,
				r.ItemKey,
				strconv.FormatInt(r.ItemID, 10),
				strconv.FormatInt(r.LibraryID, 10),
				strconv.FormatBool(r.Pinned),
			})
		}
		return writeDelimited(rows, delimiterFor(format, opts))
	case FormatJSON:
		return marshalJSON(records)
	case FormatYAML:
		var b strings.Builder
		for _, r := range records {
			fmt.Fprintf(&b, "- citationKey: %s\n", r.CitationKey)
			fmt.Fprintf(&b, "  itemKey: %s\n", r.ItemKey)
			fmt.Fprintf(&b, "  itemID: %d\n", r.ItemID)
			fmt.Fprintf(&b, "  libraryID: %d\n", r.LibraryID)
			fmt.Fprintf(&b, "  pinned: %t\n", r.Pinned)
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

func delimiterFor(format Format, opts Options) rune {
	if format == FormatTSV {
		return '\t'
	}
	return opts.Delimiter
}

func writeDelimited(rows [][]string, delimiter rune) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func marshalJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
