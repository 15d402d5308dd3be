package output

import (
	"encoding/json"
	"testing"

	"zotcurator/core/bibtex"
	"zotcurator/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvedRecords() []bibtex.KeyRecord {
	return []bibtex.KeyRecord{
		{CitationKey: "smith2023evolution", ItemKey: "AAAA1111", ItemID: 1, LibraryID: 1, Found: true},
		{CitationKey: "ghost2020missing"},
	}
}

// TestResolveOutputFormat tests flag over extension over default precedence.
func TestResolveOutputFormat(t *testing.T) {
	f, err := ResolveFormat("out.csv", "json", FormatPlaintext)
	assert.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ResolveFormat("out.yml", "", FormatPlaintext)
	assert.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ResolveFormat("", "", FormatPlaintext)
	assert.NoError(t, err)
	assert.Equal(t, FormatPlaintext, f)

	_, err = ResolveFormat("", "docx", FormatPlaintext)
	assert.Error(t, err)
}

// TestFormatKeys tests the bare key list renderings.
func TestFormatKeys(t *testing.T) {
	keys := []string{"smith2023evolution", "jones2021methods"}

	plain, err := FormatKeys(keys, FormatPlaintext, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "smith2023evolution\njones2021methods", plain)

	csvOut, err := FormatKeys(keys, FormatCSV, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "citation-key\nsmith2023evolution\njones2021methods", csvOut)

	yamlOut, err := FormatKeys(keys, FormatYAML, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "- smith2023evolution\n- jones2021methods", yamlOut)

	jsonOut, err := FormatKeys(keys, FormatJSON, Options{})
	assert.NoError(t, err)
	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Equal(t, keys, decoded)
}

// TestFormatKeyRecords_Plaintext tests that unresolved keys carry an
// explicit marker instead of being dropped.
func TestFormatKeyRecords_Plaintext(t *testing.T) {
	out, err := FormatKeyRecords(resolvedRecords(), FormatPlaintext, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "smith2023evolution\tAAAA1111\nghost2020missing\tNOT_FOUND", out)
}

// TestFormatKeyRecords_CSV tests the delimited rendering with a custom
// key field header.
func TestFormatKeyRecords_CSV(t *testing.T) {
	out, err := FormatKeyRecords(resolvedRecords(), FormatCSV, Options{KeyField: "bibkey"})
	assert.NoError(t, err)
	assert.Equal(t, "bibkey,itemKey,found\nsmith2023evolution,AAAA1111,true\nghost2020missing,,false", out)
}

// TestFormatKeyRecords_JSON tests that unresolved entries carry a null
// item key.
func TestFormatKeyRecords_JSON(t *testing.T) {
	out, err := FormatKeyRecords(resolvedRecords(), FormatJSON, Options{})
	assert.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "AAAA1111", decoded[0]["itemKey"])
	assert.Nil(t, decoded[1]["itemKey"])
	assert.Equal(t, false, decoded[1]["found"])
}

// TestFormatRecords_TSV tests that TSV always separates with tabs.
func TestFormatRecords_TSV(t *testing.T) {
	records := []bibtex.Record{
		{ItemID: 7, ItemKey: "AAAA1111", LibraryID: 1, CitationKey: "smith2023evolution", Pinned: true},
	}
	out, err := FormatRecords(records, FormatTSV, Options{Delimiter: ';'})
	assert.NoError(t, err)
	assert.Equal(t, "citationKey\titemKey\titemID\tlibraryID\tpinned\nsmith2023evolution\tAAAA1111\t7\t1\ttrue", out)
}

// TestFormatDiff tests the sectioned diff report.
func TestFormatDiff(t *testing.T) {
	result := &reconcile.Result{
		Path: "Projects/MyPaper",
		Plan: reconcile.Plan{
			ToAdd:      []string{"AAAA1111"},
			ToRemove:   []string{"DDDD4444"},
			InBoth:     []string{"BBBB2222", "CCCC3333"},
			Unresolved: []string{"ghost2020missing"},
		},
	}

	out := FormatDiff(result)
	assert.Contains(t, out, `Diff: input vs "Projects/MyPaper"`)
	assert.Contains(t, out, "In both (2):\n  BBBB2222\n  CCCC3333")
	assert.Contains(t, out, "Only in input (1):\n  + AAAA1111")
	assert.Contains(t, out, "Only in collection (1):\n  - DDDD4444")
	assert.Contains(t, out, "Unresolved citation keys (1):\n  ? ghost2020missing")
}

// TestFormatDiff_NoUnresolved tests that the unresolved section is
// omitted when empty.
func TestFormatDiff_NoUnresolved(t *testing.T) {
	out := FormatDiff(&reconcile.Result{Path: "Archive", Plan: reconcile.Plan{InBoth: []string{"AAAA1111"}}})
	assert.NotContains(t, out, "Unresolved")
}
