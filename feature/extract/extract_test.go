package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractBibTeX tests entry header parsing.
func TestExtractBibTeX(t *testing.T) {
	text := `% comment
@article{smith2023evolution,
  title = {On Evolution},
  author = {Smith, Jane}
}

@inproceedings{ jones2021methods ,
  title = {Methods}
}

@misc{doe2019survey,note={a @article{fake2000inside, } inside a value is still matched}}
`
	keys, warnings, err := Extract(text, FormatBibTeX, Options{})
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods", "doe2019survey", "fake2000inside"}, keys)
}

// TestExtractPlaintext tests line parsing with comments and '@' stripping.
func TestExtractPlaintext(t *testing.T) {
	text := "smith2023evolution\n\n# a comment\n  @jones2021methods  \n@\ndoe2019survey"
	keys, warnings, err := Extract(text, FormatPlaintext, Options{})
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods", "doe2019survey"}, keys)
}

// TestExtractDelimited tests CSV parsing with header matching and
// per-row warnings.
func TestExtractDelimited(t *testing.T) {
	text := `Title,Citation-Key,Year
On Evolution,smith2023evolution,2023
Methods,jones2021methods,2021
No Key,,2020
Short Row
`
	keys, warnings, err := Extract(text, FormatCSV, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods"}, keys)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "empty citation key at row 4")
	assert.Contains(t, warnings[1], "missing")
}

// TestExtractDelimited_CustomFieldAndDelimiter tests the field and
// delimiter options.
func TestExtractDelimited_CustomFieldAndDelimiter(t *testing.T) {
	text := "id;bibkey\n1;smith2023evolution\n2;jones2021methods\n"
	keys, _, err := Extract(text, FormatCSV, Options{Delimiter: ';', KeyField: "bibkey"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods"}, keys)
}

// TestExtractDelimited_MissingField tests the error for an absent key
// column, which must name the available fields.
func TestExtractDelimited_MissingField(t *testing.T) {
	_, _, err := Extract("Title,Year\nOn Evolution,2023\n", FormatCSV, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"citation-key" not found`)
	assert.Contains(t, err.Error(), "Title, Year")
}

// TestExtractDelimited_NoHeader tests empty input.
func TestExtractDelimited_NoHeader(t *testing.T) {
	_, _, err := Extract("", FormatCSV, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

// TestExtractTSV tests that TSV always splits on tabs.
func TestExtractTSV(t *testing.T) {
	text := "citation-key\ttitle\nsmith2023evolution\tOn Evolution\n"
	keys, _, err := Extract(text, FormatTSV, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"smith2023evolution"}, keys)
}

// TestExtractJSON tests a JSON record list with mixed field shapes.
func TestExtractJSON(t *testing.T) {
	text := `[
		{"citation-key": "smith2023evolution", "title": "On Evolution"},
		{"Citation-Key": "jones2021methods"},
		{"title": "No Key"},
		{"citation-key": {"nested": true}},
		{"citation-key": 2024}
	]`
	keys, warnings, err := Extract(text, FormatJSON, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods", "2024"}, keys)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "record 2")
	assert.Contains(t, warnings[1], "not a scalar")
}

// TestExtractJSON_NotAList tests that a non-list document is an error.
func TestExtractJSON_NotAList(t *testing.T) {
	_, _, err := Extract(`{"citation-key": "smith2023evolution"}`, FormatJSON, Options{})
	assert.Error(t, err)
}

// TestExtractYAML tests a YAML sequence of mappings.
func TestExtractYAML(t *testing.T) {
	text := `- citation-key: smith2023evolution
  title: On Evolution
- citation-key: jones2021methods
- title: No Key
`
	keys, warnings, err := Extract(text, FormatYAML, Options{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"smith2023evolution", "jones2021methods"}, keys)
	assert.Len(t, warnings, 1)
}

// TestResult_Distinct tests occurrence deduplication and counting.
func TestResult_Distinct(t *testing.T) {
	r := Result{Occurrences: []string{"a2020", "b2021", "a2020", "c2022", "b2021"}}
	assert.Equal(t, []string{"a2020", "b2021", "c2022"}, r.Distinct())

	total, distinct := r.Counts()
	assert.Equal(t, 5, total)
	assert.Equal(t, 3, distinct)
}
