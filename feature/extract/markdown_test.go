package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractMarkdown_CitationForms tests that every citation syntax
// normalizes to the same bare key.
func TestExtractMarkdown_CitationForms(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"inline", "As shown by @Smith2023evolution, the results hold."},
		{"bracketed", "The results hold [@Smith2023evolution]."},
		{"suppressed author", "Smith showed this [-@Smith2023evolution]."},
		{"wiki link", "See [[Papers/@Smith2023evolution]] for details."},
		{"wiki link with extension", "See [[Papers/@Smith2023evolution.md]]."},
		{"markdown link", "See [the note](notes/@Smith2023evolution.md)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := extractMarkdown(tt.text)
			assert.Equal(t, []string{"Smith2023evolution"}, keys)
		})
	}
}

// TestExtractMarkdown_CitationList tests bracketed multi-key citations.
func TestExtractMarkdown_CitationList(t *testing.T) {
	keys := extractMarkdown("Several works agree [@Smith2023evolution; @Jones2021methods; -@Doe2019survey].")
	assert.Equal(t, []string{"Smith2023evolution", "Jones2021methods", "Doe2019survey"}, keys)
}

// TestExtractMarkdown_NoFalsePositives tests contexts where an '@' is
// not a citation.
func TestExtractMarkdown_NoFalsePositives(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"email address", "Contact jane.smith@example.org for data."},
		{"path-embedded at", "The file lives at src/@types/index.d.ts."},
		{"bare at", "Meet @ noon."},
		{"at end of word", "user@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, extractMarkdown(tt.text), "text %q", tt.text)
		})
	}
}

// TestExtractMarkdown_ExtensionStripping tests that only a literal .md
// suffix is stripped; dots inside keys survive.
func TestExtractMarkdown_ExtensionStripping(t *testing.T) {
	keys := extractMarkdown("See [[@smith.conf2023]] and [[@jones2021.md]].")
	assert.Equal(t, []string{"smith.conf2023", "jones2021"}, keys)
}

// TestExtractMarkdown_OccurrenceOrderAndDuplicates tests that the same
// key at different positions counts separately, in document order.
func TestExtractMarkdown_OccurrenceOrderAndDuplicates(t *testing.T) {
	text := "First @Smith2023evolution, then [@Jones2021methods], then @Smith2023evolution again."
	keys := extractMarkdown(text)
	assert.Equal(t, []string{"Smith2023evolution", "Jones2021methods", "Smith2023evolution"}, keys)
}

// TestExtractMarkdown_OverlappingForms tests that one key reachable via
// two patterns at the same position counts once.
func TestExtractMarkdown_OverlappingForms(t *testing.T) {
	// The wiki link body also matches the inline pattern.
	keys := extractMarkdown("[[Papers/@Smith2023evolution]]")
	assert.Equal(t, []string{"Smith2023evolution"}, keys)
}

// TestExtractMarkdown_KeyCharset tests the allowed key characters.
func TestExtractMarkdown_KeyCharset(t *testing.T) {
	keys := extractMarkdown("See @smith_2023:part-one and @van-dijk2020.")
	assert.Equal(t, []string{"smith_2023:part-one", "van-dijk2020"}, keys)
}
