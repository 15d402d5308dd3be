package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format tags one of the supported input grammars. The set is closed:
// new formats are added here, not discovered at runtime.
type Format string

const (
	FormatBibTeX    Format = "bibtex"
	FormatCSV       Format = "csv"
	FormatTSV       Format = "tsv"
	FormatYAML      Format = "yaml"
	FormatJSON      Format = "json"
	FormatPlaintext Format = "plaintext"
	FormatMarkdown  Format = "markdown"
)

// Formats lists the supported format names for flag help and errors.
func Formats() []string {
	return []string{"bibtex", "csv", "tsv", "yaml", "json", "plaintext", "markdown"}
}

// extensionFormats maps each known file extension to exactly one format.
var extensionFormats = map[string]Format{
	".bib":    FormatBibTeX,
	".bibtex": FormatBibTeX,
	".csv":    FormatCSV,
	".tsv":    FormatTSV,
	".yaml":   FormatYAML,
	".yml":    FormatYAML,
	".json":   FormatJSON,
	".txt":    FormatPlaintext,
	".text":   FormatPlaintext,
	".md":     FormatMarkdown,
	".qmd":    FormatMarkdown,
	".rmd":    FormatMarkdown,
}

// UnknownFormatError is returned when no format can be determined for
// an input before any parsing begins.
type UnknownFormatError struct {
	Input string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot determine input format for %q: use --from-format (supported: %s)",
		e.Input, strings.Join(Formats(), ", "))
}

// ParseFormat validates an explicit format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	switch f {
	case FormatBibTeX, FormatCSV, FormatTSV, FormatYAML, FormatJSON, FormatPlaintext, FormatMarkdown:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (supported: %s)", name, strings.Join(Formats(), ", "))
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, bool) {
	f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// ResolveFormat determines the format for one input: an explicit format
// wins; otherwise it is inferred from the file extension. Streams such
// as stdin ("-") have no extension and require an explicit format.
func ResolveFormat(path, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if path != "" && path != "-" {
		if f, ok := DetectFormat(path); ok {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Input: path}
}

// Options configures field selection for the structured formats.
type Options struct {
	// Delimiter is the CSV field separator. TSV always uses a tab.
	Delimiter rune
	// KeyField is the column or field holding the citation key,
	// matched case-insensitively.
	KeyField string
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.KeyField == "" {
		o.KeyField = "citation-key"
	}
	return o
}
