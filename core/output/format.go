package output

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format tags one of the supported output renderings.
type Format string

const (
	FormatPlaintext Format = "plaintext"
	FormatCSV       Format = "csv"
	FormatTSV       Format = "tsv"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
)

// Formats lists the supported output format names for flag help.
func Formats() []string {
	return []string{"plaintext", "csv", "tsv", "json", "yaml"}
}

var outputExtensions = map[string]Format{
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
	".txt":  FormatPlaintext,
	".text": FormatPlaintext,
}

// ParseFormat validates an explicit output format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	switch f {
	case FormatPlaintext, FormatCSV, FormatTSV, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %s)", name, strings.Join(Formats(), ", "))
}

// ResolveFormat determines the output format from an explicit flag, the
// output file's extension, or the default, in that order.
func ResolveFormat(outPath, explicit string, fallback Format) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if outPath != "" {
		if f, ok := outputExtensions[strings.ToLower(filepath.Ext(outPath))]; ok {
			return f, nil
		}
	}
	return fallback, nil
}

// Options configures delimited and structured renderings.
type Options struct {
	// Delimiter is the CSV field separator. TSV always uses a tab.
	Delimiter rune
	// KeyField is the column or field name used for the citation key.
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
