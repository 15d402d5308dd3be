package extract

import "fmt"

// Extract pulls citation key occurrences out of text in the given
// format. Keys are returned raw: not yet normalized or deduplicated
// across inputs. Warnings carry recoverable row-level problems.
func Extract(text string, format Format, opts Options) (occurrences, warnings []string, err error) {
	opts = opts.withDefaults()
	switch format {
	case FormatBibTeX:
		return extractBibTeX(text), nil, nil
	case FormatCSV:
		return extractDelimited(text, opts.Delimiter, opts.KeyField)
	case FormatTSV:
		return extractDelimited(text, '\t', opts.KeyField)
	case FormatYAML:
		return extractYAML(text, opts.KeyField)
	case FormatJSON:
		return extractJSON(text, opts.KeyField)
	case FormatPlaintext:
		return extractPlaintext(text), nil, nil
	case FormatMarkdown:
		return extractMarkdown(text), nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported format %q", format)
}
