package extract

import "regexp"

// bibtexEntry matches an entry header like "@article{key2023name,".
// The citation key is the token between the brace and the first comma;
// the entry type and body are ignored.
var bibtexEntry = regexp.MustCompile(`@\w+\s*\{\s*([^,\s]+)\s*,`)

func extractBibTeX(text string) []string {
	var keys []string
	for _, m := range bibtexEntry.FindAllStringSubmatch(text, -1) {
		keys = append(keys, m[1])
	}
	return keys
}
