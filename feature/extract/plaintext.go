package extract

import "strings"

// extractPlaintext reads one citation key per line. Blank lines and
// comment lines starting with '#' (after optional leading whitespace)
// are skipped; a leading '@' is stripped.
func extractPlaintext(text string) []string {
	var keys []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		stripped = strings.TrimPrefix(stripped, "@")
		if stripped != "" {
			keys = append(keys, stripped)
		}
	}
	return keys
}
