package extract

import (
	"regexp"
	"sort"
)

// Markdown citation forms, all normalizing to the same bare key:
//
//	@Key                     Pandoc inline citation
//	[@Key1; @Key2]           bracketed citation list
//	[-@Key]                  suppressed-author form
//	[[Papers/@Key]]          wiki link to a literature note (.md stripped)
//	[text](notes/@Key.md)    standard link to a literature note
//
// The inline pattern must not fire inside a path, so the character
// before the '@' may not be alphanumeric, '_' or '/'. Go's regexp has
// no lookbehind; the boundary is matched as a capture group instead.
var (
	wikiLink     = regexp.MustCompile(`\[\[[^\]]*?@([A-Za-z0-9_:.\-]+?)(?:\.md)?\]\]`)
	markdownLink = regexp.MustCompile(`\[[^\]]*\]\([^)]*?@([A-Za-z0-9_:.\-]+?)(?:\.md)?\)`)
	inlineCite   = regexp.MustCompile(`(^|[^A-Za-z0-9_/])@([A-Za-z][A-Za-z0-9_:.\-]*[A-Za-z0-9])`)
)

// extractMarkdown pulls citation keys from Markdown text. A key reached
// through two syntactic forms at the same position counts once; the
// same key at different positions counts as separate occurrences.
func extractMarkdown(text string) []string {
	type occurrence struct {
		pos int
		key string
	}
	var found []occurrence
	seen := make(map[int]struct{})

	add := func(pos int, key string) {
		if _, ok := seen[pos]; ok {
			return
		}
		seen[pos] = struct{}{}
		found = append(found, occurrence{pos: pos, key: key})
	}

	for _, m := range wikiLink.FindAllStringSubmatchIndex(text, -1) {
		add(m[2], text[m[2]:m[3]])
	}
	for _, m := range markdownLink.FindAllStringSubmatchIndex(text, -1) {
		add(m[2], text[m[2]:m[3]])
	}
	for _, m := range inlineCite.FindAllStringSubmatchIndex(text, -1) {
		add(m[4], text[m[4]:m[5]])
	}

	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	keys := make([]string, 0, len(found))
	for _, occ := range found {
		keys = append(keys, occ.key)
	}
	return keys
}
