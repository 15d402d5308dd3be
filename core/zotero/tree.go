package zotero

import (
	"regexp"
	"sort"
	"strings"
)

// Collection is one node of the remote collection hierarchy.
// ParentKey is empty for top-level collections.
type Collection struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	ParentKey string `json:"parentKey,omitempty"`
	Version   int    `json:"version"`
	NumItems  int    `json:"numItems"`
}

// Tree is an in-memory index of the remote collection forest,
// keyed by parent for ordered traversal.
type Tree struct {
	Collections []Collection
	children    map[string][]Collection
}

// BuildTree indexes a flat collection list by parent key.
// Siblings are ordered case-insensitively by name for deterministic walks.
func BuildTree(collections []Collection) *Tree {
	children := make(map[string][]Collection)
	for _, c := range collections {
		children[c.ParentKey] = append(children[c.ParentKey], c)
	}
	for key := range children {
		siblings := children[key]
		sort.Slice(siblings, func(i, j int) bool {
			return strings.ToLower(siblings[i].Name) < strings.ToLower(siblings[j].Name)
		})
	}
	return &Tree{Collections: collections, children: children}
}

// Children returns the ordered children of the given collection key.
// An empty key addresses the root level.
func (t *Tree) Children(parentKey string) []Collection {
	return t.children[parentKey]
}

// Insert adds a newly created collection to the index so that later
// lookups within the same invocation see it.
func (t *Tree) Insert(c Collection) {
	t.Collections = append(t.Collections, c)
	siblings := append(t.children[c.ParentKey], c)
	sort.Slice(siblings, func(i, j int) bool {
		return strings.ToLower(siblings[i].Name) < strings.ToLower(siblings[j].Name)
	})
	t.children[c.ParentKey] = siblings
}

// SplitPath splits a slash-delimited collection path into its segments.
// Empty segments are dropped; an all-empty path yields nil.
func SplitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(strings.Trim(path, "/"), "/") {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// FindPath locates a collection by slash-delimited path, matching each
// segment case-insensitively against sibling names.
func (t *Tree) FindPath(path string) (Collection, bool) {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return Collection{}, false
	}

	parentKey := ""
	var found Collection
	for _, part := range parts {
		match, ok := t.findChild(parentKey, part)
		if !ok {
			return Collection{}, false
		}
		found = match
		parentKey = match.Key
	}
	return found, true
}

// findChild returns the first case-insensitive name match among the
// children of parentKey. Callers that must detect ambiguous names use
// FindChildren instead.
func (t *Tree) findChild(parentKey, name string) (Collection, bool) {
	for _, c := range t.children[parentKey] {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Collection{}, false
}

// FindChildren returns all case-insensitive name matches among the
// children of parentKey. More than one match means the path segment
// is ambiguous.
func (t *Tree) FindChildren(parentKey, name string) []Collection {
	var matches []Collection
	for _, c := range t.children[parentKey] {
		if strings.EqualFold(c.Name, name) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Paths renders every collection as a slash-delimited path, in tree
// order, with a trailing slash on collections that have children.
// The optional filter is a case-insensitive regular expression.
func (t *Tree) Paths(filter string) ([]string, error) {
	var compiled *regexp.Regexp
	if filter != "" {
		var err error
		compiled, err = regexp.Compile("(?i)" + filter)
		if err != nil {
			return nil, err
		}
	}

	var lines []string
	var walk func(parentKey, prefix string)
	walk = func(parentKey, prefix string) {
		for _, c := range t.children[parentKey] {
			path := prefix + c.Name
			display := path
			if len(t.children[c.Key]) > 0 {
				display += "/"
			}
			if compiled == nil || compiled.MatchString(display) {
				lines = append(lines, display)
			}
			walk(c.Key, path+"/")
		}
	}
	walk("", "")
	return lines, nil
}
