package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"zotcurator/core/reconcile"
)

// FormatDiff renders a diff result as sectioned text: items on both
// sides, items only in the input, items only in the collection, and
// unresolved citation keys.
func FormatDiff(result *reconcile.Result) string {
	var b strings.Builder
	plan := result.Plan

	fmt.Fprintf(&b, "=== Diff: input vs %q ===\n\n", result.Path)
	fmt.Fprintf(&b, "In both (%d):\n", len(plan.InBoth))
	for _, k := range plan.InBoth {
		fmt.Fprintf(&b, "  %s\n", k)
	}
	fmt.Fprintf(&b, "\nOnly in input (%d):\n", len(plan.ToAdd))
	for _, k := range plan.ToAdd {
		fmt.Fprintf(&b, "  + %s\n", k)
	}
	fmt.Fprintf(&b, "\nOnly in collection (%d):\n", len(plan.ToRemove))
	for _, k := range plan.ToRemove {
		fmt.Fprintf(&b, "  - %s\n", k)
	}
	if len(plan.Unresolved) > 0 {
		fmt.Fprintf(&b, "\nUnresolved citation keys (%d):\n", len(plan.Unresolved))
		for _, k := range plan.Unresolved {
			fmt.Fprintf(&b, "  ? %s\n", k)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Write sends rendered content to the given file, or to w when the
// path is empty. A trailing newline is appended.
func Write(content, path string, w io.Writer) error {
	if path == "" {
		_, err := fmt.Fprintln(w, content)
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}
