package reconcile

import (
	"context"
	"fmt"
	"strings"

	"zotcurator/core/zotero"
)

// Node is one level of a resolved collection path.
type Node struct {
	// Name is the segment name (remote casing when the node exists).
	Name string `json:"name"`
	// Key is the node's remote key; empty until the node is confirmed
	// to exist (simulated nodes in dry-run stay keyless).
	Key string `json:"key,omitempty"`
	// ParentKey is the remote key of the parent, empty at root level.
	ParentKey string `json:"parent_key,omitempty"`
	// Created is true when this run created the node, or would create
	// it in dry-run.
	Created bool `json:"created"`
}

// ResolvePath walks a slash-delimited path strictly left to right and
// returns the node chain from root to leaf, creating missing nodes when
// execute is true. A node is never created before its parent's remote
// key is known, which bounds the damage of a partial failure to a
// prefix of the chain. In dry-run the same walk is simulated and
// would-be-created nodes are reported without any store call.
func ResolvePath(ctx context.Context, store zotero.Store, tree *zotero.Tree, path string, execute bool) ([]Node, error) {
	parts := zotero.SplitPath(path)
	if len(parts) == 0 {
		return nil, ErrEmptyPath
	}

	nodes := make([]Node, 0, len(parts))
	parentKey := ""
	parentMissing := false

	for _, part := range parts {
		if !parentMissing {
			matches := tree.FindChildren(parentKey, part)
			if len(matches) > 1 {
				return nodes, &PathConflictError{Path: path, Segment: part}
			}
			if len(matches) == 1 {
				existing := matches[0]
				nodes = append(nodes, Node{
					Name:      existing.Name,
					Key:       existing.Key,
					ParentKey: parentKey,
				})
				parentKey = existing.Key
				continue
			}
		}

		if !execute {
			// Once a segment is missing every deeper segment is missing
			// too; simulate the creations without calling the store.
			nodes = append(nodes, Node{Name: part, ParentKey: parentKey, Created: true})
			parentMissing = true
			parentKey = ""
			continue
		}

		created, err := store.CreateCollection(ctx, parentKey, part)
		if err != nil {
			return nodes, fmt.Errorf("failed to create collection %q: %w", part, err)
		}
		tree.Insert(created)
		nodes = append(nodes, Node{
			Name:      created.Name,
			Key:       created.Key,
			ParentKey: parentKey,
			Created:   true,
		})
		parentKey = created.Key
	}

	return nodes, nil
}

// Disambiguate derives a non-colliding leaf name for the path by
// appending " (n)", choosing the smallest n >= 2 not already used as a
// sibling name under the same parent.
func Disambiguate(tree *zotero.Tree, path string) (string, error) {
	parts := zotero.SplitPath(path)
	if len(parts) == 0 {
		return "", ErrEmptyPath
	}

	parentKey := ""
	for _, part := range parts[:len(parts)-1] {
		matches := tree.FindChildren(parentKey, part)
		if len(matches) > 1 {
			return "", &PathConflictError{Path: path, Segment: part}
		}
		if len(matches) == 0 {
			// Parent chain is absent, so the leaf cannot collide.
			return path, nil
		}
		parentKey = matches[0].Key
	}

	leaf := parts[len(parts)-1]
	for n := 2; n < 1000; n++ {
		candidate := fmt.Sprintf("%s (%d)", leaf, n)
		if len(tree.FindChildren(parentKey, candidate)) == 0 {
			parts[len(parts)-1] = candidate
			return strings.Join(parts, "/"), nil
		}
	}
	return "", fmt.Errorf("could not disambiguate collection path: %s", path)
}
