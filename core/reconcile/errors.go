package reconcile

import (
	"errors"
	"fmt"
)

// ErrEmptyPath is returned for a collection path with no segments.
var ErrEmptyPath = errors.New("empty collection path")

// errDiffApply guards the hard invariant that diff never mutates.
var errDiffApply = errors.New("diff is a pure read and cannot be applied")

// CollectionExistsError is a create conflict under the abort strategy.
// It is a reported failure of that operation, not a transport error.
type CollectionExistsError struct {
	Path string
	Key  string
}

func (e *CollectionExistsError) Error() string {
	return fmt.Sprintf("collection %q already exists (key=%s)", e.Path, e.Key)
}

// CollectionNotFoundError is returned when add, replace, or diff target
// a path with no collection.
type CollectionNotFoundError struct {
	Path string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection %q not found", e.Path)
}

// PathConflictError is returned when a path segment matches more than
// one sibling, so the walk cannot choose a node. The walk aborts without
// creating further nodes.
type PathConflictError struct {
	Path    string
	Segment string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path %q is ambiguous at segment %q", e.Path, e.Segment)
}
