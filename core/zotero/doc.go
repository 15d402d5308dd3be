// Package zotero provides a client for the Zotero Web API v3 and an
// in-memory index of the remote collection hierarchy.
//
// # Store Interface
//
// The Store interface abstracts the remote collection store, making it easy
// to mock remote interactions for unit testing (as seen in core/zotero/mocks).
// All mutating operations are idempotent at this boundary: adding an item
// already in a collection, or removing one that is absent, is a no-op.
//
// # Operations
//
//   - ListCollections: fetches the full collection forest (paginated).
//   - CollectionItemKeys: fetches a collection's current membership.
//   - CreateCollection: creates one collection under a parent.
//   - AddItems / RemoveItems: patch item membership in batches of 50.
//
// # Tree
//
// BuildTree indexes the flat collection list by parent key for ordered,
// deterministic traversal: path lookup (case-insensitive), sibling listing
// for disambiguation, and rendering as slash-delimited paths.
package zotero
