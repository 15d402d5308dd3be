// Package reconcile computes and applies membership differences between
// locally derived item sets and remote Zotero collections.
//
// # Architecture
//
// The package consists of three parts:
//
//  1. Plan: a pure set-difference computation between the input membership
//     and a collection's current membership (ComputePlan). Plans are
//     computed once, never mutated, and always derived from freshly
//     fetched remote state, so applying the same operation twice
//     converges instead of compounding.
//
//  2. Path resolution: ResolvePath walks a slash-delimited collection
//     path left to right, creating missing nodes parent-first so a
//     partial failure can only leave a valid prefix of the chain behind.
//     Dry-run simulates the identical walk without store calls.
//
//  3. Engine: the state machine (planning -> planned -> applying or
//     reported -> done) driving the create, add, replace, and diff
//     operations, including the conflict strategies for create against
//     an occupied path. Diff terminates at the report unconditionally;
//     the apply step independently refuses it.
//
// # Idempotence
//
// Mutations are idempotent at the store boundary and the plan is the
// source of truth on retry: a failed apply reports how many additions
// and removals landed, and re-running recomputes the plan against the
// post-failure remote state.
package reconcile
