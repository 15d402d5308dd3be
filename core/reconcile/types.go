package reconcile

import "fmt"

// Operation identifies which reconcile operation the engine drives.
type Operation string

const (
	// OpCreate creates a new collection from the input membership.
	OpCreate Operation = "create"
	// OpAdd adds input members to an existing collection, touching nothing else.
	OpAdd Operation = "add"
	// OpReplace synchronizes an existing collection to exactly the input membership.
	OpReplace Operation = "replace"
	// OpDiff reports the membership difference without ever mutating.
	OpDiff Operation = "diff"
)

// Strategy names the conflict policy applied when a create operation
// finds a collection already at the target path.
type Strategy string

const (
	// StrategyAbort fails the operation without mutation.
	StrategyAbort Strategy = "abort"
	// StrategyAdd treats the conflict as an add against the existing collection.
	StrategyAdd Strategy = "add"
	// StrategyReplace treats the conflict as a replace of the existing collection.
	StrategyReplace Strategy = "replace"
	// StrategySkip succeeds with zero mutations.
	StrategySkip Strategy = "skip"
	// StrategyDisambiguate derives a fresh non-colliding leaf name and creates it.
	StrategyDisambiguate Strategy = "disambiguate"
)

// ParseStrategy validates a conflict strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAbort, StrategyAdd, StrategyReplace, StrategySkip, StrategyDisambiguate:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown conflict strategy %q (abort, add, replace, skip, disambiguate)", s)
}

// State is the engine lifecycle state for one run.
type State string

const (
	StateIdle     State = ""
	StatePlanning State = "planning"
	StatePlanned  State = "planned"
	StateApplying State = "applying"
	StateReported State = "reported"
	StateDone     State = "done"
)

// Plan is the computed membership difference between input and a
// collection's current state. It is computed once and never mutated;
// applying it is idempotent against the remote store.
type Plan struct {
	// ToAdd are item keys present in the input but not in the collection.
	ToAdd []string `json:"to_add"`
	// ToRemove are item keys present in the collection but not in the input.
	ToRemove []string `json:"to_remove"`
	// InBoth are item keys present on both sides, left untouched.
	InBoth []string `json:"in_both"`
	// Unresolved are citation keys that could not be resolved to item keys.
	// They are reported but never counted toward membership.
	Unresolved []string `json:"unresolved"`
}

// Empty reports whether applying the plan would mutate nothing.
func (p Plan) Empty() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}

// Applied reports how many mutations landed. On partial failure the
// counts cover what succeeded before the failure, so the caller can
// safely re-run: the plan is recomputed from fresh remote state on retry.
type Applied struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Options configures one engine run.
type Options struct {
	// Path is the slash-delimited target collection path.
	Path string
	// Operation selects create, add, replace, or diff.
	Operation Operation
	// OnConflict applies when a create finds the path occupied. Defaults to abort.
	OnConflict Strategy
	// Execute applies the plan; false is dry-run and stops at the report.
	// Diff ignores this and never applies.
	Execute bool
}

// Input is the resolved local membership derived from the input files.
type Input struct {
	// ItemKeys are the resolved remote item keys (deduplicated).
	ItemKeys []string
	// Unresolved are citation keys with no lookup table entry.
	Unresolved []string
}

// Result is the outcome of one engine run.
type Result struct {
	// Operation is the operation as requested (before conflict rewriting).
	Operation Operation `json:"operation"`
	// Path is the final target path, after any disambiguation.
	Path string `json:"path"`
	// CollectionKey is the remote key of the target collection, when known.
	CollectionKey string `json:"collection_key,omitempty"`
	// Plan is the computed membership difference.
	Plan Plan `json:"plan"`
	// Nodes is the resolved path chain, including nodes created or
	// simulated during this run.
	Nodes []Node `json:"nodes,omitempty"`
	// Applied counts the mutations that landed.
	Applied Applied `json:"applied"`
	// Before and After are the collection's item counts prior to the run
	// and after full plan application.
	Before int `json:"before"`
	After  int `json:"after"`
	// Skipped is true when a conflict strategy chose to do nothing.
	Skipped bool `json:"skipped"`
	// DryRun is true when the plan was reported but not applied.
	DryRun bool `json:"dry_run"`
}
