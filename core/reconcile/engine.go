package reconcile

import (
	"context"
	"errors"
	"fmt"

	"zotcurator/core/zotero"

	"go.uber.org/zap"
)

// Engine drives one reconcile operation against one target collection.
// It is single-use: one plan per target collection per invocation.
type Engine struct {
	store zotero.Store
	log   *zap.Logger
	state State
}

// New constructs an engine bound to a remote store.
func New(store zotero.Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// State exposes the engine lifecycle state, mainly for tests.
func (e *Engine) State() State {
	return e.state
}

// Run computes and, depending on the operation and mode, applies a
// reconciliation plan for the target collection. The membership plan is
// always computed from freshly fetched remote state, so re-running after
// a partial failure converges to the same target.
func (e *Engine) Run(ctx context.Context, opts Options, input Input) (*Result, error) {
	if e.state != StateIdle {
		return nil, errors.New("engine already ran: one plan per target collection per invocation")
	}
	e.state = StatePlanning

	op := opts.Operation
	strategy := opts.OnConflict
	if strategy == "" {
		strategy = StrategyAbort
	}

	path := opts.Path
	if len(zotero.SplitPath(path)) == 0 {
		return nil, ErrEmptyPath
	}

	collections, err := e.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	tree := zotero.BuildTree(collections)

	existing, exists := tree.FindPath(path)

	// A create against an occupied path applies the conflict strategy.
	if op == OpCreate && exists {
		switch strategy {
		case StrategyAbort:
			return nil, &CollectionExistsError{Path: path, Key: existing.Key}
		case StrategySkip:
			e.log.Info("collection exists; skipping", zap.String("path", path))
			e.state = StateDone
			return &Result{
				Operation: OpCreate,
				Path:      path,
				Plan:      ComputePlan(nil, nil, input.Unresolved),
				Skipped:   true,
				DryRun:    !opts.Execute,
			}, nil
		case StrategyAdd:
			op = OpAdd
		case StrategyReplace:
			op = OpReplace
		case StrategyDisambiguate:
			path, err = Disambiguate(tree, path)
			if err != nil {
				return nil, err
			}
			e.log.Info("disambiguated collection path", zap.String("path", path))
			exists = false
		}
	}

	if !exists && op != OpCreate {
		return nil, &CollectionNotFoundError{Path: path}
	}

	var current []string
	if exists {
		current, err = e.store.CollectionItemKeys(ctx, existing.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch collection membership: %w", err)
		}
	}

	plan := ComputePlan(input.ItemKeys, current, input.Unresolved)
	if op == OpAdd {
		// Existing membership is never touched by add.
		plan.ToRemove = []string{}
	}
	e.state = StatePlanned

	result := &Result{
		Operation: opts.Operation,
		Path:      path,
		Plan:      plan,
		Before:    len(current),
		After:     len(current) - len(plan.ToRemove) + len(plan.ToAdd),
	}
	if exists {
		result.CollectionKey = existing.Key
	}

	// Diff is a pure read: it terminates at REPORTED unconditionally,
	// regardless of the execute flag.
	if op == OpDiff {
		e.state = StateReported
		e.state = StateDone
		return result, nil
	}

	if !opts.Execute {
		nodes, err := ResolvePath(ctx, e.store, tree, path, false)
		if err != nil {
			return result, err
		}
		result.Nodes = nodes
		result.DryRun = true
		e.state = StateReported
		e.state = StateDone
		return result, nil
	}

	e.state = StateApplying
	if err := e.apply(ctx, op, tree, path, result); err != nil {
		return result, err
	}
	e.state = StateDone
	return result, nil
}

// apply creates missing path nodes and then patches membership,
// removals before additions, batched by the store. It refuses the diff
// operation outright so no refactor of Run can make diff mutate.
func (e *Engine) apply(ctx context.Context, op Operation, tree *zotero.Tree, path string, result *Result) error {
	if op == OpDiff {
		return errDiffApply
	}

	// Node creation strictly precedes membership mutation.
	nodes, err := ResolvePath(ctx, e.store, tree, path, true)
	result.Nodes = nodes
	if err != nil {
		return err
	}
	leafKey := nodes[len(nodes)-1].Key
	result.CollectionKey = leafKey

	plan := result.Plan
	if len(plan.ToRemove) > 0 {
		removed, err := e.store.RemoveItems(ctx, leafKey, plan.ToRemove)
		result.Applied.Removed = removed
		if err != nil {
			return fmt.Errorf("removed %d of %d items before failure: %w", removed, len(plan.ToRemove), err)
		}
	}
	if len(plan.ToAdd) > 0 {
		added, err := e.store.AddItems(ctx, leafKey, plan.ToAdd)
		result.Applied.Added = added
		if err != nil {
			return fmt.Errorf("removed %d, added %d of %d items before failure: %w",
				result.Applied.Removed, added, len(plan.ToAdd), err)
		}
	}

	e.log.Info("applied reconciliation plan",
		zap.String("path", path),
		zap.String("collection", leafKey),
		zap.Int("added", result.Applied.Added),
		zap.Int("removed", result.Applied.Removed),
	)
	return nil
}
