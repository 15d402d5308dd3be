package cmd

import (
	"context"
	"fmt"
	"os"

	"zotcurator/core/bibtex"
	"zotcurator/core/config"
	"zotcurator/core/output"
	"zotcurator/core/reconcile"
	"zotcurator/core/zotero"
	"zotcurator/feature/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagFilter     string
	flagOnConflict string
	flagExecute    bool
)

// collectionCmd is the parent command for Zotero collection operations.
var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"coll"},
	Short:   "Zotero collection operations",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections as slash-separated paths",
	RunE:  runCollectionList,
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <path> [files...]",
	Short: "Create a collection and populate it from input files",
	Long: `Create the collection at the given slash-separated path, creating
missing ancestors along the way, and add every item resolved from the
input files.

By default nothing is written; the planned changes are reported. Pass
--execute to apply them. If the path already exists, --on-conflict
decides what happens: abort, add, replace, skip, or disambiguate.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReconcile(reconcile.OpCreate),
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <path> [files...]",
	Short: "Add resolved items to an existing collection",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReconcile(reconcile.OpAdd),
}

var collectionReplaceCmd = &cobra.Command{
	Use:   "replace <path> [files...]",
	Short: "Replace a collection's membership with the resolved items",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReconcile(reconcile.OpReplace),
}

var collectionDiffCmd = &cobra.Command{
	Use:   "diff <path> [files...]",
	Short: "Compare resolved items against a collection's membership",
	Long: `Compare the items resolved from the input files against the current
membership of the collection at the given path. Diff never modifies
the library, with or without --execute.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReconcile(reconcile.OpDiff),
}

func init() {
	collectionListCmd.Flags().StringVar(&flagFilter, "filter", "", "Regular expression to filter collection paths")

	for _, c := range []*cobra.Command{collectionCreateCmd, collectionAddCmd, collectionReplaceCmd, collectionDiffCmd} {
		c.Flags().StringVarP(&fromFormat, "from-format", "f", "", "Input format for all files")
		c.Flags().StringVar(&delimiter, "delimiter", ",", "Delimiter for CSV input")
		c.Flags().StringVar(&readKeyField, "read-citation-key-field", "citation-key", "Field name for citation key in structured input")
		c.Flags().BoolVar(&flagExecute, "execute", false, "Apply the planned changes instead of reporting them")
	}
	collectionCreateCmd.Flags().StringVar(&flagOnConflict, "on-conflict", "abort",
		"When the path already exists: abort, add, replace, skip, or disambiguate")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionCreateCmd)
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionReplaceCmd)
	collectionCmd.AddCommand(collectionDiffCmd)
	RootCmd.AddCommand(collectionCmd)
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLogger(cfg)
	if err != nil {
		return err
	}

	client, err := zotero.NewClient(cfg.Zotero)
	if err != nil {
		return err
	}
	collections, err := client.ListCollections(ctx)
	if err != nil {
		return err
	}

	tree := zotero.BuildTree(collections)
	paths, err := tree.Paths(flagFilter)
	if err != nil {
		return err
	}
	l.Debug("listed collections",
		zap.Int("collections", len(collections)),
		zap.Int("paths", len(paths)),
	)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// runReconcile builds the shared RunE for create, add, replace and diff.
func runReconcile(op reconcile.Operation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := newLogger(cfg)
		if err != nil {
			return err
		}

		path := args[0]
		files := args[1:]

		input, err := resolveInput(ctx, cfg, l, files)
		if err != nil {
			return err
		}

		strategy, err := reconcile.ParseStrategy(flagOnConflict)
		if err != nil {
			return err
		}

		client, err := zotero.NewClient(cfg.Zotero)
		if err != nil {
			return err
		}

		engine := reconcile.New(client, l)
		result, err := engine.Run(ctx, reconcile.Options{
			Path:       path,
			Operation:  op,
			OnConflict: strategy,
			Execute:    flagExecute,
		}, input)
		if err != nil {
			if result != nil {
				printReconcileReport(cmd, l, result)
			}
			return err
		}

		if op == reconcile.OpDiff {
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatDiff(result))
			return nil
		}
		printReconcileReport(cmd, l, result)
		return nil
	}
}

// resolveInput extracts citation keys from the input files and resolves
// them against the Better BibTeX database. Unresolved keys are carried
// into the plan rather than failing the run.
func resolveInput(ctx context.Context, cfg *config.Config, l *zap.Logger, files []string) (reconcile.Input, error) {
	agg, err := extract.CollectFiles(ctx, l, files, fromFormat, os.Stdin, extractOptions())
	if err != nil {
		return reconcile.Input{}, err
	}
	if len(agg.Keys) == 0 {
		return reconcile.Input{}, fmt.Errorf("no citation keys found in input")
	}

	db, err := bibtex.Open(cfg.BBT)
	if err != nil {
		return reconcile.Input{}, err
	}
	records, err := bibtex.ResolveKeys(ctx, db, cfg.BBT, agg.Keys)
	if err != nil {
		return reconcile.Input{}, err
	}

	itemKeys, unresolved := bibtex.Partition(records)
	if len(unresolved) > 0 {
		l.Warn("some citation keys did not resolve",
			zap.Int("unresolved", len(unresolved)),
			zap.Strings("keys", unresolved),
		)
	}
	return reconcile.Input{ItemKeys: itemKeys, Unresolved: unresolved}, nil
}

func printReconcileReport(cmd *cobra.Command, l *zap.Logger, result *reconcile.Result) {
	w := cmd.OutOrStdout()
	plan := result.Plan

	if result.Skipped {
		fmt.Fprintf(w, "Collection %q already exists; skipped\n", result.Path)
		return
	}

	mode := "planned"
	if !result.DryRun {
		mode = "applied"
	}
	fmt.Fprintf(w, "=== %s: %s %q ===\n", mode, result.Operation, result.Path)

	for _, node := range result.Nodes {
		if node.Created {
			fmt.Fprintf(w, "  create collection %q\n", node.Name)
		}
	}
	for _, k := range plan.ToRemove {
		fmt.Fprintf(w, "  - %s\n", k)
	}
	for _, k := range plan.ToAdd {
		fmt.Fprintf(w, "  + %s\n", k)
	}
	for _, k := range plan.Unresolved {
		fmt.Fprintf(w, "  ? %s (unresolved)\n", k)
	}
	if plan.Empty() {
		fmt.Fprintln(w, "  nothing to do")
	}
	fmt.Fprintf(w, "Membership: %d -> %d\n", result.Before, result.After)

	if result.DryRun {
		fmt.Fprintln(w, "Dry run; pass --execute to apply")
		l.Info("reconciliation planned",
			zap.String("path", result.Path),
			zap.Int("to_add", len(plan.ToAdd)),
			zap.Int("to_remove", len(plan.ToRemove)),
			zap.Int("unresolved", len(plan.Unresolved)),
		)
		return
	}
	l.Info("reconciliation applied",
		zap.String("path", result.Path),
		zap.String("collection", result.CollectionKey),
		zap.Int("added", result.Applied.Added),
		zap.Int("removed", result.Applied.Removed),
	)
}
