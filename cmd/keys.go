package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"zotcurator/core/bibtex"
	"zotcurator/core/output"
	"zotcurator/feature/extract"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for keys extract
	fromFormat    string
	toFormat      string
	outputPath    string
	delimiter     string
	readKeyField  string
	writeKeyField string
	keysOnly      bool
	sortOrder     string

	// Flags for keys list
	listSort string
)

// keysCmd is the parent command for citation key operations.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Citation key operations",
}

// keysExtractCmd extracts citation keys from files and resolves them.
var keysExtractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract citation keys from files and resolve to Zotero item keys",
	Long: `Extract citation keys from one or more input files and resolve them to
Zotero item keys via the Better BibTeX database.

The input format is guessed from each file's extension unless --from-format
is given. Use '-' to read stdin (requires --from-format).

Examples:
  # Extract from a Quarto manuscript and print resolved item keys
  zotc keys extract paper.qmd

  # Extract keys only, without resolving, sorted alphabetically
  zotc keys extract --keys-only refs.bib notes.md

  # Extract from stdin as plaintext, write CSV
  cat keys.txt | zotc keys extract -f plaintext -o keys.csv -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeysExtract,
}

// keysListCmd dumps all Better BibTeX citation key records.
var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all Better BibTeX citation key records",
	RunE:  runKeysList,
}

func init() {
	keysExtractCmd.Flags().StringVarP(&fromFormat, "from-format", "f", "", "Input format: "+strings.Join(extract.Formats(), ", "))
	keysExtractCmd.Flags().StringVarP(&toFormat, "to-format", "t", "", "Output format: "+strings.Join(output.Formats(), ", "))
	keysExtractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	keysExtractCmd.Flags().StringVar(&delimiter, "delimiter", ",", "Delimiter for CSV input/output")
	keysExtractCmd.Flags().StringVar(&readKeyField, "read-citation-key-field", "citation-key", "Field name for citation key in structured input")
	keysExtractCmd.Flags().StringVar(&writeKeyField, "write-citation-key-field", "citation-key", "Field name for citation key in output")
	keysExtractCmd.Flags().BoolVar(&keysOnly, "keys-only", false, "Output citation keys without resolving to item keys")
	keysExtractCmd.Flags().StringVar(&sortOrder, "sort", "alpha", "Sort order for keys: alpha or none")

	keysListCmd.Flags().StringVarP(&toFormat, "to-format", "t", "", "Output format: "+strings.Join(output.Formats(), ", "))
	keysListCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	keysListCmd.Flags().StringVar(&delimiter, "delimiter", ",", "Delimiter for CSV output")
	keysListCmd.Flags().StringVar(&listSort, "sort", "citation-key", "Sort order: citation-key, item-key, or item-id")

	keysCmd.AddCommand(keysExtractCmd)
	keysCmd.AddCommand(keysListCmd)
	RootCmd.AddCommand(keysCmd)
}

func runKeysExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLogger(cfg)
	if err != nil {
		return err
	}

	agg, err := extract.CollectFiles(ctx, l, args, fromFormat, os.Stdin, extractOptions())
	if err != nil {
		return err
	}
	if len(agg.Keys) == 0 {
		return fmt.Errorf("no citation keys found in input")
	}
	if sortOrder == "alpha" {
		agg.SortAlpha()
	}

	format, err := output.ResolveFormat(outputPath, toFormat, output.FormatPlaintext)
	if err != nil {
		return err
	}
	opts := output.Options{Delimiter: delimiterRune(), KeyField: writeKeyField}

	// Keys-only mode skips the Better BibTeX resolution entirely
	if keysOnly {
		rendered, err := output.FormatKeys(agg.Keys, format, opts)
		if err != nil {
			return err
		}
		l.Info("extracted citation keys", zap.Int("count", len(agg.Keys)))
		return output.Write(rendered, outputPath, cmd.OutOrStdout())
	}

	db, err := bibtex.Open(cfg.BBT)
	if err != nil {
		return err
	}
	records, err := bibtex.ResolveKeys(ctx, db, cfg.BBT, agg.Keys)
	if err != nil {
		return err
	}

	resolved := 0
	for _, r := range records {
		if r.Found {
			resolved++
		}
	}
	l.Info("resolved citation keys",
		zap.Int("resolved", resolved),
		zap.Int("total", len(records)),
		zap.Int("unresolved", len(records)-resolved),
	)

	rendered, err := output.FormatKeyRecords(records, format, opts)
	if err != nil {
		return err
	}
	if err := output.Write(rendered, outputPath, cmd.OutOrStdout()); err != nil {
		return err
	}

	// Partial resolution still writes the full output, but the exit code
	// tells scripts that some keys are missing from the lookup table.
	if resolved < len(records) {
		_ = l.Sync()
		os.Exit(2)
	}
	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := newLogger(cfg)
	if err != nil {
		return err
	}

	db, err := bibtex.Open(cfg.BBT)
	if err != nil {
		return err
	}
	records, err := bibtex.ReadAll(ctx, db)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		l.Info("no records found in Better BibTeX database")
		return nil
	}

	switch listSort {
	case "item-key":
		sort.Slice(records, func(i, j int) bool { return records[i].ItemKey < records[j].ItemKey })
	case "item-id":
		sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })
	default:
		sort.Slice(records, func(i, j int) bool {
			return strings.ToLower(records[i].CitationKey) < strings.ToLower(records[j].CitationKey)
		})
	}

	format, err := output.ResolveFormat(outputPath, toFormat, output.FormatPlaintext)
	if err != nil {
		return err
	}
	rendered, err := output.FormatRecords(records, format, output.Options{Delimiter: delimiterRune()})
	if err != nil {
		return err
	}

	l.Info("listed citation key records", zap.Int("count", len(records)))
	return output.Write(rendered, outputPath, cmd.OutOrStdout())
}

func extractOptions() extract.Options {
	return extract.Options{Delimiter: delimiterRune(), KeyField: readKeyField}
}

func delimiterRune() rune {
	if delimiter == "" {
		return ','
	}
	return []rune(delimiter)[0]
}
