package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregate is the combined extraction outcome across all input files.
type Aggregate struct {
	// Results holds the per-file outcomes in input order.
	Results []Result
	// Keys is the distinct citation key set: first-seen-file order,
	// then first-seen-position order within that file.
	Keys []string
	// TotalOccurrences counts every occurrence across all inputs.
	TotalOccurrences int
}

// SortAlpha reorders the distinct key set case-insensitively.
func (a *Aggregate) SortAlpha() {
	sort.SliceStable(a.Keys, func(i, j int) bool {
		return strings.ToLower(a.Keys[i]) < strings.ToLower(a.Keys[j])
	})
}

// NormalizeKey strips surrounding whitespace and one leading '@'.
// Internal characters are never rewritten; identity is exact string
// equality of the normalized form.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "@")
	return key
}

// CollectFiles extracts citation keys from every input file and merges
// the results. Extraction runs concurrently per file (extractors are
// pure functions of their input stream); merging happens only after all
// files complete, in input order, so the distinct set is deterministic.
// "-" reads stdin and requires an explicit format.
func CollectFiles(ctx context.Context, log *zap.Logger, files []string, explicitFormat string, stdin io.Reader, opts Options) (*Aggregate, error) {
	// Resolve all formats up front: an undeterminable format fails
	// before any extraction begins.
	formats := make([]Format, len(files))
	for i, file := range files {
		format, err := ResolveFormat(file, explicitFormat)
		if err != nil {
			return nil, err
		}
		formats[i] = format
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := readInput(file, stdin)
			if err != nil {
				return err
			}
			occurrences, warnings, err := Extract(text, formats[i], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = Result{
				Source:      file,
				Format:      formats[i],
				Occurrences: occurrences,
				Warnings:    warnings,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := &Aggregate{Results: results}
	seen := make(map[string]struct{})
	for _, res := range results {
		log.Debug("extracted citation keys",
			zap.String("source", res.Source),
			zap.String("format", string(res.Format)),
			zap.Int("occurrences", len(res.Occurrences)),
		)
		for _, warning := range res.Warnings {
			log.Warn(warning, zap.String("source", res.Source))
		}
		for _, raw := range res.Occurrences {
			agg.TotalOccurrences++
			key := NormalizeKey(raw)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			agg.Keys = append(agg.Keys, key)
		}
	}

	log.Info("collected citation keys",
		zap.Int("distinct", len(agg.Keys)),
		zap.Int("occurrences", agg.TotalOccurrences),
		zap.Int("files", len(files)),
	)
	return agg, nil
}

func readInput(file string, stdin io.Reader) (string, error) {
	if file == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("input file not found: %w", err)
	}
	return string(raw), nil
}
