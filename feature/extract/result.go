package extract

// Result is the extraction outcome for a single input.
type Result struct {
	// Source names the input (file path, or "-" for stdin).
	Source string
	// Format is the grammar the input was parsed with.
	Format Format
	// Occurrences lists every citation key occurrence in first-seen
	// position order. Duplicates within one input are legal and kept.
	Occurrences []string
	// Warnings records recoverable per-row problems (skipped rows,
	// empty values). They never abort the run.
	Warnings []string
}

// Distinct returns the deduplicated keys in first-seen order.
func (r Result) Distinct() []string {
	seen := make(map[string]struct{}, len(r.Occurrences))
	distinct := make([]string, 0, len(r.Occurrences))
	for _, k := range r.Occurrences {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		distinct = append(distinct, k)
	}
	return distinct
}

// Counts returns total occurrences and the distinct key count.
func (r Result) Counts() (total, distinct int) {
	return len(r.Occurrences), len(r.Distinct())
}
