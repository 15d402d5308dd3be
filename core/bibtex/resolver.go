package bibtex

import (
	"context"

	"gorm.io/gorm"
)

// KeyRecord is the resolution outcome for a single citation key.
// Found=false means the key has no row in the lookup table; that is
// data, not an error.
type KeyRecord struct {
	CitationKey string `json:"citationKey"`
	ItemKey     string `json:"itemKey"`
	ItemID      int64  `json:"itemID"`
	LibraryID   int64  `json:"libraryID"`
	Found       bool   `json:"found"`
}

// BuildIndex maps citation key -> record, optionally filtered by library.
// The table may hold duplicate rows for one citation key (stale imports);
// the row with the lowest itemID wins, so repeated runs resolve the same way.
func BuildIndex(records []Record, libraryID int64) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, rec := range records {
		if libraryID != 0 && rec.LibraryID != libraryID {
			continue
		}
		if prev, ok := index[rec.CitationKey]; ok && prev.ItemID <= rec.ItemID {
			continue
		}
		index[rec.CitationKey] = rec
	}
	return index
}

// Resolve returns one KeyRecord per input key, in input order, with no
// omissions and no duplicates. Zero matches is a valid outcome.
func Resolve(index map[string]Record, citationKeys []string) []KeyRecord {
	results := make([]KeyRecord, 0, len(citationKeys))
	seen := make(map[string]struct{}, len(citationKeys))
	for _, ck := range citationKeys {
		if _, dup := seen[ck]; dup {
			continue
		}
		seen[ck] = struct{}{}

		if rec, ok := index[ck]; ok {
			results = append(results, KeyRecord{
				CitationKey: ck,
				ItemKey:     rec.ItemKey,
				ItemID:      rec.ItemID,
				LibraryID:   rec.LibraryID,
				Found:       true,
			})
		} else {
			results = append(results, KeyRecord{CitationKey: ck})
		}
	}
	return results
}

// ResolveKeys reads the lookup table and resolves the given citation keys
// against it in one step.
func ResolveKeys(ctx context.Context, db *gorm.DB, cfg Config, citationKeys []string) ([]KeyRecord, error) {
	records, err := ReadAll(ctx, db)
	if err != nil {
		return nil, err
	}
	return Resolve(BuildIndex(records, cfg.LibraryID), citationKeys), nil
}

// Partition splits resolution results into resolved remote item keys and
// the citation keys that could not be resolved.
func Partition(records []KeyRecord) (itemKeys []string, unresolved []string) {
	for _, r := range records {
		if r.Found && r.ItemKey != "" {
			itemKeys = append(itemKeys, r.ItemKey)
		} else {
			unresolved = append(unresolved, r.CitationKey)
		}
	}
	return itemKeys, unresolved
}
