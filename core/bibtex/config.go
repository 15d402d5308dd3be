package bibtex

// Config holds configuration for the Better BibTeX lookup database.
type Config struct {
	// DBPath is the filesystem path to the Better BibTeX SQLite database.
	DBPath string `mapstructure:"db_path" yaml:"db_path" default:""`
	// LibraryID optionally restricts lookups to a single Zotero library.
	// Zero means no filtering.
	LibraryID int64 `mapstructure:"library_id" yaml:"library_id" default:"0"`
}
