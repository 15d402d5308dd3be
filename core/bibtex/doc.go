// Package bibtex provides read-only access to the Better BibTeX citation
// key table and resolution of citation keys to Zotero item keys.
//
// The citationkey table is maintained by the Better BibTeX Zotero plugin;
// this package never writes to it. The database is opened in read-only
// mode and the whole table is loaded once per invocation, since typical
// libraries hold at most a few tens of thousands of rows.
//
// # Resolution Semantics
//
// Resolution failure is data, not a fault: a citation key with no row
// yields a KeyRecord with Found=false. Only an unreadable database file
// is an error. Duplicate rows for one citation key are broken
// deterministically by lowest itemID.
//
// # Usage
//
//	db, err := bibtex.Open(cfg)
//	records, err := bibtex.ResolveKeys(ctx, db, cfg, keys)
//	itemKeys, unresolved := bibtex.Partition(records)
package bibtex
