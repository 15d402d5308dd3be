// Package output renders the engine's structured results as text.
//
// The core packages emit structured values (key records, plans, diff
// results); this package is the only place they are turned into
// plaintext, CSV, TSV, JSON, or YAML. The output format is resolved
// from an explicit flag, the output file's extension, or a per-command
// default.
package output
