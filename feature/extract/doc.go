// Package extract pulls citation keys out of heterogeneous document
// formats: BibTeX, CSV, TSV, YAML, JSON, plaintext, and Markdown
// (Pandoc/Quarto/Obsidian citation syntaxes).
//
// The format set is closed and dispatched by tag; an input whose format
// cannot be determined fails before any parsing begins. Per-file
// extraction is a pure function of the input stream, so multiple files
// are processed concurrently and merged afterwards in input order,
// yielding a deterministic, duplicate-free distinct key set.
//
// Row-level problems in structured inputs (a malformed CSV row, a
// record without the key field) are recoverable warnings surfaced on
// the Result, never fatal errors.
package extract
