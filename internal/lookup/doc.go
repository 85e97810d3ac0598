// Package lookup loads the two read-only tables that drive classification:
// the exclusion set of SPUs that fan out to many SKUs, and the SKU to SPU
// mapping.
//
// Tables may be CSV/TSV text, XLSX workbooks, or SQLite databases. Loading is
// best-effort: a table that cannot be read leaves its container empty and is
// reported as a partial failure rather than aborting the tool. The result is
// an immutable Snapshot shared by every classification of one process.
package lookup
