// Package export implements the streaming study-data export pipeline.
//
// One export job serves one authenticated HTTP request: every study
// collection is scanned in fixed-size pages, each record is encoded into
// the requested output format, and the encoded units are compressed
// incrementally into a single zip archive written directly to the
// response. The full dataset is never materialized in memory; at most one
// page of records is held at a time.
//
// # Pipeline
//
//	Storage → Iterator → Encoder → Archive → HTTP response
//	              ↑ (payload schema discovery runs one data-only pass first)
//
// # Formats
//
// Two output formats are supported:
//
//   - FormatCSV: delimited text with a UTF-8 BOM, a header row, and the
//     platform's historical framing (fields joined by commas, rows
//     terminated by the two-character literal `\n`).
//   - FormatJSON: one compact JSON object per line, payload keys merged
//     under "data.<key>", no header.
//
// # Failure model
//
// Per-record errors are never skipped: any read, encode or write failure
// aborts the whole job and the archive is left truncated, which consumers
// must treat as invalid. A client disconnect cancels the job cooperatively
// between page fetches; the archive is then never finalized.
package export
