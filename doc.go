// Package benchy holds the shared error kinds and the structured logger of the
// benchmark corpus toolkit.
//
// The toolkit stores linear systems Ax = b in two formats:
//
//   - raw problem files: JSON text with hexadecimal float strings, written by
//     package problem and migrated to the current schema when read back
//   - compressed archives: a msgpack-packed document inside a zstd frame,
//     handled by package archive
//
// Package matrix converts dense and sparse matrices to and from the generic
// document tree of package document, and package bench associates archive
// paths with experiment ids for the benchmark runner.
//
// # Errors
//
// All packages wrap one of the sentinel errors of this package, so callers can
// classify failures with errors.Is:
//
//	doc, err := archive.Load("problems/sym/bcsstk01.zst")
//	if errors.Is(err, benchy.ErrCompression) {
//	    // corrupt or truncated frame
//	}
package benchy
