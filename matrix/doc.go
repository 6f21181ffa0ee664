// Package matrix converts dense and sparse matrices to and from documents.
//
// Dense matrices are gonum *mat.Dense values. A matrix with more than one
// column is encoded as an array of row arrays, a single column as a flat array:
//
//	[[1, 2], [3, 4]]   2x2
//	[1, 2, 3]          3x1
//
// Sparse matrices use compressed sparse column storage and are encoded as the
// 5-tuple [rows, cols, row_indices, col_indices, values] with entries in
// column-major order. Decoding sums duplicate (row, col) entries.
//
// FormatHex and ParseHex convert floats to and from the hexadecimal text used
// by raw problem files, which round-trips every value exactly.
package matrix
