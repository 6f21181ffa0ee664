// Package problem reads and writes benchmark linear systems.
//
// A Problem is a sparse matrix A, a right-hand side b and the metadata that
// describes where the system came from. Problems are written once as raw
// text, where every number is a quoted hexadecimal float so that text round
// trips are exact, and later converted to compressed archives.
//
// Files written by older tools differ from the current layout in a few key
// names. Read and MigrateLegacyKeys rewrite them so the rest of the module
// only sees the current names.
package problem
