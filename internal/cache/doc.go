// Package cache provides a byte-bounded LRU cache for immutable blob contents.
package cache
