// Package blobstore provides the storage abstraction a problem corpus is read
// from and written to.
//
// BlobStore is the interface for reading and writing archives. Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system
//   - MemoryStore: in-memory, for tests
//   - CachingStore: wraps another store and keeps recently read blobs in memory
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)      // Open for reading
//	    Put(ctx, name, data) error         // Atomic write
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
