// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "benchmark-corpus",
//	    s3.WithPrefix("problems/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	idx := bench.NewIndex(store)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large archives, single PUT with CRC32C otherwise
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible services
package s3
