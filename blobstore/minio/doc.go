// Package minio provides a BlobStore implementation using the MinIO client.
//
// It serves problem archives from MinIO or any other S3-compatible storage
// (Ceph, SeaweedFS, Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "benchmarks", "problems/")
//	idx := bench.NewIndex(store)
package minio
