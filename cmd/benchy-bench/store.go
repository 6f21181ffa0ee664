package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/benchy/blobstore"
	miniostore "github.com/hupe1980/benchy/blobstore/minio"
	s3store "github.com/hupe1980/benchy/blobstore/s3"
)

// StoreOptions select where the archives are read from. Credentials come from
// the environment: MINIO_ACCESS_KEY and MINIO_SECRET_KEY for minio, the
// default AWS chain for s3.
type StoreOptions struct {
	Kind     string `long:"store" description:"Archive store" choice:"local" choice:"minio" choice:"s3" default:"local"`
	Bucket   string `long:"bucket" env:"BENCHY_BUCKET" description:"Bucket of a remote store"`
	Endpoint string `long:"endpoint" env:"BENCHY_ENDPOINT" description:"Endpoint of a remote store"`
	Region   string `long:"region" env:"AWS_REGION" description:"Region of the s3 store"`
	Insecure bool   `long:"insecure" description:"Use plain HTTP for the minio store"`
}

// openStore returns the store rooted at root. For remote stores root is a
// key prefix inside the bucket.
func openStore(ctx context.Context, opts StoreOptions, root string) (blobstore.BlobStore, error) {
	switch opts.Kind {
	case "", "local":
		return blobstore.NewLocalStore(root), nil
	case "minio":
		if opts.Bucket == "" || opts.Endpoint == "" {
			return nil, errors.New("minio store needs --bucket and --endpoint")
		}
		client, err := minio.New(opts.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: !opts.Insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, opts.Bucket, remotePrefix(root)), nil
	case "s3":
		if opts.Bucket == "" {
			return nil, errors.New("s3 store needs --bucket")
		}
		s3Opts := []s3store.Option{s3store.WithPrefix(remotePrefix(root))}
		if opts.Region != "" {
			s3Opts = append(s3Opts, s3store.WithRegion(opts.Region))
		}
		if opts.Endpoint != "" {
			s3Opts = append(s3Opts, s3store.WithEndpoint(opts.Endpoint))
		}
		return s3store.New(ctx, opts.Bucket, s3Opts...)
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Kind)
	}
}

func remotePrefix(root string) string {
	if root == "." {
		return ""
	}
	return root
}
