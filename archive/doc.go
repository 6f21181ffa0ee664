// Package archive stores documents as compressed archives.
//
// An archive is a single zstd frame whose content is one msgpack encoded
// document.Value. The frame always declares its content size, and Load
// rejects frames that do not, so a truncated or foreign file is reported as
// benchy.ErrCompression rather than decoded into garbage.
//
//	if err := archive.Save("sym/poisson.zst", doc); err != nil {
//	    return err
//	}
//	doc, err := archive.Load("sym/poisson.zst")
//
// Archives can also live in a blobstore.BlobStore (SaveBlob, LoadBlob).
package archive
