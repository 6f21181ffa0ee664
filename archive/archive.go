package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/blobstore"
	"github.com/hupe1980/benchy/codec"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/internal/fs"
)

var packer codec.MsgPack

// Marshal packs doc into msgpack bytes. Integers use their smallest encoding,
// floats are written as float32 when that is lossless, maps in key order.
func Marshal(doc document.Value) ([]byte, error) {
	return packer.Marshal(doc)
}

// Unmarshal unpacks exactly one document from data. Trailing bytes fail with
// benchy.ErrBadFormat.
func Unmarshal(data []byte) (document.Value, error) {
	var doc document.Value
	if err := packer.Unmarshal(data, &doc); err != nil {
		return document.Value{}, err
	}
	return doc, nil
}

// Encode returns the archive bytes of doc.
func Encode(doc document.Value, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	return encode(doc, o)
}

func encode(doc document.Value, o options) ([]byte, error) {
	packed, err := Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
	}
	return compressLevel(packed, o.level), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (document.Value, error) {
	packed, err := Decompress(data)
	if err != nil {
		return document.Value{}, err
	}
	return Unmarshal(packed)
}

// Save writes doc to path as an archive.
//
// A path without the .zst extension is written anyway and logged as a
// warning. The file is replaced atomically: on failure path keeps its previous
// content and no temporary file is left behind.
func Save(path string, doc document.Value, opts ...Option) error {
	o := applyOptions(opts)
	ctx := context.Background()
	checkExt(ctx, o, path)

	data, err := encode(doc, o)
	if err != nil {
		o.logger.LogSave(ctx, path, 0, err)
		return err
	}
	if err := fs.WriteFileAtomic(o.fs, path, data, 0o644); err != nil {
		err = fmt.Errorf("%w: write %s: %v", benchy.ErrIO, path, err)
		o.logger.LogSave(ctx, path, 0, err)
		return err
	}
	o.logger.LogSave(ctx, path, len(data), nil)
	return nil
}

// Load reads the archive at path.
func Load(path string, opts ...Option) (document.Value, error) {
	o := applyOptions(opts)
	ctx := context.Background()
	checkExt(ctx, o, path)

	data, err := fs.ReadFile(o.fs, path)
	if err != nil {
		err = fmt.Errorf("%w: read %s: %v", benchy.ErrIO, path, err)
		o.logger.LogLoad(ctx, path, 0, err)
		return document.Value{}, err
	}
	doc, err := Decode(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		o.logger.LogLoad(ctx, path, len(data), err)
		return document.Value{}, err
	}
	o.logger.LogLoad(ctx, path, len(data), nil)
	return doc, nil
}

// SaveBlob writes doc as an archive blob named name.
func SaveBlob(ctx context.Context, store blobstore.BlobStore, name string, doc document.Value, opts ...Option) error {
	o := applyOptions(opts)
	checkExt(ctx, o, name)

	data, err := encode(doc, o)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		err = fmt.Errorf("%w: put %s: %v", benchy.ErrIO, name, err)
		o.logger.LogSave(ctx, name, 0, err)
		return err
	}
	o.logger.LogSave(ctx, name, len(data), nil)
	return nil
}

// LoadBlob reads the archive blob named name. A missing blob matches both
// benchy.ErrIO and blobstore.ErrNotFound.
func LoadBlob(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (document.Value, error) {
	o := applyOptions(opts)
	checkExt(ctx, o, name)

	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			err = fmt.Errorf("%w: %s: %w", benchy.ErrIO, name, err)
		} else {
			err = fmt.Errorf("%w: read %s: %v", benchy.ErrIO, name, err)
		}
		o.logger.LogLoad(ctx, name, 0, err)
		return document.Value{}, err
	}
	doc, err := Decode(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		o.logger.LogLoad(ctx, name, len(data), err)
		return document.Value{}, err
	}
	o.logger.LogLoad(ctx, name, len(data), nil)
	return doc, nil
}

func checkExt(ctx context.Context, o options, path string) {
	if filepath.Ext(path) != Ext {
		o.logger.LogExtension(ctx, path, Ext)
	}
}
