package bench

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/blobstore"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/internal/hash"
	"github.com/hupe1980/benchy/matrix"
	"github.com/hupe1980/benchy/problem"
)

// ErrUnknownExperiment is returned for an id that was never added.
var ErrUnknownExperiment = errors.New("unknown experiment")

// Entry identifies the problem behind an experiment id.
type Entry struct {
	ID int
	// Path is the archive name in the store.
	Path string
	// DisplayName is "<parent_dir>/<filename>" of Path.
	DisplayName string
	// Dataset is metadata.dataset_name of the archive.
	Dataset string
	// NNZ is the number of stored entries of A.
	NNZ int
	// Checksum is the CRC32C of the archive bytes.
	Checksum string
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithIndexLogger sets the logger used when loading archives.
func WithIndexLogger(l *benchy.Logger) IndexOption {
	return func(x *Index) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithCache keeps up to capacity bytes of archives in memory, so an archive
// read by the runner is not fetched again when the report is resolved.
func WithCache(capacity int64) IndexOption {
	return func(x *Index) {
		if capacity > 0 {
			x.cache = capacity
		}
	}
}

// Index maps experiment ids to archive names.
//
// Ids are dense and assigned in insertion order. An Index is populated before
// a run starts and only read afterwards; Add must not run concurrently with
// other methods.
type Index struct {
	store  blobstore.BlobStore
	logger *benchy.Logger
	cache  int64
	paths  []string
}

// NewIndex creates an empty index over store.
func NewIndex(store blobstore.BlobStore, opts ...IndexOption) *Index {
	x := &Index{store: store, logger: benchy.NoopLogger()}
	for _, opt := range opts {
		opt(x)
	}
	if x.cache > 0 {
		x.store = blobstore.NewCachingStore(store, x.cache)
	}
	return x
}

// Add appends name and returns its experiment id.
func (x *Index) Add(name string) int {
	x.paths = append(x.paths, name)
	return len(x.paths) - 1
}

// Len returns the number of experiments.
func (x *Index) Len() int { return len(x.paths) }

// Path returns the archive name of id.
func (x *Index) Path(id int) (string, bool) {
	if id < 0 || id >= len(x.paths) {
		return "", false
	}
	return x.paths[id], true
}

// Resolve loads the archive of id and describes it.
func (x *Index) Resolve(ctx context.Context, id int) (Entry, error) {
	name, doc, data, err := x.load(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	av, ok := doc.Get(problem.KeyA)
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w: missing %q", name, benchy.ErrBadFormat, problem.KeyA)
	}
	a, err := matrix.DecodeSparse(av)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", name, err)
	}
	dv, ok := doc.Lookup(problem.KeyMetadata, problem.KeyDatasetName)
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w: missing metadata.%s", name, benchy.ErrBadFormat, problem.KeyDatasetName)
	}
	dataset, ok := dv.AsString()
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w: metadata.%s is a %s", name, benchy.ErrBadFormat, problem.KeyDatasetName, dv.Kind())
	}

	return Entry{
		ID:          id,
		Path:        name,
		DisplayName: DisplayName(name),
		Dataset:     dataset,
		NNZ:         a.NNZ(),
		Checksum:    hash.Fingerprint(data),
	}, nil
}

// ResolveAll resolves every experiment.
func (x *Index) ResolveAll(ctx context.Context) (map[int]Entry, error) {
	entries := make(map[int]Entry, len(x.paths))
	for id := range x.paths {
		e, err := x.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		entries[id] = e
	}
	return entries, nil
}

// Problem loads and decodes the problem of id.
func (x *Index) Problem(ctx context.Context, id int) (*problem.Problem, error) {
	name, doc, _, err := x.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := problem.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

func (x *Index) load(ctx context.Context, id int) (string, document.Value, []byte, error) {
	name, ok := x.Path(id)
	if !ok {
		return "", document.Value{}, nil, fmt.Errorf("%w: %d", ErrUnknownExperiment, id)
	}
	data, err := blobstore.ReadAll(ctx, x.store, name)
	if err != nil {
		err = fmt.Errorf("%w: read %s: %w", benchy.ErrIO, name, err)
		x.logger.LogLoad(ctx, name, 0, err)
		return name, document.Value{}, nil, err
	}
	doc, err := archive.Decode(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		x.logger.LogLoad(ctx, name, len(data), err)
		return name, document.Value{}, nil, err
	}
	x.logger.LogLoad(ctx, name, len(data), nil)
	return name, doc, data, nil
}

// DisplayName returns the parent directory and file name of a slash
// separated name.
func DisplayName(name string) string {
	dir, file := path.Split(path.Clean(name))
	parent := path.Base(dir)
	if dir == "" || parent == "/" || parent == "." {
		return file
	}
	return parent + "/" + file
}
