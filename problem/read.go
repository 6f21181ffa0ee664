package problem

import (
	"context"
	"fmt"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/internal/fs"
	"github.com/hupe1980/benchy/matrix"
)

// Read loads a raw problem file written by Write.
//
// The file must carry metadata.raw_dump_version, otherwise it was not written
// by Write and benchy.ErrUnsupportedFormat is returned. The version is moved
// to metadata.version_number. A and b are parsed at the precision named by
// metadata.scalar_kind ("double", anything else is float) and replaced by
// their numeric documents, the sparse tuple for A and a flat array for b.
func Read(path string, opts ...Option) (document.Value, error) {
	o := applyOptions(opts)
	ctx := context.Background()

	data, err := fs.ReadFile(o.fs, path)
	if err != nil {
		err = fmt.Errorf("%w: read %s: %v", benchy.ErrIO, path, err)
		o.logger.LogLoad(ctx, path, 0, err)
		return document.Value{}, err
	}
	doc, err := Parse(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		o.logger.LogLoad(ctx, path, len(data), err)
		return document.Value{}, err
	}
	o.logger.LogLoad(ctx, path, len(data), nil)
	return doc, nil
}

// Load reads a raw problem file and decodes it.
func Load(path string, opts ...Option) (*Problem, error) {
	doc, err := Read(path, opts...)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// Parse is Read on in-memory text.
func Parse(data []byte) (document.Value, error) {
	doc, err := document.ParseJSON(data)
	if err != nil {
		return document.Value{}, err
	}

	meta, ok := doc.Get(KeyMetadata)
	if !ok || meta.Kind() != document.KindMap {
		return document.Value{}, fmt.Errorf("%w: no metadata, not a raw problem file", benchy.ErrUnsupportedFormat)
	}
	version, ok := meta.Get(KeyRawDumpVersion)
	if !ok {
		return document.Value{}, fmt.Errorf("%w: metadata has no %s, not a raw problem file",
			benchy.ErrUnsupportedFormat, KeyRawDumpVersion)
	}
	meta.Set(KeyVersionNumber, version)
	meta.Delete(KeyRawDumpVersion)

	if err := migrateMetadata(meta); err != nil {
		return document.Value{}, err
	}

	kind := matrix.Float32
	if v, ok := meta.Get(KeyScalarKind); ok {
		s, _ := v.AsString()
		kind = matrix.ParseScalarKind(s)
	}

	av, ok := doc.Get(KeyA)
	if !ok {
		return document.Value{}, fmt.Errorf("%w: missing %q", benchy.ErrBadFormat, KeyA)
	}
	a, err := parseMatrix(av, kind)
	if err != nil {
		return document.Value{}, fmt.Errorf("%s: %w", KeyA, err)
	}
	doc.Set(KeyA, matrix.EncodeSparse(a))

	bv, ok := doc.Get(KeyB)
	if !ok {
		return document.Value{}, fmt.Errorf("%w: missing %q", benchy.ErrBadFormat, KeyB)
	}
	b, err := parseVector(bv, kind)
	if err != nil {
		return document.Value{}, fmt.Errorf("%s: %w", KeyB, err)
	}
	doc.Set(KeyB, matrix.EncodeVector(b))

	return doc, nil
}

// parseMatrix decodes {"rows", "cols", "nnz", "triplets": [[r, c, "hex"], ...]}.
// nnz is informational; duplicate triplets are summed.
func parseMatrix(v document.Value, kind matrix.ScalarKind) (*matrix.Sparse, error) {
	if v.Kind() != document.KindMap {
		return nil, fmt.Errorf("%w: matrix must be a map, got %s", benchy.ErrBadFormat, v.Kind())
	}
	rows, err := dim(v, "rows")
	if err != nil {
		return nil, err
	}
	cols, err := dim(v, "cols")
	if err != nil {
		return nil, err
	}

	tv, ok := v.Get("triplets")
	if !ok || tv.Kind() != document.KindArray {
		return nil, fmt.Errorf("%w: triplets must be an array", benchy.ErrBadFormat)
	}
	triplets := make([]matrix.Triplet, tv.Len())
	for k, entry := range tv.Items() {
		if entry.Kind() != document.KindArray || entry.Len() != 3 {
			return nil, fmt.Errorf("%w: triplet %d must have 3 elements, got %d", benchy.ErrBadFormat, k, entry.Len())
		}
		i, ok := entry.Index(0).AsInt()
		if !ok {
			return nil, fmt.Errorf("%w: triplet %d row is not an integer", benchy.ErrBadFormat, k)
		}
		j, ok := entry.Index(1).AsInt()
		if !ok {
			return nil, fmt.Errorf("%w: triplet %d column is not an integer", benchy.ErrBadFormat, k)
		}
		f, err := hexValue(entry.Index(2), kind)
		if err != nil {
			return nil, fmt.Errorf("triplet %d: %w", k, err)
		}
		triplets[k] = matrix.Triplet{Row: int(i), Col: int(j), Value: f}
	}
	return matrix.NewSparse(rows, cols, triplets)
}

func parseVector(v document.Value, kind matrix.ScalarKind) ([]float64, error) {
	if v.Kind() != document.KindArray {
		return nil, fmt.Errorf("%w: vector must be an array, got %s", benchy.ErrBadFormat, v.Kind())
	}
	out := make([]float64, v.Len())
	for i, item := range v.Items() {
		f, err := hexValue(item, kind)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func hexValue(v document.Value, kind matrix.ScalarKind) (float64, error) {
	s, ok := v.AsString()
	if !ok {
		return 0, fmt.Errorf("%w: value must be a hex float string, got %s", benchy.ErrBadFormat, v.Kind())
	}
	return matrix.ParseHex(s, kind)
}

func dim(v document.Value, key string) (int, error) {
	d, ok := v.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", benchy.ErrBadFormat, key)
	}
	n, ok := d.AsInt()
	if !ok || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %s", benchy.ErrBadFormat, key, d)
	}
	return int(n), nil
}
