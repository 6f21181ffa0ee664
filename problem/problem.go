package problem

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/matrix"
)

// Problem is a linear system A x = b with its provenance.
type Problem struct {
	// A is the system matrix.
	A *matrix.Sparse
	// B is the right-hand side. Systems with several right-hand sides are
	// stored as separate problems.
	B []float64

	// Scalar is the precision the system was produced with.
	Scalar matrix.ScalarKind

	// IsSPD tells whether A is symmetric positive definite. Required.
	IsSPD *bool
	// IsSequence tells whether the system is one of a sequence, for example
	// the solves of a Newton iteration. Required.
	IsSequence *bool

	// Dimension of the underlying geometric problem, typically 2 or 3.
	Dimension int

	Description  string
	DatasetName  string
	ProjectURL   string
	ContactEmail string

	// Version is the raw dump version the problem was read from. It is zero
	// for problems built in memory.
	Version int
}

// Bool returns a pointer to v, for the IsSPD and IsSequence fields.
func Bool(v bool) *bool { return &v }

// Validate checks that every required field is set. The returned error is a
// *multierror.Error holding one *benchy.ValidationError per failed field.
func (p *Problem) Validate() error {
	var result *multierror.Error
	fail := func(field, reason string) {
		result = multierror.Append(result, &benchy.ValidationError{Field: field, Reason: reason})
	}

	if p.A == nil || p.A.IsEmpty() {
		fail(KeyA, "matrix is empty")
	}
	if len(p.B) == 0 {
		fail(KeyB, "vector is empty")
	} else if p.A != nil && !p.A.IsEmpty() {
		if r, _ := p.A.Dims(); r != len(p.B) {
			fail(KeyB, fmt.Sprintf("has %d entries, A has %d rows", len(p.B), r))
		}
	}
	if p.Scalar != matrix.Float32 && p.Scalar != matrix.Float64 {
		fail(KeyScalarKind, "must be float or double")
	}
	if p.IsSPD == nil {
		fail(KeyIsSPD, "must be set")
	}
	if p.IsSequence == nil {
		fail(KeyIsSequence, "must be set")
	}
	if p.Dimension <= 0 {
		fail(KeyDimension, "must be positive")
	}
	for _, f := range []struct{ key, value string }{
		{KeyDescription, p.Description},
		{KeyDatasetName, p.DatasetName},
		{KeyProjectURL, p.ProjectURL},
		{KeyContactEmail, p.ContactEmail},
	} {
		if f.value == "" {
			fail(f.key, "is empty")
		}
	}

	return result.ErrorOrNil()
}

// Document returns the archive document of p: numeric A and b, and metadata
// tagged with the current version number. Unset flags are omitted.
func (p *Problem) Document() document.Value {
	meta := document.Map(map[string]document.Value{
		KeyDimension:     document.Int(int64(p.Dimension)),
		KeyScalarKind:    document.String(p.Scalar.String()),
		KeyDescription:   document.String(p.Description),
		KeyDatasetName:   document.String(p.DatasetName),
		KeyProjectURL:    document.String(p.ProjectURL),
		KeyContactEmail:  document.String(p.ContactEmail),
		KeyVersionNumber: document.Int(RawDumpVersion),
	})
	if p.IsSPD != nil {
		meta.Set(KeyIsSPD, flag(*p.IsSPD))
	}
	if p.IsSequence != nil {
		meta.Set(KeyIsSequence, flag(*p.IsSequence))
	}

	doc := document.Map(map[string]document.Value{
		KeyMetadata: meta,
		KeyB:        matrix.EncodeVector(p.B),
	})
	if p.A != nil {
		doc.Set(KeyA, matrix.EncodeSparse(p.A))
	} else {
		doc.Set(KeyA, matrix.EncodeSparse(&matrix.Sparse{}))
	}
	return doc
}

// Decode builds a Problem from a loaded document: an archive, or a raw file
// after Read. Legacy key names are accepted. Missing metadata leaves the
// corresponding fields unset; call Validate to enforce them.
func Decode(doc document.Value) (*Problem, error) {
	doc, err := MigrateLegacyKeys(doc)
	if err != nil {
		return nil, err
	}
	if doc.Kind() != document.KindMap {
		return nil, fmt.Errorf("%w: problem must be a map, got %s", benchy.ErrBadFormat, doc.Kind())
	}

	p := &Problem{Scalar: matrix.Float32}

	av, ok := doc.Get(KeyA)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", benchy.ErrBadFormat, KeyA)
	}
	if p.A, err = matrix.DecodeSparse(av); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyA, err)
	}

	bv, ok := doc.Get(KeyB)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", benchy.ErrBadFormat, KeyB)
	}
	if p.B, err = matrix.DecodeVector(bv); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyB, err)
	}

	meta, ok := doc.Get(KeyMetadata)
	if !ok {
		return p, nil
	}
	if meta.Kind() != document.KindMap {
		return nil, fmt.Errorf("%w: metadata must be a map, got %s", benchy.ErrBadFormat, meta.Kind())
	}
	return p, p.decodeMetadata(meta)
}

func (p *Problem) decodeMetadata(meta document.Value) error {
	if v, ok := meta.Get(KeyScalarKind); ok {
		s, _ := v.AsString()
		p.Scalar = matrix.ParseScalarKind(s)
	}

	var err error
	if p.IsSPD, err = flagField(meta, KeyIsSPD); err != nil {
		return err
	}
	if p.IsSequence, err = flagField(meta, KeyIsSequence); err != nil {
		return err
	}

	if v, ok := meta.Get(KeyDimension); ok {
		n, ok := v.AsInt()
		if !ok {
			return fmt.Errorf("%w: %s must be an integer, got %s", benchy.ErrBadFormat, KeyDimension, v)
		}
		p.Dimension = int(n)
	}

	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyDescription, &p.Description},
		{KeyDatasetName, &p.DatasetName},
		{KeyProjectURL, &p.ProjectURL},
		{KeyContactEmail, &p.ContactEmail},
	} {
		v, ok := meta.Get(f.key)
		if !ok {
			continue
		}
		s, ok := v.AsString()
		if !ok {
			return fmt.Errorf("%w: %s must be a string, got %s", benchy.ErrBadFormat, f.key, v.Kind())
		}
		*f.dst = s
	}

	version, ok := meta.Get(KeyVersionNumber)
	if !ok {
		version, ok = meta.Get(KeyRawDumpVersion)
	}
	if ok {
		n, _ := version.AsInt()
		p.Version = int(n)
	}
	return nil
}

func flag(b bool) document.Value {
	if b {
		return document.Int(1)
	}
	return document.Int(0)
}

// flagField reads a 0/1 integer or a boolean.
func flagField(meta document.Value, key string) (*bool, error) {
	v, ok := meta.Get(key)
	if !ok || v.IsNull() {
		return nil, nil
	}
	if b, ok := v.AsBool(); ok {
		return &b, nil
	}
	n, ok := v.AsInt()
	switch {
	case ok && n == 0:
		return Bool(false), nil
	case ok && n == 1:
		return Bool(true), nil
	case ok && n == -1:
		// Unset marker of early writers.
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s must be 0 or 1, got %s", benchy.ErrBadFormat, key, v)
}
