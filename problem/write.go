package problem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/codec"
	"github.com/hupe1980/benchy/internal/fs"
	"github.com/hupe1980/benchy/matrix"
)

var text codec.GoJSON

// Write validates p and writes it to path as a raw problem file.
//
// It reports failure by returning false and never panics: every failed field
// is logged on its own, as are I/O errors. The file is replaced atomically.
//
// Values are written as quoted hexadecimal floats rounded to p.Scalar, so a
// float problem reads back bit for bit at single precision.
func Write(path string, p *Problem, opts ...Option) bool {
	o := applyOptions(opts)
	ctx := context.Background()
	log := o.logger.WithPath(path)

	if p == nil {
		log.ErrorContext(ctx, "problem is nil")
		return false
	}
	if err := p.Validate(); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				var verr *benchy.ValidationError
				if errors.As(e, &verr) {
					o.logger.LogValidation(ctx, path, verr)
				}
			}
		}
		return false
	}

	data, err := Format(p)
	if err != nil {
		o.logger.LogSave(ctx, path, 0, err)
		return false
	}
	if err := fs.WriteFileAtomic(o.fs, path, data, 0o644); err != nil {
		o.logger.LogSave(ctx, path, 0, fmt.Errorf("%w: write %s: %v", benchy.ErrIO, path, err))
		return false
	}
	o.logger.LogSave(ctx, path, len(data), nil)
	return true
}

// Format renders p as raw problem text without validating it.
func Format(p *Problem) ([]byte, error) {
	var buf bytes.Buffer
	str := func(s string) error {
		b, err := text.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	buf.WriteString(`{"metadata": {`)
	fmt.Fprintf(&buf, `"%s": %d, `, KeyIsSPD, flagInt(p.IsSPD))
	fmt.Fprintf(&buf, `"%s": %d, `, KeyIsSequence, flagInt(p.IsSequence))
	fmt.Fprintf(&buf, `"%s": %d, `, KeyDimension, p.Dimension)
	fmt.Fprintf(&buf, `"%s": "%s", `, KeyScalarKind, p.Scalar)
	for _, f := range []struct{ key, value string }{
		{KeyDescription, p.Description},
		{KeyDatasetName, p.DatasetName},
		{KeyProjectURL, p.ProjectURL},
		{KeyContactEmail, p.ContactEmail},
	} {
		fmt.Fprintf(&buf, `"%s": `, f.key)
		if err := str(f.value); err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		buf.WriteString(", ")
	}
	fmt.Fprintf(&buf, `"%s": %d}`, KeyRawDumpVersion, RawDumpVersion)

	rows, cols := 0, 0
	nnz := 0
	if p.A != nil {
		rows, cols = p.A.Dims()
		nnz = p.A.NNZ()
	}
	fmt.Fprintf(&buf, `, "A":{ "rows":%d, "cols":%d, "nnz":%d, "triplets":[`, rows, cols, nnz)
	if p.A != nil {
		first := true
		p.A.Each(func(i, j int, v float64) {
			if !first {
				buf.WriteString(", ")
			}
			first = false
			buf.WriteByte('[')
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString(", ")
			buf.WriteString(strconv.Itoa(j))
			buf.WriteString(`, "`)
			buf.WriteString(matrix.FormatHex(p.Scalar.Round(v)))
			buf.WriteString(`"]`)
		})
	}
	buf.WriteString(`]}, "b":[`)
	for i, v := range p.B {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('"')
		buf.WriteString(matrix.FormatHex(p.Scalar.Round(v)))
		buf.WriteByte('"')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func flagInt(b *bool) int {
	switch {
	case b == nil:
		return -1
	case *b:
		return 1
	default:
		return 0
	}
}
