// Command benchy-inspect prints the metadata and shapes of a problem archive
// as JSON.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/codec"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/internal/fs"
	"github.com/hupe1980/benchy/internal/hash"
	"github.com/hupe1980/benchy/matrix"
	"github.com/hupe1980/benchy/problem"
)

// Options are the command line options of benchy-inspect.
type Options struct {
	Input string `short:"i" long:"input" description:"Archive (.zst) or raw problem (.json) to inspect" required:"true"`
}

// Shape is the size of a matrix or vector.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
	NNZ  int `json:"nnz,omitempty"`
}

// Frame describes the zstd frame of an archive.
type Frame struct {
	CompressedSize int    `json:"compressed_size"`
	ContentSize    uint64 `json:"content_size"`
	HasChecksum    bool   `json:"has_checksum"`
	WindowSize     uint64 `json:"window_size"`
}

// Report is the printed summary.
type Report struct {
	Path     string         `json:"path"`
	Checksum string         `json:"checksum"`
	Frame    *Frame         `json:"frame,omitempty"`
	Metadata map[string]any `json:"metadata"`
	A        Shape          `json:"A"`
	B        Shape          `json:"b"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts Options) error {
	r, err := inspect(opts.Input)
	if err != nil {
		return err
	}
	out, err := codec.GoJSON{}.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

func inspect(path string) (*Report, error) {
	data, err := fs.ReadFile(fs.Default, path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", benchy.ErrIO, path, err)
	}
	r := &Report{Path: path, Checksum: hash.Fingerprint(data)}

	var doc document.Value
	if filepath.Ext(path) == archive.Ext {
		info, err := archive.Inspect(data)
		if err != nil {
			return nil, err
		}
		r.Frame = &Frame{
			CompressedSize: info.CompressedSize,
			ContentSize:    info.ContentSize,
			HasChecksum:    info.HasChecksum,
			WindowSize:     info.WindowSize,
		}
		if doc, err = archive.Decode(data); err != nil {
			return nil, err
		}
	} else if doc, err = problem.Parse(data); err != nil {
		return nil, err
	}

	if doc, err = problem.MigrateLegacyKeys(doc); err != nil {
		return nil, err
	}
	if meta, ok := doc.Get(problem.KeyMetadata); ok {
		if m, ok := meta.ToAny().(map[string]any); ok {
			r.Metadata = m
		}
	}
	if av, ok := doc.Get(problem.KeyA); ok {
		a, err := matrix.DecodeSparse(av)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", problem.KeyA, err)
		}
		r.A.Rows, r.A.Cols = a.Dims()
		r.A.NNZ = a.NNZ()
	}
	if bv, ok := doc.Get(problem.KeyB); ok {
		b, err := matrix.DecodeVector(bv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", problem.KeyB, err)
		}
		r.B.Rows, r.B.Cols = len(b), 1
	}
	return r, nil
}
