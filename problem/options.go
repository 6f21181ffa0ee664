package problem

import (
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/internal/fs"
)

type options struct {
	logger *benchy.Logger
	fs     fs.FileSystem
}

// Option configures Write, Read and Load.
type Option func(*options)

// WithLogger sets the logger receiving validation and I/O diagnostics.
func WithLogger(l *benchy.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileSystem replaces the local file system.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: benchy.NoopLogger(),
		fs:     fs.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
