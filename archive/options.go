package archive

import (
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/internal/fs"
	"github.com/klauspost/compress/zstd"
)

// Ext is the file extension expected for archives.
const Ext = ".zst"

type options struct {
	logger *benchy.Logger
	fs     fs.FileSystem
	level  zstd.EncoderLevel
}

// Option configures Save and Load.
type Option func(*options)

// WithLogger sets the logger for extension warnings and I/O diagnostics.
func WithLogger(l *benchy.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileSystem replaces the local file system, mostly for fault injection
// in tests.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithEncoderLevel sets the zstd compression level. The default is
// zstd.SpeedDefault, which corresponds to zstd level 3.
func WithEncoderLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		if level >= zstd.SpeedFastest && level <= zstd.SpeedBestCompression {
			o.level = level
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: benchy.NoopLogger(),
		fs:     fs.Default,
		level:  zstd.SpeedDefault,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
