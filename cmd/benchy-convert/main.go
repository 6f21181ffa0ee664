// Command benchy-convert turns a raw problem dump or an old archive into a
// current problem archive.
//
//	benchy-convert --input poisson.json --output sym/poisson.zst
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/problem"
)

// Options are the command line options of benchy-convert.
type Options struct {
	Input  string `short:"i" long:"input" description:"Raw problem (.json) or archive (.zst) to read" required:"true"`
	Output string `short:"o" long:"output" description:"Archive to write, must end in .zst" required:"true"`
	Level  int    `short:"l" long:"level" description:"Log level: 0 trace, 1 debug, 2 info, 3 warn, 4 error, 5 critical, 6 off" default:"2"`
}

var errOutputExt = errors.New("output must be a " + archive.Ext + " archive")

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level, err := benchy.ParseLevel(opts.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(context.Background(), benchy.NewTextLogger(level), opts); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *benchy.Logger, opts Options) error {
	if filepath.Ext(opts.Output) != archive.Ext {
		logger.ErrorContext(ctx, "cannot convert", "output", opts.Output, "error", errOutputExt)
		return errOutputExt
	}

	doc, err := read(opts.Input, logger)
	if err != nil {
		logger.ErrorContext(ctx, "cannot read input", "input", opts.Input, "error", err)
		return err
	}
	doc, err = problem.MigrateLegacyKeys(doc)
	if err != nil {
		logger.ErrorContext(ctx, "cannot migrate input", "input", opts.Input, "error", err)
		return err
	}

	if err := archive.Save(opts.Output, doc, archive.WithLogger(logger)); err != nil {
		return err
	}
	logger.InfoContext(ctx, "converted", "input", opts.Input, "output", opts.Output)
	return nil
}

// read loads an archive, or parses any other file as a raw problem dump.
func read(path string, logger *benchy.Logger) (document.Value, error) {
	if filepath.Ext(path) == archive.Ext {
		return archive.Load(path, archive.WithLogger(logger))
	}
	return problem.Read(path, problem.WithLogger(logger))
}
