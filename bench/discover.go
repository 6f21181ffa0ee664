package bench

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/blobstore"
)

var (
	// ErrNoArchives is returned by Discover when the store holds no archives.
	ErrNoArchives = errors.New("no archives found")

	// ErrNoMatch is returned by Discover when no archive matches the pattern.
	ErrNoMatch = errors.New("no archive matches pattern")
)

// SkipDir is the top-level directory Discover ignores. It holds the small
// fixtures of the test suite.
const SkipDir = "test"

// DefaultPattern selects every archive.
const DefaultPattern = `(.*.zst)`

// Discover returns the sorted names of all archives in store whose name fully
// matches pattern. Archives below the top-level "test" directory are skipped.
func Discover(ctx context.Context, store blobstore.BlobStore, pattern string) ([]string, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var archives []string
	for _, name := range names {
		if path.Ext(name) != archive.Ext {
			continue
		}
		if top, _, found := strings.Cut(name, "/"); found && top == SkipDir {
			continue
		}
		archives = append(archives, name)
	}
	if len(archives) == 0 {
		return nil, ErrNoArchives
	}

	var matched []string
	for _, name := range archives {
		if re.MatchString(name) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}
	slices.Sort(matched)
	return matched, nil
}
