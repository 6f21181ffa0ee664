// Package fs is the file layer under archives, raw problem files and the
// local blob store.
//
//   - [File] and [FileSystem] cover the calls those writers and readers make.
//   - [LocalFS] runs them against the os package.
//   - [FaultyFS] fails chosen steps (open, write, sync, close, rename) so tests
//     can check that an interrupted save never replaces a good file.
//
// [WriteFileAtomic] is the single write path used for archives, raw problem
// files and local blobs: temporary file, fsync, rename, directory sync.
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	data, err := fs.ReadFile(fs.Default, path)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 16})
//
// This package intentionally does NOT include context.Context parameters.
// Local filesystem operations are not interruptible at the syscall level; slow
// remote reads go through the blobstore package instead.
package fs
