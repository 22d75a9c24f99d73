// Package fs provides the filesystem photo provider.
//
// It scans a directory laid out as <root>/<YYYY-MM-DD>/<user>/<photo> and
// identifies every photo by the SHA-256 of its bytes, so the same picture under
// two names or in two folders is one photo. Hidden entries are ignored, as are
// stray files next to day or user folders and folders nested inside a user
// folder. Symbolic links are followed.
//
// Any failure aborts the scan with a *ScanError naming the offending path.
//
// The filesystem is an afero.Fs so that tests can run against an in-memory tree:
//
//	p := fs.NewProvider(afero.NewOsFs(), "./photo_example", log)
//	snapshot, err := p.Snapshot(ctx)
package fs
