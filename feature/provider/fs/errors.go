package fs

import "fmt"

// ErrorKind classifies a scan failure.
type ErrorKind string

const (
	KindReadDir   ErrorKind = "read_dir"
	KindReadFile  ErrorKind = "read_file"
	KindDirEntry  ErrorKind = "dir_entry"
	KindParseDate ErrorKind = "parse_date"
)

// ScanError reports which path a filesystem scan failed on.
type ScanError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	var what string
	switch e.Kind {
	case KindReadDir:
		what = "cannot read directory"
	case KindReadFile:
		what = "cannot read file"
	case KindDirEntry:
		what = "cannot get directory entry"
	case KindParseDate:
		what = "cannot parse date of day folder"
	default:
		what = string(e.Kind)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", what, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", what, e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
