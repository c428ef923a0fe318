package mediaindex

import "errors"

var (
	// ErrNotFound indicates the path is not in the index.
	ErrNotFound = errors.New("not found")

	// ErrOutsideRoots indicates the path is not under any configured root.
	ErrOutsideRoots = errors.New("path outside configured roots")

	// ErrNotRegularFile indicates the path exists but is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)
