// internal/mediaindex/path.go
package mediaindex

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// NormalizePath returns the canonical key for a media path: Unicode NFC,
// then lexically cleaned. The empty path stays empty.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(norm.NFC.String(p))
}
