package mediaindex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Scanner refreshes the index record for individual paths.
type Scanner struct {
	store  *Store
	roots  []string
	logger *slog.Logger
}

// NewScanner creates a scanner writing to store. When roots is non-empty only
// paths beneath one of them are indexed.
func NewScanner(store *Store, roots []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r != "" {
			cleaned = append(cleaned, NormalizePath(r))
		}
	}
	return &Scanner{
		store:  store,
		roots:  cleaned,
		logger: logger.With("component", "mediaindex"),
	}
}

// Name returns the backend name.
func (s *Scanner) Name() string {
	return "local"
}

// Scan brings the index record for path in line with the filesystem.
// A path that no longer exists is removed from the index.
func (s *Scanner) Scan(ctx context.Context, path, mimeType string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("scan %q: path must be absolute", path)
	}
	path = NormalizePath(path)
	if !s.allowed(path) {
		return fmt.Errorf("scan %s: %w", path, ErrOutsideRoots)
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.store.Delete(ctx, path); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		s.logger.Debug("removed missing file from index", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("scan %s: %w", path, ErrNotRegularFile)
	}

	if mimeType == "" {
		mimeType = DetectMimeType(path)
	}

	f := &File{
		Path:       path,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
		MimeType:   mimeType,
	}
	if hasTags(mimeType) {
		s.readTags(path, f)
	}
	if f.Title == "" {
		f.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := s.store.Upsert(ctx, f); err != nil {
		return err
	}
	s.logger.Debug("indexed file", "path", path, "mime", mimeType, "size", f.SizeBytes)
	return nil
}

// readTags fills metadata from embedded tags. Unreadable tags are not an
// error; the file is still indexed.
func (s *Scanner) readTags(path string, f *File) {
	fh, err := os.Open(path)
	if err != nil {
		s.logger.Debug("open for tags failed", "path", path, "error", err)
		return
	}
	defer func() { _ = fh.Close() }()

	m, err := tag.ReadFrom(fh)
	if err != nil {
		if !errors.Is(err, tag.ErrNoTagsFound) {
			s.logger.Debug("read tags failed", "path", path, "error", err)
		}
		return
	}

	f.Title = m.Title()
	f.Artist = m.Artist()
	if albumArtist := m.AlbumArtist(); albumArtist != "" {
		f.Artist = albumArtist
	}
	f.Album = m.Album()
	f.Year = m.Year()
}

func (s *Scanner) allowed(path string) bool {
	if len(s.roots) == 0 {
		return true
	}
	for _, root := range s.roots {
		if root == string(filepath.Separator) || path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
