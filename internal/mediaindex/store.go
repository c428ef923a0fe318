// Package mediaindex keeps a local SQLite index of scanned media files.
package mediaindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// File is one indexed media file.
type File struct {
	ID         int64
	Path       string
	SizeBytes  int64
	ModifiedAt time.Time
	MimeType   string
	Title      string
	Artist     string
	Album      string
	Year       int
	IndexedAt  time.Time
}

// Filter narrows List results.
type Filter struct {
	MimePrefix string // e.g. "audio/"; empty matches all
	Limit      int    // <= 0 means no limit
	Offset     int
}

// Store provides access to indexed files.
type Store struct {
	db *sql.DB
}

// NewStore creates a new index store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const fileColumns = "id, path, size_bytes, modified_at, mime_type, title, artist, album, year, indexed_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*File, error) {
	f := &File{}
	err := row.Scan(&f.ID, &f.Path, &f.SizeBytes, &f.ModifiedAt, &f.MimeType,
		&f.Title, &f.Artist, &f.Album, &f.Year, &f.IndexedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Upsert inserts f or replaces the record with the same path.
// Sets ID and IndexedAt on the struct.
func (s *Store) Upsert(ctx context.Context, f *File) error {
	now := time.Now()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO indexed_files (path, size_bytes, modified_at, mime_type, title, artist, album, year, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			modified_at = excluded.modified_at,
			mime_type = excluded.mime_type,
			title = excluded.title,
			artist = excluded.artist,
			album = excluded.album,
			year = excluded.year,
			indexed_at = excluded.indexed_at
		RETURNING id`,
		f.Path, f.SizeBytes, f.ModifiedAt, f.MimeType, f.Title, f.Artist, f.Album, f.Year, now,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", f.Path, mapSQLiteError(err))
	}
	f.IndexedAt = now
	return nil
}

// Get retrieves a file by path.
// Returns ErrNotFound if the path is not indexed.
func (s *Store) Get(ctx context.Context, path string) (*File, error) {
	f, err := scanFile(s.db.QueryRowContext(ctx,
		"SELECT "+fileColumns+" FROM indexed_files WHERE path = ?", path))
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", path, mapSQLiteError(err))
	}
	return f, nil
}

// List returns indexed files matching the filter, ordered by path.
// Returns (results, totalCount, error).
func (s *Store) List(ctx context.Context, filter Filter) ([]*File, int, error) {
	where := ""
	var args []any
	if filter.MimePrefix != "" {
		where = " WHERE mime_type LIKE ? ESCAPE '\\'"
		args = append(args, escapeLike(filter.MimePrefix)+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM indexed_files"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count files: %w", err)
	}

	query := "SELECT " + fileColumns + " FROM indexed_files" + where + " ORDER BY path"
	switch {
	case filter.Limit > 0:
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	case filter.Offset > 0:
		// SQLite needs a LIMIT clause before OFFSET; -1 means unbounded.
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan file: %w", err)
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate files: %w", err)
	}

	return results, total, nil
}

// Delete removes a path from the index.
// Returns ErrNotFound if the path was not indexed.
func (s *Store) Delete(ctx context.Context, path string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM indexed_files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of indexed files.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM indexed_files").Scan(&n); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
