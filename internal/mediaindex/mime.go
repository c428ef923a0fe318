// internal/mediaindex/mime.go
package mediaindex

import (
	"mime"
	"path/filepath"
	"strings"
)

// mediaTypes covers common media extensions that the platform MIME table
// often lacks.
var mediaTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".m4b":  "audio/mp4",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".dsf":  "audio/dsf",
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

// DetectMimeType guesses a MIME type from the file extension.
// Returns "" when the extension is unknown.
func DetectMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// hasTags reports whether files of this type may carry ID3/Vorbis/MP4 tags.
func hasTags(mimeType string) bool {
	switch mimeType {
	case "audio/mpeg", "audio/flac", "audio/mp4", "audio/ogg", "audio/opus", "audio/dsf", "video/mp4":
		return true
	}
	return false
}
