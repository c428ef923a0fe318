// internal/api/v1/types.go
package v1

import (
	"time"

	"github.com/vmunix/mediascan/internal/events"
)

// fileResponse is the API representation of an indexed file.
type fileResponse struct {
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
	MimeType   string    `json:"mime_type"`
	Title      string    `json:"title,omitempty"`
	Artist     string    `json:"artist,omitempty"`
	Album      string    `json:"album,omitempty"`
	Year       int       `json:"year,omitempty"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// listFilesResponse is the response for GET /files.
type listFilesResponse struct {
	Items  []fileResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// eventResponse is the API representation of a logged scan event.
type eventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	Path       string `json:"path"`
	Payload    string `json:"payload"`
	OccurredAt string `json:"occurred_at"`
}

// listEventsResponse is the response for GET /events.
type listEventsResponse struct {
	Items []eventResponse `json:"items"`
	Total int             `json:"total"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status       string      `json:"status"`
	Version      string      `json:"version"`
	Channel      string      `json:"channel"`
	Backends     []string    `json:"backends"`
	Pending      int         `json:"pending"`
	IndexedFiles *int        `json:"indexed_files,omitempty"`
	Plex         *plexStatus `json:"plex,omitempty"`
}

type plexStatus struct {
	Connected bool   `json:"connected"`
	Name      string `json:"name,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// waitResponse is the response for GET /events/wait.
// Event carries the terminal scan event when Done is true.
type waitResponse struct {
	Done  bool         `json:"done"`
	Event events.Event `json:"event,omitempty"`
}
