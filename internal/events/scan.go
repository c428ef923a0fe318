// internal/events/scan.go
package events

// Scan event types.
const (
	EventScanRequested = "scan.requested"
	EventScanCompleted = "scan.completed"
	EventScanFailed    = "scan.failed"
	EventScanDropped   = "scan.dropped"
)

// ScanRequested is emitted when a path is queued for indexing.
type ScanRequested struct {
	BaseEvent
	MimeType string `json:"mime_type,omitempty"`
}

// ScanCompleted is emitted when every backend accepted the path.
type ScanCompleted struct {
	BaseEvent
	Backends   []string `json:"backends"`
	DurationMS int64    `json:"duration_ms"`
}

// ScanFailed is emitted when at least one backend rejected the path.
type ScanFailed struct {
	BaseEvent
	Backends   []string `json:"backends"`
	Reason     string   `json:"reason"`
	DurationMS int64    `json:"duration_ms"`
}

// ScanDropped is emitted when the scan queue was full.
type ScanDropped struct {
	BaseEvent
	Reason string `json:"reason"`
}

// IsTerminal reports whether e is the last event of a scan request.
func IsTerminal(e Event) bool {
	switch e.EventType() {
	case EventScanCompleted, EventScanFailed, EventScanDropped:
		return true
	}
	return false
}
