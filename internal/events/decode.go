// internal/events/decode.go
package events

import (
	"encoding/json"
	"fmt"
)

// constructors maps a persisted event type to a zero value of its struct.
var constructors = map[string]func() Event{
	EventScanRequested: func() Event { return &ScanRequested{} },
	EventScanCompleted: func() Event { return &ScanCompleted{} },
	EventScanFailed:    func() Event { return &ScanFailed{} },
	EventScanDropped:   func() Event { return &ScanDropped{} },
}

// Decode rebuilds the typed event stored in raw.
func Decode(raw RawEvent) (Event, error) {
	newEvent, ok := constructors[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}

	e := newEvent()
	if err := json.Unmarshal([]byte(raw.Payload), e); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", raw.EventType, err)
	}
	return e, nil
}
