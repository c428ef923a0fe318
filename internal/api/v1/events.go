package v1

import (
	"net/http"
	"slices"
	"time"

	"github.com/vmunix/mediascan/internal/events"
	"github.com/vmunix/mediascan/internal/mediaindex"
)

const (
	defaultWaitTimeout = 30 * time.Second
	maxWaitTimeout     = 5 * time.Minute
)

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be positive")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	var (
		logged []events.RawEvent
		err    error
	)
	if path := mediaindex.NormalizePath(r.URL.Query().Get("path")); path != "" {
		logged, err = s.deps.EventLog.ForPath(r.Context(), path)
		if len(logged) > limit {
			logged = logged[len(logged)-limit:]
		}
		slices.Reverse(logged)
	} else {
		logged, err = s.deps.EventLog.Recent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	var resp listEventsResponse
	resp.Items = make([]eventResponse, len(logged))
	resp.Total = len(logged)
	for i, e := range logged {
		resp.Items[i] = eventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			Path:       e.Path,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// waitEvent blocks until a scan of path ends or the timeout passes.
// Scans that ended at or after since are reported from the event log.
func (s *Server) waitEvent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	path := mediaindex.NormalizePath(q.Get("path"))
	if path == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PATH", "path query parameter is required")
		return
	}

	since := time.Now()
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be an RFC 3339 timestamp")
			return
		}
		since = t.In(time.Local)
	}

	timeout := defaultWaitTimeout
	if v := q.Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_TIMEOUT", "timeout must be a positive duration")
			return
		}
		timeout = min(d, maxWaitTimeout)
	}

	// Subscribe before reading the log so no terminal event falls between them.
	sub := s.deps.Bus.SubscribePath(path, 8)
	defer s.deps.Bus.Unsubscribe(sub)

	logged, err := s.deps.EventLog.Since(r.Context(), path, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	for _, raw := range logged {
		e, err := events.Decode(raw)
		if err != nil {
			s.logger.Warn("skipping undecodable event", "id", raw.ID, "error", err)
			continue
		}
		if events.IsTerminal(e) {
			writeJSON(w, http.StatusOK, waitResponse{Done: true, Event: e})
			return
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case e, ok := <-sub:
			if !ok {
				writeError(w, http.StatusServiceUnavailable, "SHUTTING_DOWN", "Server is shutting down")
				return
			}
			if events.IsTerminal(e) {
				writeJSON(w, http.StatusOK, waitResponse{Done: true, Event: e})
				return
			}
		case <-timer.C:
			writeJSON(w, http.StatusOK, waitResponse{Done: false})
			return
		case <-r.Context().Done():
			return
		}
	}
}
