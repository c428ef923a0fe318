package v1

import "net/http"

// requireIndex wraps a handler and returns 503 if the local index is not configured.
func (s *Server) requireIndex(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Index == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Local index not configured")
			return
		}
		next(w, r)
	}
}

// requireEventLog wraps a handler and returns 503 if the event log is not configured.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
			return
		}
		next(w, r)
	}
}

// requireEventBus returns 503 unless both the bus and the event log are configured.
func (s *Server) requireEventBus(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Bus == nil || s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_EVENT_BUS", "Event bus not configured")
			return
		}
		next(w, r)
	}
}
