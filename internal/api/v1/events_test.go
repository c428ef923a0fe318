// internal/api/v1/events_test.go
package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/mediascan/internal/channel"
	chanmocks "github.com/vmunix/mediascan/internal/channel/mocks"
	"github.com/vmunix/mediascan/internal/events"
)

type waitResult struct {
	Done  bool `json:"done"`
	Event struct {
		Type   string `json:"type"`
		Path   string `json:"path"`
		Reason string `json:"reason"`
	} `json:"event"`
}

func waitDeps(t *testing.T) (ServerDeps, *events.Bus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := events.NewEventLog(setupTestDB(t))
	bus := events.NewBus(log, nil)
	return ServerDeps{
		Handler:  channel.NewHandler(chanmocks.NewMockIndexer(ctrl), nil),
		EventLog: log,
		Bus:      bus,
	}, bus
}

func waitURL(path string, since time.Time, timeout string) string {
	q := url.Values{}
	q.Set("path", path)
	if !since.IsZero() {
		q.Set("since", since.Format(time.RFC3339Nano))
	}
	if timeout != "" {
		q.Set("timeout", timeout)
	}
	return "/api/v1/events/wait?" + q.Encode()
}

func decodeWait(t *testing.T, body []byte) waitResult {
	t.Helper()
	var res waitResult
	require.NoError(t, json.Unmarshal(body, &res))
	return res
}

func TestWaitEvent_FindsLoggedTerminalEvent(t *testing.T) {
	deps, bus := waitDeps(t)
	mux := newTestMux(t, deps)
	since := time.Now().Add(-time.Second)

	require.NoError(t, bus.Publish(context.Background(), &events.ScanFailed{
		BaseEvent: events.NewBaseEvent(events.EventScanFailed, "/m/a.mp3"),
		Reason:    "plex: refresh failed",
	}))

	w := do(mux, http.MethodGet, waitURL("/m//a.mp3", since, "1s"), "")
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeWait(t, w.Body.Bytes())
	assert.True(t, res.Done)
	assert.Equal(t, events.EventScanFailed, res.Event.Type)
	assert.Equal(t, "/m/a.mp3", res.Event.Path)
	assert.Equal(t, "plex: refresh failed", res.Event.Reason)
}

func TestWaitEvent_IgnoresEventsBeforeSince(t *testing.T) {
	deps, bus := waitDeps(t)
	mux := newTestMux(t, deps)

	require.NoError(t, bus.Publish(context.Background(), &events.ScanCompleted{
		BaseEvent: events.NewBaseEvent(events.EventScanCompleted, "/m/a.mp3"),
	}))

	w := do(mux, http.MethodGet, waitURL("/m/a.mp3", time.Now().Add(time.Hour), "20ms"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeWait(t, w.Body.Bytes()).Done)
}

func TestWaitEvent_ReceivesLiveEvent(t *testing.T) {
	deps, bus := waitDeps(t)
	mux := newTestMux(t, deps)
	since := time.Now()

	done := make(chan waitResult, 1)
	go func() {
		w := do(mux, http.MethodGet, waitURL("/m/b.mp3", since, "5s"), "")
		var res waitResult
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		done <- res
	}()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, &events.ScanRequested{
		BaseEvent: events.NewBaseEvent(events.EventScanRequested, "/m/b.mp3"),
	}))
	require.NoError(t, bus.Publish(ctx, &events.ScanCompleted{
		BaseEvent: events.NewBaseEvent(events.EventScanCompleted, "/m/b.mp3"),
		Backends:  []string{"local"},
	}))

	select {
	case res := <-done:
		assert.True(t, res.Done)
		assert.Equal(t, events.EventScanCompleted, res.Event.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("wait did not return")
	}
}

func TestWaitEvent_TimesOutOnNonTerminal(t *testing.T) {
	deps, bus := waitDeps(t)
	mux := newTestMux(t, deps)
	since := time.Now().Add(-time.Second)

	require.NoError(t, bus.Publish(context.Background(), &events.ScanRequested{
		BaseEvent: events.NewBaseEvent(events.EventScanRequested, "/m/c.mp3"),
	}))

	w := do(mux, http.MethodGet, waitURL("/m/c.mp3", since, "20ms"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeWait(t, w.Body.Bytes()).Done)
}

func TestWaitEvent_BusClosed(t *testing.T) {
	deps, bus := waitDeps(t)
	mux := newTestMux(t, deps)
	require.NoError(t, bus.Close())

	w := do(mux, http.MethodGet, waitURL("/m/a.mp3", time.Time{}, "1s"), "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SHUTTING_DOWN")
}

func TestWaitEvent_BadRequest(t *testing.T) {
	deps, _ := waitDeps(t)
	mux := newTestMux(t, deps)

	tests := []struct {
		name   string
		target string
		code   string
	}{
		{"missing path", "/api/v1/events/wait", "MISSING_PATH"},
		{"bad since", "/api/v1/events/wait?path=/a&since=yesterday", "INVALID_SINCE"},
		{"bad timeout", "/api/v1/events/wait?path=/a&timeout=soon", "INVALID_TIMEOUT"},
		{"zero timeout", "/api/v1/events/wait?path=/a&timeout=0s", "INVALID_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(mux, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestWaitEvent_NoBus(t *testing.T) {
	deps, _ := waitDeps(t)
	deps.Bus = nil
	mux := newTestMux(t, deps)

	w := do(mux, http.MethodGet, waitURL("/m/a.mp3", time.Time{}, ""), "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
