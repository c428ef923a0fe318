package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/mediascan/internal/channel"
)

func TestParseCallArgs(t *testing.T) {
	args, err := parseCallArgs([]string{"path=/a=b.jpg", "count:=3", "flag:=null", "name=x:=y"})
	require.NoError(t, err)
	assert.Equal(t, "/a=b.jpg", args["path"])
	assert.Equal(t, float64(3), args["count"])
	v, present := args["flag"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Equal(t, "x:=y", args["name"])
}

func TestParseCallArgs_Invalid(t *testing.T) {
	_, err := parseCallArgs([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseCallArgs([]string{"=value"})
	assert.Error(t, err)

	_, err = parseCallArgs([]string{"n:={bad"})
	assert.Error(t, err)
}

func TestPrintCallResponse(t *testing.T) {
	tests := []struct {
		name   string
		method string
		resp   channel.Response
		want   []string
	}{
		{"success", "scanFile", channel.Success(nil), []string{"success"}},
		{"error", "scanFile", channel.Failure(channel.CodeInvalidPath, channel.MessageInvalidPath, nil), []string{"Path is null", "INVALID_PATH"}},
		{"not implemented with hint", "scanfile", channel.NotImplemented(), []string{"not implemented: scanfile", `did you mean "scanFile"?`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printCallResponse(&buf, tt.method, &tt.resp)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}

	var buf bytes.Buffer
	resp := channel.NotImplemented()
	printCallResponse(&buf, "deleteEverything", &resp)
	assert.NotContains(t, buf.String(), "did you mean")
}

func TestCallCmd_SendsArguments(t *testing.T) {
	ms := newMockServer(t).
		ExpectPath("/api/v1/channels/pixai.media_scanner").
		ExpectPOST().
		RespondJSON(channel.Failure(channel.CodeInvalidPath, channel.MessageInvalidPath, nil))
	srv := ms.Build()
	defer srv.Close()

	out, err := execute(t, "call", "--server", srv.URL, "scanFile", "path:=42")
	require.NoError(t, err)
	assert.Contains(t, out, "INVALID_PATH")

	require.Len(t, ms.Bodies(), 1)
	var req channel.Request
	decodeBody(t, ms.Bodies()[0], &req)
	assert.Equal(t, "scanFile", req.Method)
	assert.Equal(t, float64(42), req.Arguments["path"])
}

func TestScanCmd_MakesPathsAbsolute(t *testing.T) {
	ms := newMockServer(t).RespondJSON(channel.Success(nil))
	srv := ms.Build()
	defer srv.Close()

	out, err := execute(t, "scan", "--server", srv.URL, "song.mp3")
	require.NoError(t, err)

	want, err := filepath.Abs("song.mp3")
	require.NoError(t, err)
	assert.Contains(t, out, "queued "+want)

	require.Len(t, ms.Bodies(), 1)
	var req channel.Request
	decodeBody(t, ms.Bodies()[0], &req)
	path, ok := req.Path()
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestScanCmd_ReportsErrorEnvelope(t *testing.T) {
	srv := newMockServer(t).
		RespondJSON(channel.Failure(channel.CodeInvalidPath, channel.MessageInvalidPath, nil)).
		Build()
	defer srv.Close()

	_, err := execute(t, "scan", "--server", srv.URL, "/a.mp3", "/b.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/a.mp3")
	assert.Contains(t, err.Error(), "/b.mp3")
	assert.Contains(t, err.Error(), "INVALID_PATH")
}

// scanServer answers scanFile calls with success and wait calls with w.
func scanServer(t *testing.T, w WaitResponse) *mockServer {
	return newMockServer(t).Handler(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/events/wait" {
			respondJSON(t, rw, w)
			return
		}
		respondJSON(t, rw, channel.Success(nil))
	})
}

func TestScanCmd_Wait(t *testing.T) {
	tests := []struct {
		name    string
		wait    WaitResponse
		wantOut string
		wantErr string
	}{
		{
			name:    "completed",
			wait:    WaitResponse{Done: true, Event: &WaitEvent{Type: "scan.completed", DurationMS: 7}},
			wantOut: "indexed /m/a.mp3 (7ms)",
		},
		{
			name:    "failed",
			wait:    WaitResponse{Done: true, Event: &WaitEvent{Type: "scan.failed", Reason: "plex: refresh failed"}},
			wantErr: "scan failed: plex: refresh failed",
		},
		{
			name:    "dropped",
			wait:    WaitResponse{Done: true, Event: &WaitEvent{Type: "scan.dropped", Reason: "queue full"}},
			wantErr: "scan dropped: queue full",
		},
		{
			name:    "timed out",
			wait:    WaitResponse{Done: false},
			wantErr: "no result within 2s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := scanServer(t, tt.wait)
			srv := ms.Build()
			defer srv.Close()

			out, err := execute(t, "scan", "--server", srv.URL, "--wait", "--timeout", "2s", "/m/a.mp3")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, out, tt.wantOut)
			}
			assert.NotContains(t, out, "queued")
			assert.Len(t, ms.Bodies(), 2)
		})
	}
}

func TestScanCmd_WaitRejectsZeroTimeout(t *testing.T) {
	_, err := execute(t, "scan", "--wait", "--timeout", "0s", "/m/a.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--timeout")
}

func TestScanCmd_NoWaitByDefault(t *testing.T) {
	ms := scanServer(t, WaitResponse{})
	srv := ms.Build()
	defer srv.Close()

	out, err := execute(t, "scan", "--server", srv.URL, "/m/a.mp3")
	require.NoError(t, err)
	assert.Contains(t, out, "queued /m/a.mp3")
	assert.Len(t, ms.Bodies(), 1)
}

func TestStatusCmd(t *testing.T) {
	indexed := 3
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		RespondJSON(StatusResponse{
			Status:       "ok",
			Version:      "1.0.0",
			Channel:      channel.Name,
			Backends:     []string{"local", "plex"},
			IndexedFiles: &indexed,
		}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "mediascand v1.0.0")
	assert.Contains(t, out, "local, plex")
	assert.Contains(t, out, "Indexed:   3 files")
}

func TestEventsCmd_Empty(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/events").
		RespondJSON(ListEventsResponse{}).
		Build()
	defer srv.Close()

	out, err := execute(t, "events", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No events")
}

func TestFilesCmd_JSON(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/files").
		RespondJSON(ListFilesResponse{
			Items: []FileResponse{{Path: "/m/a.mp3", MimeType: "audio/mpeg", SizeBytes: 2048}},
			Total: 1, Limit: 50,
		}).
		Build()
	defer srv.Close()

	out, err := execute(t, "files", "--server", srv.URL, "--json")
	require.NoError(t, err)

	var resp ListFilesResponse
	decodeBody(t, out, &resp)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "/m/a.mp3", resp.Items[0].Path)
}

func TestInitCmd_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediascan", "config.toml")

	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")

	_, err = execute(t, "init", path)
	assert.Error(t, err, "existing config should not be overwritten")
}

func TestConfigTestCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 99999\n"), 0644))

	out, err := execute(t, "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, out, "Validation errors:")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KiB", formatSize(2048))
	assert.Equal(t, "1.5 MiB", formatSize(1536*1024))
}

func TestFormatTimeAgo(t *testing.T) {
	assert.Equal(t, "never", formatTimeAgo(time.Time{}))
	assert.Equal(t, "just now", formatTimeAgo(time.Now()))
	assert.Equal(t, "5m ago", formatTimeAgo(time.Now().Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "2d ago", formatTimeAgo(time.Now().Add(-49*time.Hour)))
}
