package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/mediascan/internal/channel"
)

// Client wraps HTTP calls to the mediascan server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new mediascan API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	Channel      string   `json:"channel"`
	Backends     []string `json:"backends"`
	Pending      int      `json:"pending"`
	IndexedFiles *int     `json:"indexed_files,omitempty"`
	Plex         *struct {
		Connected bool   `json:"connected"`
		Name      string `json:"name,omitempty"`
		Version   string `json:"version,omitempty"`
		Error     string `json:"error,omitempty"`
	} `json:"plex,omitempty"`
}

type FileResponse struct {
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

type ListFilesResponse struct {
	Items  []FileResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	Path       string `json:"path"`
	Payload    string `json:"payload"`
	OccurredAt string `json:"occurred_at"`
}

type ListEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}

type WaitEvent struct {
	Type       string   `json:"type"`
	Path       string   `json:"path"`
	OccurredAt string   `json:"occurred_at"`
	Backends   []string `json:"backends,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	DurationMS int64    `json:"duration_ms,omitempty"`
}

type WaitResponse struct {
	Done  bool       `json:"done"`
	Event *WaitEvent `json:"event,omitempty"`
}

// Call sends one method call to the named channel.
func (c *Client) Call(channelName string, req channel.Request) (*channel.Response, error) {
	var resp channel.Response
	if err := c.post("/api/v1/channels/"+url.PathEscape(channelName), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ScanFile(channelName, path string) (*channel.Response, error) {
	return c.Call(channelName, channel.Request{
		Method:    channel.MethodScanFile,
		Arguments: map[string]any{channel.ArgPath: path},
	})
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Files(mime string, limit, offset int) (*ListFilesResponse, error) {
	params := url.Values{}
	if mime != "" {
		params.Set("mime", mime)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/v1/files"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp ListFilesResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Lookup(filePath string) (*FileResponse, error) {
	var resp FileResponse
	if err := c.get("/api/v1/files/lookup?path="+url.QueryEscape(filePath), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Events(limit int, filePath string) (*ListEventsResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if filePath != "" {
		params.Set("path", filePath)
	}

	var resp ListEventsResponse
	if err := c.get("/api/v1/events?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Wait blocks until the server reports the end of a scan of filePath
// that started at or after since, or until timeout passes.
func (c *Client) Wait(filePath string, since time.Time, timeout time.Duration) (*WaitResponse, error) {
	params := url.Values{}
	params.Set("path", filePath)
	params.Set("since", since.Format(time.RFC3339Nano))
	params.Set("timeout", timeout.String())

	// The request outlives the server-side wait by a grace period.
	waiter := &Client{baseURL: c.baseURL, httpClient: &http.Client{
		Transport: c.httpClient.Transport,
		Timeout:   timeout + 10*time.Second,
	}}

	var resp WaitResponse
	if err := waiter.get("/api/v1/events/wait?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
