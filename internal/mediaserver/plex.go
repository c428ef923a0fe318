// Package mediaserver triggers library scans on external media servers.
package mediaserver

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// ErrNoSection is returned when no Plex library contains the scanned path.
var ErrNoSection = errors.New("no library section for path")

// PlexClient interacts with the Plex Media Server API.
type PlexClient struct {
	baseURL    string
	token      string
	remotePath string // Path prefix as seen by Plex
	localPath  string // Corresponding local path
	httpClient *http.Client
	log        *slog.Logger
}

// NewPlexClient creates a new Plex client.
func NewPlexClient(baseURL, token string, log *slog.Logger) *PlexClient {
	if log == nil {
		log = slog.Default()
	}
	return &PlexClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log.With("component", "plex"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithPathMapping translates localPath prefixes to remotePath before talking
// to Plex, for servers that mount the library at a different location.
func (c *PlexClient) WithPathMapping(localPath, remotePath string) *PlexClient {
	c.localPath = strings.TrimSuffix(localPath, "/")
	c.remotePath = strings.TrimSuffix(remotePath, "/")
	return c
}

func (c *PlexClient) Name() string {
	return "plex"
}

// Scan implements the scanner backend contract. The MIME hint is unused;
// Plex decides on its own which files belong to a section.
func (c *PlexClient) Scan(ctx context.Context, filePath, _ string) error {
	return c.ScanPath(ctx, filePath)
}

func (c *PlexClient) translateToRemote(p string) string {
	if c.localPath == "" || c.remotePath == "" {
		return p
	}
	if p == c.localPath || strings.HasPrefix(p, c.localPath+"/") {
		return c.remotePath + p[len(c.localPath):]
	}
	return p
}

// Identity holds Plex server identity information.
type Identity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type identityResponse struct {
	XMLName      xml.Name `xml:"MediaContainer"`
	FriendlyName string   `xml:"friendlyName,attr"`
	Version      string   `xml:"version,attr"`
}

type Section struct {
	Key       string     `xml:"key,attr"`
	Title     string     `xml:"title,attr"`
	Type      string     `xml:"type,attr"`
	Locations []Location `xml:"Location"`
}

type Location struct {
	Path string `xml:"path,attr"`
}

type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

func (c *PlexClient) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")
	return req, nil
}

func (c *PlexClient) getXML(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetIdentity returns the Plex server name and version.
func (c *PlexClient) GetIdentity(ctx context.Context) (*Identity, error) {
	var result identityResponse
	if err := c.getXML(ctx, "/", &result); err != nil {
		return nil, err
	}
	return &Identity{Name: result.FriendlyName, Version: result.Version}, nil
}

// GetSections returns all library sections.
func (c *PlexClient) GetSections(ctx context.Context) ([]Section, error) {
	var result sectionsResponse
	if err := c.getXML(ctx, "/library/sections", &result); err != nil {
		return nil, err
	}
	return result.Sections, nil
}

// sectionFor returns the key of the section with the longest location
// containing remotePath.
func sectionFor(sections []Section, remotePath string) string {
	var key string
	longest := -1
	for _, section := range sections {
		for _, loc := range section.Locations {
			root := strings.TrimSuffix(loc.Path, "/")
			if remotePath != root && !strings.HasPrefix(remotePath, root+"/") {
				continue
			}
			if len(root) > longest {
				key = section.Key
				longest = len(root)
			}
		}
	}
	return key
}

// ScanPath triggers a partial scan of the directory containing filePath.
func (c *PlexClient) ScanPath(ctx context.Context, filePath string) error {
	remotePath := c.translateToRemote(filePath)
	remoteDir := path.Dir(remotePath)

	c.log.Debug("scanning path", "local", filePath, "remote", remotePath)

	sections, err := c.GetSections(ctx)
	if err != nil {
		return fmt.Errorf("get sections: %w", err)
	}

	sectionKey := sectionFor(sections, remotePath)
	if sectionKey == "" {
		return fmt.Errorf("%w: %s (translated: %s)", ErrNoSection, filePath, remotePath)
	}

	endpoint := fmt.Sprintf("/library/sections/%s/refresh?path=%s",
		url.PathEscape(sectionKey), url.QueryEscape(remoteDir))
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scan failed with status: %d", resp.StatusCode)
	}

	c.log.Debug("scan triggered", "section", sectionKey, "path", remoteDir, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
