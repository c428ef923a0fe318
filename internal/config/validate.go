// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Scanner.Workers < 0 {
		errs = append(errs, fmt.Sprintf("scanner.workers: must not be negative, got %d", c.Scanner.Workers))
	}
	if c.Scanner.QueueSize < 0 {
		errs = append(errs, fmt.Sprintf("scanner.queue_size: must not be negative, got %d", c.Scanner.QueueSize))
	}
	if c.Scanner.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("scanner.timeout: must not be negative, got %s", c.Scanner.Timeout))
	}
	for i, root := range c.Scanner.Local.Roots {
		if !filepath.IsAbs(root) {
			errs = append(errs, fmt.Sprintf("scanner.local.roots[%d]: must be an absolute path, got %q", i, root))
		}
	}

	if c.Plex != nil {
		if c.Plex.URL == "" {
			errs = append(errs, "plex.url: required when plex is configured")
		} else if u, err := url.Parse(c.Plex.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("plex.url: invalid URL %q", c.Plex.URL))
		}
		if c.Plex.Token == "" {
			errs = append(errs, "plex.token: required when plex is configured")
		}
		if (c.Plex.LocalPath == "") != (c.Plex.RemotePath == "") {
			errs = append(errs, "plex: local_path and remote_path must be set together")
		}
	}

	return errs
}
