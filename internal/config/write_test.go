// internal/config/write_test.go
package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Port = 9999
	cfg.Scanner.Local.Roots = []string{"/media"}
	cfg.Plex = &PlexConfig{URL: "http://plex:32400", Token: "t"}
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, loaded.Server.Port)
	assert.Equal(t, []string{"/media"}, loaded.Scanner.Local.Roots)
	require.NotNil(t, loaded.Plex)
	assert.Equal(t, "http://plex:32400", loaded.Plex.URL)
	assert.Equal(t, cfg.Scanner.Timeout, loaded.Scanner.Timeout)
}
