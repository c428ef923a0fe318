// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 9090

[scanner]
workers = 4
timeout = "5s"

[scanner.local]
enabled = true
roots = ["/storage/emulated/0"]
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Scanner.Workers)
	assert.Equal(t, 5*time.Second, cfg.Scanner.Timeout)
	assert.True(t, cfg.Scanner.Local.Enabled)
	assert.Equal(t, []string{"/storage/emulated/0"}, cfg.Scanner.Local.Roots)
	assert.Nil(t, cfg.Plex)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/mediascan.db", cfg.Database.Path)
	assert.Equal(t, "pixai.media_scanner", cfg.Channel.Name)
	assert.Equal(t, 2, cfg.Scanner.Workers)
	assert.Equal(t, 100, cfg.Scanner.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.Scanner.Timeout)
	assert.Equal(t, 168*time.Hour, cfg.Events.Retention)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	cfgPath := writeConfig(t, `
[plex]
url = "http://localhost:32400"
token = "${MEDIASCAN_TEST_MISSING_TOKEN}"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"MEDIASCAN_TEST_MISSING_TOKEN"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "MEDIASCAN_TEST_MISSING_TOKEN")
}

func TestLoad_EnvVarSubstituted(t *testing.T) {
	t.Setenv("MEDIASCAN_TEST_PLEX_TOKEN", "secret")
	cfgPath := writeConfig(t, `
[plex]
url = "http://localhost:32400"
token = "${MEDIASCAN_TEST_PLEX_TOKEN}"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.NotNil(t, cfg.Plex)
	assert.Equal(t, "secret", cfg.Plex.Token)
}

func TestLoad_ValidationError(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 99999
log_level = "loud"
`)

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "server.log_level")
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nport = 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err, "embedded default config must load cleanly")
	assert.True(t, cfg.Scanner.Local.Enabled)
	assert.Nil(t, cfg.Plex)
}
