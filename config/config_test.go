package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", settings.Addr)
	require.Equal(t, 30*time.Second, settings.Timeout)
	require.Equal(t, "info", settings.LogLevel)
	require.Equal(t, "/blackhole", settings.WatchDir)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: https://seedbox.example:8080
username: admin
password: secret
timeout: 10s
skip_tls_verify: true
log_level: debug
watch_dir: /data/watch
archive_dir: /data/watch/done
category: auto
`)

	settings, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://seedbox.example:8080", settings.Addr)
	require.Equal(t, "admin", settings.Username)
	require.Equal(t, "secret", settings.Password)
	require.Equal(t, 10*time.Second, settings.Timeout)
	require.True(t, settings.SkipTLSVerify)
	require.Equal(t, "debug", settings.LogLevel)
	require.Equal(t, "/data/watch", settings.WatchDir)
	require.Equal(t, "/data/watch/done", settings.ArchiveDir)
	require.Equal(t, "auto", settings.Category)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("QBIT_ADDR", "http://10.0.0.5:8080")
	t.Setenv("QBIT_LOG_LEVEL", "warn")

	settings, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "http://10.0.0.5:8080", settings.Addr)
	require.Equal(t, "warn", settings.LogLevel)
}

func TestLoggerLevel(t *testing.T) {
	settings := &Settings{LogLevel: "debug"}
	require.Equal(t, zerolog.DebugLevel, settings.Logger().GetLevel())

	settings.LogLevel = "not-a-level"
	require.Equal(t, zerolog.InfoLevel, settings.Logger().GetLevel())
}

func TestClient(t *testing.T) {
	path := writeConfig(t, `
addr: http://localhost:8080
username: admin
password: secret
`)
	settings, err := Load(path)
	require.NoError(t, err)

	client, err := settings.Client()
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestClientRequiresAuth(t *testing.T) {
	settings := &Settings{Addr: "http://localhost:8080"}
	_, err := settings.Client()
	require.Error(t, err)
}
