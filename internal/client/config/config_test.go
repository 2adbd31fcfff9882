package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, rest, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "sinaricell.db", cfg.DBPath)
	assert.Equal(t, "sinaricell-catalog.db", cfg.CachePath)
	assert.Empty(t, rest)
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	cfg, rest, err := Load([]string{
		"-server", "https://api.sinaricell.example",
		"-db", "/tmp/client.db",
		"login",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.sinaricell.example", cfg.ServerURL)
	assert.Equal(t, "/tmp/client.db", cfg.DBPath)
	assert.Equal(t, []string{"login"}, rest)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server_url": "https://json.example", "db_path": "/json/client.db"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load([]string{"-config", path})
	require.NoError(t, err)

	assert.Equal(t, "https://json.example", cfg.ServerURL)
	assert.Equal(t, "/json/client.db", cfg.DBPath)
	// Незаполненное поле остается дефолтным
	assert.Equal(t, "sinaricell-catalog.db", cfg.CachePath)
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"server_url": "https://json.example"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load([]string{"-config", path, "-server", "https://flag.example"})
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.ServerURL)
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	t.Setenv(EnvServer, "https://env.example")
	t.Setenv(EnvDB, "/env/client.db")

	cfg, _, err := Load([]string{"-server", "https://flag.example"})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.ServerURL)
	assert.Equal(t, "/env/client.db", cfg.DBPath)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"cache_path": "/env/catalog.db"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvConfig, path)

	cfg, _, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/env/catalog.db", cfg.CachePath)
}

func TestLoad_MissingJSONFile(t *testing.T) {
	_, _, err := Load([]string{"-config", "/nonexistent/config.json"})
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := Load([]string{"-config", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoad_CommandArgsPreserved(t *testing.T) {
	cfg, rest, err := Load([]string{"products", "search", "-name", "iphone"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, []string{"products", "search", "-name", "iphone"}, rest)
}
