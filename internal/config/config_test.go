package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Equal(t, 3000, c.Server.Port)
	require.Equal(t, ":3000", c.Addr())
	require.Equal(t, "info", c.Log.Level)
	require.True(t, c.Log.Console)
	require.Equal(t, "gemini-2.0-flash", c.AI.Model)
	require.Equal(t, "socialtrackr", c.Database.Name)
	require.Empty(t, c.Email.APIKey)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 8080
ai:
  model: test-model
email:
  api_key: re_123
database:
  host: db.internal
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	c := Load(path)
	require.Equal(t, 8080, c.Server.Port)
	require.Equal(t, "test-model", c.AI.Model)
	require.Equal(t, "re_123", c.Email.APIKey)
	require.Equal(t, "db.internal", c.Database.Host)
	// untouched keys keep their defaults
	require.Equal(t, "info", c.Log.Level)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0644))

	t.Setenv("PORT", "9090")
	t.Setenv("AI_API_KEY", "sk-env")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("JWT_SECRET", "env-secret")

	c := Load(path)
	require.Equal(t, 9090, c.Server.Port)
	require.Equal(t, "sk-env", c.AI.APIKey)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, 3307, c.Database.Port)
	require.Equal(t, "env-secret", c.Server.JWTSecret)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Equal(t, 3000, c.Server.Port)
}
