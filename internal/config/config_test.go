package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.Equal(t, 10*time.Second, cfg.API.AuthTimeout)
	require.True(t, cfg.Auth.DemoAccounts)
	require.Equal(t, "stdio", cfg.Server.Transport)
	require.Equal(t, "memory", cfg.Blob.Driver)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://files.example/api
  auth_timeout: 3s
cache:
  path: /tmp/from-file.db
log:
  level: debug
`), 0o644))

	t.Setenv("PMDASH_CONFIG_PATH", path)
	t.Setenv("PMDASH_CACHE_PATH", ":memory:")
	t.Setenv("PMDASH_OFFLINE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://files.example/api", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.AuthTimeout)
	require.Equal(t, ":memory:", cfg.Cache.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.API.Offline)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PMDASH_API_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Blob.Driver = "s3"
	require.Error(t, cfg.Validate())

	cfg.Blob.S3.Bucket = "docs"
	require.NoError(t, cfg.Validate())

	cfg.Server.Transport = "pigeon"
	require.Error(t, cfg.Validate())
}
