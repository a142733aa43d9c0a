package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://github.com", cfg.Git.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.Git.CloneTimeout)
	assert.Equal(t, "main", cfg.Seed.Branch)
	assert.Empty(t, cfg.Seed.Repository)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
git:
  clone_timeout: 2m
  workspace_root: /var/tmp/clones
auth:
  secret_key: from-file
`), 0o600))

	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Git.CloneTimeout)
	assert.Equal(t, "/var/tmp/clones", cfg.Git.WorkspaceRoot)
	assert.Equal(t, "from-env", cfg.Auth.SecretKey)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Git.CloneTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Git.WorkspaceRoot = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", d.DSN())
}
