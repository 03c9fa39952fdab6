package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("USTRIAGE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ubuntu-server", cfg.Team)
	assert.Equal(t, "server-next", cfg.Tag)
	assert.Equal(t, 180, cfg.ExpireDays)
	assert.Equal(t, 60, cfg.ExpireTaggedDays)
	assert.Equal(t, "short", cfg.LinkStyle)
	assert.False(t, cfg.OpenBrowser)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := strings.Join([]string{
		"team: cloud-init-dev",
		"tag: next-cycle",
		"expire-days: 90",
		"link-style: full",
		"open-browser: true",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("USTRIAGE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cloud-init-dev", cfg.Team)
	assert.Equal(t, "next-cycle", cfg.Tag)
	assert.Equal(t, 90, cfg.ExpireDays)
	// Unset keys keep their defaults.
	assert.Equal(t, 60, cfg.ExpireTaggedDays)
	assert.Equal(t, "full", cfg.LinkStyle)
	assert.True(t, cfg.OpenBrowser)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("team: from-file\n"), 0o600))
	t.Setenv("USTRIAGE_CONFIG", path)
	t.Setenv("USTRIAGE_TEAM", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Team)
}

func TestRender(t *testing.T) {
	t.Setenv("USTRIAGE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := Load()
	require.NoError(t, err)

	out, err := cfg.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "team: ubuntu-server")
	assert.Contains(t, out, "expire-tagged-days: 60")
}
