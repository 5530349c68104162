package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
	assert.Equal(t, DefaultLinkPath, cfg.LinkPath)
	assert.Equal(t, DefaultVersionPrefix, cfg.VersionPrefix)
	assert.Equal(t, DefaultArchiveURL, cfg.ArchiveURL)
	assert.True(t, cfg.Download)
	assert.False(t, cfg.StrictVersion)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfswitch.yaml")
	content := `
install_dir: ` + dir + `/bin
link_path: ` + dir + `/bin/terraform
download: false
strict_version: true
timeout: 30s
platform: darwin
arch: arm64
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "bin"), cfg.InstallDir)
	assert.Equal(t, filepath.Join(dir, "bin", "terraform"), cfg.LinkPath)
	assert.False(t, cfg.Download)
	assert.True(t, cfg.StrictVersion)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "darwin", cfg.ResolvedPlatform())
	assert.Equal(t, "arm64", cfg.ResolvedArch())
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultVersionPrefix, cfg.VersionPrefix)
	assert.Equal(t, DefaultIndexURL, cfg.IndexURL)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("install_dir: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty install dir", mutate: func(c *Config) { c.InstallDir = "" }, wantErr: true},
		{name: "empty link path", mutate: func(c *Config) { c.LinkPath = " " }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: true},
		{name: "archive url without version", mutate: func(c *Config) { c.ArchiveURL = "https://example.com/tf.zip" }, wantErr: true},
		{
			name: "archive url ignored when offline",
			mutate: func(c *Config) {
				c.Download = false
				c.ArchiveURL = ""
				c.IndexURL = ""
			},
		},
		{
			name: "link collides with installed names",
			mutate: func(c *Config) {
				c.LinkPath = filepath.Join(c.InstallDir, c.VersionPrefix+"current")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAutoPlatform(t *testing.T) {
	cfg := Default()
	cfg.Platform = AutoDetect
	cfg.Arch = AutoDetect

	assert.Equal(t, runtime.GOOS, cfg.ResolvedPlatform())
	assert.Equal(t, runtime.GOARCH, cfg.ResolvedArch())
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u", expandHome("/home/u", "~"))
	assert.Equal(t, "/home/u/bin", expandHome("/home/u", "~/bin"))
	assert.Equal(t, "/opt/bin", expandHome("/home/u", "/opt/bin"))
	assert.Equal(t, "", expandHome("/home/u", "  "))
}
