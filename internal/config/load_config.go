package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"tfswitch/internal/logger"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the fixed paths and release server the tool has always used.
const (
	DefaultInstallDir    = "/usr/local/bin"
	DefaultLinkPath      = "/usr/local/bin/terraform"
	DefaultBinaryName    = "terraform"
	DefaultVersionPrefix = "terraform-"
	DefaultPlatform      = "linux"
	DefaultArch          = "amd64"
	DefaultIndexURL      = "https://releases.hashicorp.com/terraform/"
	DefaultArchiveURL    = "https://releases.hashicorp.com/terraform/{version}/terraform_{version}_{os}_{arch}.zip"
	DefaultTimeout       = 10 * time.Minute

	// AutoDetect as platform or arch selects the running OS or architecture.
	AutoDetect = "auto"
)

// Default returns the configuration used when no config file is present.
func Default() Config {
	cfg := Config{
		InstallDir:    DefaultInstallDir,
		LinkPath:      DefaultLinkPath,
		BinaryName:    DefaultBinaryName,
		VersionPrefix: DefaultVersionPrefix,
		Platform:      DefaultPlatform,
		Arch:          DefaultArch,
		IndexURL:      DefaultIndexURL,
		ArchiveURL:    DefaultArchiveURL,
		TempDir:       os.TempDir(),
		Download:      true,
		Timeout:       DefaultTimeout,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.StatePath = filepath.Join(home, ".tfswitch", "state.json")
	}
	return cfg
}

// DefaultConfigPath is ~/.tfswitch.yaml, or an empty string when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tfswitch.yaml")
}

// LoadConfig reads the YAML file at path on top of Default.
// A missing file is not an error: the defaults are returned as they are.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("[DEBUG] No config file at %s, using defaults\n", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	// Keys present in the file overwrite the defaults, absent keys keep them.
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded config from %s\n", path)

	home, _ := os.UserHomeDir()
	cfg.InstallDir = expandHome(home, cfg.InstallDir)
	cfg.LinkPath = expandHome(home, cfg.LinkPath)
	cfg.TempDir = expandHome(home, cfg.TempDir)
	cfg.StatePath = expandHome(home, cfg.StatePath)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that makes the configuration unusable.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.InstallDir) == "":
		return errors.New("install_dir must not be empty")
	case strings.TrimSpace(c.LinkPath) == "":
		return errors.New("link_path must not be empty")
	case strings.TrimSpace(c.VersionPrefix) == "":
		return errors.New("version_prefix must not be empty")
	case c.Timeout < 0:
		return errors.New("timeout must not be negative")
	}
	if filepath.Dir(filepath.Clean(c.LinkPath)) == filepath.Clean(c.InstallDir) &&
		strings.HasPrefix(filepath.Base(c.LinkPath), c.VersionPrefix) &&
		filepath.Base(c.LinkPath) != c.VersionPrefix {
		return fmt.Errorf("link_path %s would collide with installed versions", c.LinkPath)
	}
	if !c.Download {
		return nil
	}
	switch {
	case strings.TrimSpace(c.BinaryName) == "":
		return errors.New("binary_name must not be empty when download is enabled")
	case strings.TrimSpace(c.IndexURL) == "":
		return errors.New("index_url must not be empty when download is enabled")
	case !strings.Contains(c.ArchiveURL, "{version}"):
		return errors.New("archive_url must contain the {version} placeholder")
	}
	return nil
}

// ResolvedPlatform returns Platform, replacing "auto" with runtime.GOOS.
func (c Config) ResolvedPlatform() string {
	if c.Platform == "" || c.Platform == AutoDetect {
		return runtime.GOOS
	}
	return c.Platform
}

// ResolvedArch returns Arch, replacing "auto" with runtime.GOARCH.
func (c Config) ResolvedArch() string {
	if c.Arch == "" || c.Arch == AutoDetect {
		return runtime.GOARCH
	}
	return c.Arch
}

// expandHome turns a leading "~" into the user's home directory.
func expandHome(home, value string) string {
	trimmed := strings.TrimSpace(value)
	if home == "" || trimmed == "" {
		return trimmed
	}
	if trimmed == "~" {
		return filepath.Clean(home)
	}
	if strings.HasPrefix(trimmed, "~"+string(os.PathSeparator)) {
		return filepath.Join(home, trimmed[2:])
	}
	return trimmed
}
