package config

import "time"

// Config describes where versions live, which binary is managed and where releases come from.
// Every field has a default (see Default) so an empty or missing config file is valid.
//   - InstallDir: directory holding one file per installed version.
//   - LinkPath: the active link, the path users put on $PATH.
//   - BinaryName: entry name of the binary inside a release archive.
//   - VersionPrefix: installed files are named VersionPrefix + "X.Y.Z".
//   - Platform/Arch: substituted into ArchiveURL; "auto" means the running platform.
//   - IndexURL: page listing the versions available for download.
//   - ArchiveURL: release archive URL with {version}, {os} and {arch} placeholders.
type Config struct {
	InstallDir    string        `yaml:"install_dir"`
	LinkPath      string        `yaml:"link_path"`
	BinaryName    string        `yaml:"binary_name"`
	VersionPrefix string        `yaml:"version_prefix"`
	Platform      string        `yaml:"platform"`
	Arch          string        `yaml:"arch"`
	IndexURL      string        `yaml:"index_url"`
	ArchiveURL    string        `yaml:"archive_url"`
	TempDir       string        `yaml:"temp_dir"`
	Download      bool          `yaml:"download"`       // False selects the non-download variant
	StrictVersion bool          `yaml:"strict_version"` // Reject trailing text after X.Y.Z
	Timeout       time.Duration `yaml:"timeout"`        // HTTP timeout, 0 disables it
	StatePath     string        `yaml:"state_file"`     // Empty disables the state record
}
