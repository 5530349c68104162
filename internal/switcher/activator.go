// Package switcher activates and removes installed versions by managing the active link.
//
// Installed versions are files named VersionPrefix+"X.Y.Z" in InstallDir. The active
// link is a single symlink at LinkPath that either points at one of them or does not
// exist. Nothing here terminates the process: every failure is returned to the caller,
// which decides the exit code.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"tfswitch/internal/config"
	"tfswitch/internal/logger"
	"tfswitch/internal/state"
	"tfswitch/internal/version"
	"time"
)

// Installer fetches a version that is not installed yet.
// Install must leave either a complete binary at dest or nothing, and returns the
// source the binary came from.
type Installer interface {
	Install(ctx context.Context, version, dest string) (string, error)
}

// Activator performs the switch and remove operations against one configuration.
type Activator struct {
	cfg       config.Config
	installer Installer
	state     *state.State
	now       func() time.Time
}

// New returns an Activator. A nil installer selects the non-download variant,
// where switching to a missing version fails with ErrVersionNotInstalled.
// A nil state disables the download record.
func New(cfg config.Config, installer Installer, st *state.State) *Activator {
	if st == nil {
		st = state.New()
	}
	return &Activator{
		cfg:       cfg,
		installer: installer,
		state:     st,
		now:       time.Now,
	}
}

// RemoveResult reports what Remove changed.
type RemoveResult struct {
	LinkRemoved bool // The active link pointed at the version and was deleted
	Removed     bool // The installed file existed and was deleted
}

// SwitchResult reports what Switch did.
type SwitchResult struct {
	Version       string
	Path          string // Installed file the link now points at
	Downloaded    bool   // The version was missing and has been installed
	AlreadyActive bool   // The link already pointed at Path; nothing changed
}

// InstalledPath is where version lives inside the install directory.
func (a *Activator) InstalledPath(raw string) string {
	return filepath.Join(a.cfg.InstallDir, a.cfg.VersionPrefix+raw)
}

// validate checks the version format. The version must also name a file directly
// inside the install directory, so path separators are rejected.
func (a *Activator) validate(raw string) error {
	if err := version.ValidateFormat(raw, a.cfg.StrictVersion); err != nil {
		return err
	}
	if strings.ContainsAny(raw, `/\`) {
		return fmt.Errorf("%w: %q must not contain a path separator", version.ErrInvalidFormat, raw)
	}
	return nil
}

// Remove uninstalls version, deleting the active link first when it points at it.
// A version that is not installed is not an error: Removed is false.
func (a *Activator) Remove(raw string) (RemoveResult, error) {
	var res RemoveResult
	if err := a.validate(raw); err != nil {
		return res, err
	}
	path := a.InstalledPath(raw)

	active, err := a.isActive(path)
	if err != nil {
		return res, err
	}
	if active {
		logger.Debug("[DEBUG] %s is the active version, removing link %s\n", raw, a.cfg.LinkPath)
		if err := os.Remove(a.cfg.LinkPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return res, wrapFSError(err, "remove", "link path", a.cfg.LinkPath)
		}
		res.LinkRemoved = true
	}

	if _, err := os.Lstat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return res, wrapFSError(err, "stat", "version path", path)
		}
		logger.Debug("[DEBUG] Nothing installed at %s\n", path)
		a.state.Forget(raw)
		return res, nil
	}
	if err := os.Remove(path); err != nil {
		return res, wrapFSError(err, "remove", "version path", path)
	}
	res.Removed = true
	a.state.Forget(raw)
	return res, nil
}

// Switch makes version the active one, installing it first when it is missing and
// an Installer is configured. On success the active link resolves to InstalledPath(version).
func (a *Activator) Switch(ctx context.Context, raw string) (SwitchResult, error) {
	if err := a.validate(raw); err != nil {
		return SwitchResult{}, err
	}
	path := a.InstalledPath(raw)
	res := SwitchResult{Version: raw, Path: path}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return res, wrapFSError(err, "stat", "version path", path)
		}
		if a.installer == nil {
			return res, fmt.Errorf("%w: the version you want to use must be installed before on the path %s", ErrVersionNotInstalled, path)
		}

		logger.Info("[INFO] Version %s is not installed, installing it to %s\n", raw, path)
		source, err := a.installer.Install(ctx, raw, path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return res, wrapFSError(err, "install", "version path", path)
			}
			return res, fmt.Errorf("install %s: %w", raw, err)
		}
		a.state.Record(raw, path, source, a.now())
		res.Downloaded = true
	}

	active, err := a.isActive(path)
	if err != nil {
		return res, err
	}
	if active {
		logger.Debug("[DEBUG] %s already points at %s\n", a.cfg.LinkPath, path)
		res.AlreadyActive = true
		return res, nil
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return res, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := replaceLink(target, a.cfg.LinkPath); err != nil {
		return res, err
	}
	return res, nil
}

// isActive reports whether the active link resolves exactly to path.
func (a *Activator) isActive(path string) (bool, error) {
	target, ok, err := readLink(a.cfg.LinkPath)
	if err != nil || !ok {
		return false, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", path, err)
	}
	return target == abs, nil
}
