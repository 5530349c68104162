package switcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"tfswitch/internal/version"
)

// Installed describes one version found in the install directory.
type Installed struct {
	Version string
	Path    string
	Active  bool // The active link points at Path
	Managed bool // Downloaded by tfswitch
}

// List returns the installed versions in ascending order.
// A missing install directory yields an empty list.
func (a *Activator) List() ([]Installed, error) {
	entries, err := os.ReadDir(a.cfg.InstallDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read install directory %s: %w", a.cfg.InstallDir, err)
	}

	activeTarget, hasLink, err := readLink(a.cfg.LinkPath)
	if err != nil {
		return nil, err
	}

	var out []Installed
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, a.cfg.VersionPrefix) || strings.HasSuffix(name, ".partial") {
			continue
		}
		raw := strings.TrimPrefix(name, a.cfg.VersionPrefix)
		if version.ValidateFormat(raw, a.cfg.StrictVersion) != nil {
			continue
		}
		path := filepath.Join(a.cfg.InstallDir, name)
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		out = append(out, Installed{
			Version: raw,
			Path:    path,
			Active:  hasLink && abs == activeTarget,
			Managed: a.state.Managed(raw),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return version.CompareRaw(out[i].Version, out[j].Version) < 0
	})
	return out, nil
}

// Current returns the installed version the active link points at.
// It fails with ErrNoActiveVersion when there is no link.
func (a *Activator) Current() (Installed, error) {
	target, ok, err := readLink(a.cfg.LinkPath)
	if err != nil {
		return Installed{}, err
	}
	if !ok {
		return Installed{}, fmt.Errorf("%w: %s is not a link", ErrNoActiveVersion, a.cfg.LinkPath)
	}

	dir, err := filepath.Abs(a.cfg.InstallDir)
	if err != nil {
		return Installed{}, fmt.Errorf("resolve %s: %w", a.cfg.InstallDir, err)
	}
	name := filepath.Base(target)
	if filepath.Dir(target) != dir || !strings.HasPrefix(name, a.cfg.VersionPrefix) {
		return Installed{}, fmt.Errorf("active link %s points outside %s: %s", a.cfg.LinkPath, a.cfg.InstallDir, target)
	}
	raw := strings.TrimPrefix(name, a.cfg.VersionPrefix)
	return Installed{
		Version: raw,
		Path:    target,
		Active:  true,
		Managed: a.state.Managed(raw),
	}, nil
}
