package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"tfswitch/internal/logger" // Custom logger package for logging errors and debug info
	"time"
)

// VersionState records a version that tfswitch downloaded itself.
// Versions copied into the install directory by hand never appear here.
type VersionState struct {
	Path        string    `json:"path"`         // Absolute path of the installed binary
	Source      string    `json:"source"`       // Archive URL the binary was extracted from
	InstalledAt time.Time `json:"installed_at"` // When the download finished
}

// State holds every version installed by tfswitch, keyed by version string.
type State struct {
	Versions map[string]VersionState `json:"versions"`
}

// New returns an empty state.
func New() *State {
	return &State{Versions: make(map[string]VersionState)}
}

// Record marks version as downloaded from source into path.
func (s *State) Record(version, path, source string, at time.Time) {
	s.Versions[version] = VersionState{Path: path, Source: source, InstalledAt: at}
}

// Forget drops version from the record. It reports whether the version was known.
func (s *State) Forget(version string) bool {
	if _, ok := s.Versions[version]; !ok {
		return false
	}
	delete(s.Versions, version)
	return true
}

// Managed reports whether version was downloaded by tfswitch.
func (s *State) Managed(version string) bool {
	_, ok := s.Versions[version]
	return ok
}

// LoadState loads the saved state from a JSON file at the given path.
// If the path is empty, or the file does not exist or cannot be parsed, it returns an empty State.
func LoadState(path string) *State {
	if path == "" {
		return New()
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("[WARN] Failed to read state file %s: %v\n", path, err)
		}
		return New()
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring corrupt state file %s: %v\n", path, err)
		return New()
	}

	// The file may contain "versions": null
	if st.Versions == nil {
		st.Versions = make(map[string]VersionState)
	}
	return &st
}

// SaveState writes the given State as indented JSON to path.
// Errors during marshalling or writing are logged but not propagated.
func SaveState(path string, st *State) {
	if path == "" {
		return
	}

	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
