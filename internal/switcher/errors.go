package switcher

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrVersionNotInstalled is returned by Switch when the version is absent and downloading is disabled.
	ErrVersionNotInstalled = errors.New("version is not installed")
	// ErrPermissionDenied is returned when the OS refuses to change the link or an installed version.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNoActiveVersion is returned by Current when the active link does not exist.
	ErrNoActiveVersion = errors.New("no active version")
)

// wrapFSError tags permission failures with ErrPermissionDenied and names the path involved.
// what describes the path to the user, e.g. "link path".
func wrapFSError(err error, op, what, path string) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: the user does not have permissions on the %s %s: %w", ErrPermissionDenied, what, path, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
