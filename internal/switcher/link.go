package switcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"tfswitch/internal/logger"
)

// readLink returns the absolute target of the symlink at link.
// ok is false when link does not exist or is not a symlink.
func readLink(link string) (target string, ok bool, err error) {
	info, err := os.Lstat(link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, wrapFSError(err, "stat", "link path", link)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", false, nil
	}

	target, err = os.Readlink(link)
	if err != nil {
		return "", false, wrapFSError(err, "read link", "link path", link)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	return filepath.Clean(target), true, nil
}

// replaceLink points link at target without a window where link is missing:
// the new symlink is created beside link and renamed over it.
func replaceLink(target, link string) error {
	info, err := os.Lstat(link)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("link path %s is a directory", link)
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		logger.Warn("[WARN] Replacing regular file %s with a link\n", link)
	}

	tmp := fmt.Sprintf("%s.tfswitch-%d.tmp", link, os.Getpid())
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrapFSError(err, "remove stale link", "link path", tmp)
	}
	if err := os.Symlink(target, tmp); err != nil {
		return wrapFSError(err, "create link", "link path", link)
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return wrapFSError(err, "replace link", "link path", link)
	}
	logger.Debug("[DEBUG] Linked %s -> %s\n", link, target)
	return nil
}
