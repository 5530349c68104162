package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"tfswitch/internal/logger"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// binaryFilePerm is rwxr-xr-x, the mode of every installed version.
const binaryFilePerm os.FileMode = 0755

// opener returns the content of the archive entry currently being visited.
type opener func() (io.ReadCloser, error)

// visitFunc is called once per archive entry. Returning an error stops the walk.
type visitFunc func(name string, regular bool, open opener) error

// walkFunc iterates over every entry of the archive at src.
type walkFunc func(src string, visit visitFunc) error

// walkerFor picks the archive reader from the file name suffix.
func walkerFor(src string) (walkFunc, error) {
	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return walkZip, nil
	case strings.HasSuffix(name, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return walk7z, nil
	case strings.HasSuffix(name, ".tar"), strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"),
		strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return walkTar, nil
	default:
		return nil, fmt.Errorf("%w: unsupported archive format: %s", ErrMalformedArchive, src)
	}
}

// ExtractEntry copies the single regular file whose base name is entry from the
// archive at src into dest, created with mode 0755.
// The archive must contain exactly one such entry.
func ExtractEntry(src, entry, dest string) error {
	walk, err := walkerFor(src)
	if err != nil {
		return err
	}

	found := false
	err = walk(src, func(name string, regular bool, open opener) error {
		clean, err := safeEntryName(name)
		if err != nil {
			return err
		}
		if !regular || path.Base(clean) != entry {
			return nil
		}
		if found {
			return fmt.Errorf("%w: archive contains duplicate %q", ErrMalformedArchive, entry)
		}
		found = true
		logger.Debug("[DEBUG] Extracting %s from %s to %s\n", name, src, dest)
		return writeEntry(open, dest)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: no %q in %s", ErrEntryMissing, entry, src)
	}
	return nil
}

// safeEntryName rejects entries that would escape the archive root.
func safeEntryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	clean := path.Clean(strings.ReplaceAll(trimmed, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeArchivePath, name)
	}
	return clean, nil
}

func writeEntry(open opener, dest string) error {
	rc, err := open()
	if err != nil {
		return fmt.Errorf("%w: open entry: %w", ErrMalformedArchive, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, binaryFilePerm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("%w: extract to %s: %w", ErrMalformedArchive, dest, err)
	}
	return out.Close()
}

// walkZip visits the entries of a .zip archive.
func walkZip(src string, visit visitFunc) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: open zip: %w", ErrMalformedArchive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := visit(f.Name, !f.FileInfo().IsDir(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// walk7z visits the entries of a .7z archive using the sevenzip library.
func walk7z(src string, visit visitFunc) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: open 7z: %w", ErrMalformedArchive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := visit(f.Name, !f.FileInfo().IsDir(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// walkTar visits the entries of a tar archive and its compressed variants.
func walkTar(src string, visit visitFunc) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: open gzip: %w", ErrMalformedArchive, err)
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(name, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(name, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return fmt.Errorf("%w: open xz: %w", ErrMalformedArchive, err)
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read tar: %w", ErrMalformedArchive, err)
		}
		// Links and devices are skipped along with directories.
		regular := hdr.Typeflag == tar.TypeReg
		open := func() (io.ReadCloser, error) { return io.NopCloser(tr), nil }
		if err := visit(hdr.Name, regular, open); err != nil {
			return err
		}
	}
}
