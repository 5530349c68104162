package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"tfswitch/internal/config"
	"tfswitch/internal/logger"
	"tfswitch/internal/version"
)

// maxIndexSize bounds how much of the release index is read.
const maxIndexSize = 32 << 20

// Installer downloads releases from the server described by the configuration.
type Installer struct {
	cfg        config.Config
	httpClient *http.Client
	progress   bool
}

// New returns an Installer whose HTTP client honours cfg.Timeout.
func New(cfg config.Config) *Installer {
	return &Installer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetProgress toggles the download spinner.
func (i *Installer) SetProgress(enabled bool) {
	i.progress = enabled
}

// ArchiveURL returns the release archive URL of version for the configured platform.
func (i *Installer) ArchiveURL(raw string) string {
	return strings.NewReplacer(
		"{version}", raw,
		"{os}", i.cfg.ResolvedPlatform(),
		"{arch}", i.cfg.ResolvedArch(),
	).Replace(i.cfg.ArchiveURL)
}

// Available checks the release index for version.
// It fails with ErrVersionUnavailable when the index does not list it.
func (i *Installer) Available(ctx context.Context, raw string) error {
	body, err := i.fetchIndex(ctx)
	if err != nil {
		return err
	}
	if !version.FindInIndex(body, raw) {
		return fmt.Errorf("%w: %s is not listed at %s", ErrVersionUnavailable, raw, i.cfg.IndexURL)
	}
	return nil
}

// RemoteVersions lists every release found in the index, ascending.
func (i *Installer) RemoteVersions(ctx context.Context) ([]version.Version, error) {
	body, err := i.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	return version.ExtractAll(body), nil
}

// Install downloads version and places its binary at dest with mode 0755.
// It returns the archive URL the binary came from. The temporary archive is
// always removed, and dest is never left half-written.
func (i *Installer) Install(ctx context.Context, raw, dest string) (string, error) {
	if err := i.Available(ctx, raw); err != nil {
		return "", err
	}

	archiveURL := i.ArchiveURL(raw)
	tmp, err := i.tempArchivePath(archiveURL)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			logger.Warn("[WARN] Failed to remove temporary archive %s: %v\n", tmp, err)
		}
	}()

	logger.Info("[INFO] Downloading %s\n", archiveURL)
	p := startProgress(i.progress, "Downloading "+path.Base(tmp)+"...")
	err = i.downloadFile(ctx, archiveURL, tmp)
	p.Stop()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("create install directory: %w", err)
	}
	partial := dest + ".partial"
	if err := ExtractEntry(tmp, i.cfg.BinaryName, partial); err != nil {
		_ = os.Remove(partial)
		return "", err
	}
	// The umask may have stripped bits at creation.
	if err := os.Chmod(partial, binaryFilePerm); err != nil {
		_ = os.Remove(partial)
		return "", fmt.Errorf("chmod %s: %w", partial, err)
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return "", fmt.Errorf("install %s: %w", dest, err)
	}

	logger.Debug("[DEBUG] Installed %s from %s\n", dest, archiveURL)
	return archiveURL, nil
}

// tempArchivePath names the download after the last element of the archive URL.
func (i *Installer) tempArchivePath(archiveURL string) (string, error) {
	u, err := url.Parse(archiveURL)
	if err != nil {
		return "", fmt.Errorf("parse archive url %q: %w", archiveURL, err)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return "", fmt.Errorf("archive url %q has no file name", archiveURL)
	}
	return filepath.Join(i.cfg.TempDir, base), nil
}

func (i *Installer) fetchIndex(ctx context.Context) (string, error) {
	logger.Debug("[DEBUG] Fetching release index %s\n", i.cfg.IndexURL)
	resp, err := i.get(ctx, i.cfg.IndexURL)
	if err != nil {
		return "", fmt.Errorf("request release index: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexSize))
	if err != nil {
		return "", fmt.Errorf("read release index: %w", classifyNetErr(err))
	}
	return string(body), nil
}

// downloadFile saves the content at target to destPath.
func (i *Installer) downloadFile(ctx context.Context, target, destPath string) error {
	resp, err := i.get(ctx, target)
	if err != nil {
		return fmt.Errorf("download %s: %w", target, err)
	}
	defer resp.Body.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", classifyNetErr(err))
	}
	logger.Debug("[DEBUG] Downloaded archive to: %s\n", destPath)
	return nil
}

// get issues a GET and returns the response only for a 200 status.
func (i *Installer) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "tfswitch")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, classifyNetErr(err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}
