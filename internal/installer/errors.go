package installer

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure kinds of a download. All of them are fatal: nothing is retried.
var (
	// ErrVersionUnavailable means the release index does not list the requested version.
	ErrVersionUnavailable = errors.New("version is not available for download")
	// ErrNetworkTimeout means the release server did not answer in time.
	ErrNetworkTimeout = errors.New("release server timed out")
	// ErrMalformedArchive means the downloaded archive could not be read.
	ErrMalformedArchive = errors.New("malformed release archive")
	// ErrEntryMissing means the archive does not contain the managed binary.
	ErrEntryMissing = errors.New("release archive does not contain the binary")
	// ErrUnsafeArchivePath means an archive entry points outside the archive root.
	ErrUnsafeArchivePath = errors.New("unsafe archive path")
)

// classifyNetErr tags timeouts with ErrNetworkTimeout and passes other errors through.
func classifyNetErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrNetworkTimeout, err)
	}
	return err
}
