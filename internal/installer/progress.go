package installer

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// progress is the terminal spinner shown while an archive downloads.
type progress struct {
	loader *spinner.Spinner
}

// startProgress starts a spinner on stderr. A disabled progress is a no-op.
func startProgress(enabled bool, suffix string) *progress {
	if !enabled {
		return &progress{}
	}
	loader := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
	return &progress{loader: loader}
}

// Stop clears the spinner line.
func (p *progress) Stop() {
	if p.loader != nil {
		p.loader.Stop()
	}
}
