package main

import (
	"os"

	"tfswitch/cmd" // The cmd package holds the CLI commands and the single exit-code decision
)

// main is the program entry point.
// It delegates to cmd.Execute(), which parses the command line, runs the
// requested operation and reports any failure. The returned code is 0 on
// success and 1 on any validation, permission, missing-version or download failure.
//
// tfswitch switches between installed versions of a binary tool (Terraform by default):
//   - Every installed version is a file named <prefix><X.Y.Z> in the install directory
//   - The active version is selected through one symbolic link, the path users put on $PATH
//   - A version that is not installed is downloaded from the release server,
//     unless downloading is disabled in the config or with --offline
//   - `tfswitch --remove X.Y.Z` uninstalls a version and drops the link if it pointed at it
func main() {
	os.Exit(cmd.Execute())
}
