// Package debug provides stderr diagnostics gated by USTRIAGE_DEBUG or the
// --verbose flag.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("USTRIAGE_DEBUG") != ""
	verboseMode = false
)

// Enabled reports whether diagnostic output is active.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose output for this process.
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// Logf writes a diagnostic line to stderr when debugging is enabled.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
