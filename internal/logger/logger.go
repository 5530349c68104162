package logger

import (
	"io"
	"os"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colorized printers for the different log levels.
// Green for normal progress, magenta for warnings, red for failures and cyan for debug output.
var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// out is where every log line is written. Stderr keeps stdout free for
// command results such as `tfswitch list`.
var out io.Writer = os.Stderr

// debugEnabled is toggled by Init from the --debug flag.
var debugEnabled bool

// Init enables or disables debug logging.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
}

// SetOutput redirects all log levels to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Info logs informational messages in green.
func Info(format string, a ...any) {
	_, _ = infoColor.Fprintf(out, format, a...)
}

// Warn logs warnings in bright magenta.
func Warn(format string, a ...any) {
	_, _ = warnColor.Fprintf(out, format, a...)
}

// Error logs failures in red.
func Error(format string, a ...any) {
	_, _ = errorColor.Fprintf(out, format, a...)
}

// Debug logs in cyan when debug logging is enabled, otherwise it is a no-op.
func Debug(format string, a ...any) {
	if !debugEnabled {
		return
	}
	_, _ = debugColor.Fprintf(out, format, a...)
}
