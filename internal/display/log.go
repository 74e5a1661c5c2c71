package display

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ────────────────────────────────────────────────────────────
// Exported color constants for use outside the display package
// ────────────────────────────────────────────────────────────

const (
	Green = green
	Cyan  = cyan
	White = white

	BrightMagenta = brightMagenta
	BrightWhite   = brightWhite
)

// ────────────────────────────────────────────────────────────
// Log-level helpers (colored prefixes for CLI output)
// ────────────────────────────────────────────────────────────

// Step prints a pipeline step like "  [1/3] Asking the model..."
func Step(step, total int, msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s[%d/%d]%s %s%s%s\n",
		bold, brightCyan, step, total, reset,
		white, msg, reset,
	)
}

// StepDetail prints an indented detail line under a step.
func StepDetail(msg string) {
	fmt.Fprintf(os.Stdout, "        %s%s%s\n", dim+white, msg, reset)
}

// StepResult prints a success result for a step with a highlighted value.
func StepResult(label string, value interface{}) {
	fmt.Fprintf(os.Stdout, "        %s%s%s %s%v%s\n",
		dim, label, reset,
		bold+brightGreen, value, reset,
	)
}

// Info prints a general info message.
func Info(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%sℹ%s %s\n", brightBlue, bold, reset, msg)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s✓%s %s\n", brightGreen, bold, reset, msg)
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s⚠%s %s%s%s\n", brightYellow, bold, reset, yellow, msg, reset)
}

// ErrorMsg prints a red error message to stderr.
func ErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "  %s%s✗%s %s%s%s\n", brightRed, bold, reset, red, msg, reset)
}

// Header prints a section header line.
func Header(msg string) {
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", bold, brightCyan, msg, reset)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", dim, cyan, rule, reset)
}

// SubHeader prints a smaller section divider.
func SubHeader(msg string) {
	fmt.Fprintf(os.Stdout, "\n  %s%s%s%s\n", bold, brightYellow, msg, reset)
}

// KeyValue prints a labeled value.
func KeyValue(key string, value interface{}, valueColor string) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(os.Stdout, "    %s%s%s  %s%v%s\n", dim, paddedKey, reset, valueColor, value, reset)
}

// ────────────────────────────────────────────────────────────
// HTTP request log: colorized request logging for the server
// ────────────────────────────────────────────────────────────

// LogRequest prints a colorized HTTP request log line to stdout.
func LogRequest(method, path string, status int, duration time.Duration, remote string) {
	writeRequest(os.Stdout, method, path, status, duration, remote)
}

func writeRequest(w io.Writer, method, path string, status int, duration time.Duration, remote string) {
	fmt.Fprintf(w, "  %s%s%-7s%s %s%-35s%s %s%s%d%s %s%s%s %s%s%s\n",
		bold, colorForMethod(method), method, reset,
		white, path, reset,
		bold, colorForStatus(status), status, reset,
		dim, formatDuration(duration), reset,
		dim+white, remote, reset,
	)
}

func colorForMethod(method string) string {
	switch method {
	case "GET":
		return brightBlue
	case "POST":
		return brightGreen
	case "PUT", "PATCH":
		return brightYellow
	case "DELETE":
		return brightRed
	case "OPTIONS":
		return dim + white
	default:
		return white
	}
}

func colorForStatus(code int) string {
	switch {
	case code >= 500:
		return brightRed
	case code >= 400:
		return brightYellow
	case code >= 300:
		return brightCyan
	case code >= 200:
		return brightGreen
	default:
		return white
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dμs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
