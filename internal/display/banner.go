package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nyaya-legal/nyaya/internal/config"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"

	brightRed     = "\033[91m"
	brightGreen   = "\033[92m"
	brightYellow  = "\033[93m"
	brightBlue    = "\033[94m"
	brightMagenta = "\033[95m"
	brightCyan    = "\033[96m"
	brightWhite   = "\033[97m"
)

// ServerInfo holds all the information to display in the startup banner.
type ServerInfo struct {
	Version string

	// Chat completions
	LLMModel   string
	LLMBaseURL string

	// Speech to text
	TranscribeModel   string
	TranscribeBaseURL string

	// Case database
	CaseSearchBaseURL string

	// Configured reports, per service name, whether its API key is set.
	Configured map[string]bool

	PromptsFile string
	CORSOrigins []string

	Port int
}

// Endpoint is one row of the banner's endpoint table.
type Endpoint struct {
	Label  string
	Method string
	Path   string
}

// Endpoints lists the routes served by the HTTP server.
var Endpoints = []Endpoint{
	{Label: "Legal", Method: "POST", Path: "/api/legal-assist"},
	{Label: "Chat", Method: "POST", Path: "/api/general-chat"},
	{Label: "Cases", Method: "POST", Path: "/api/case-law"},
	{Label: "Kanoon", Method: "GET", Path: "/api/indian-kanoon"},
	{Label: "Speech", Method: "POST", Path: "/api/transcribe"},
	{Label: "Health", Method: "GET", Path: "/health"},
}

// PrintBanner prints a fancy colorful startup banner with all server information.
func PrintBanner(info ServerInfo) {
	writeBanner(os.Stdout, info)
}

func writeBanner(w io.Writer, info ServerInfo) {
	host := fmt.Sprintf("http://localhost:%d", info.Port)

	// Header
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s%s⚖  Nyaya Legal Assistant%s", bold, brightCyan, reset)
	if info.Version != "" {
		fmt.Fprintf(w, " %s%s%s", dim, info.Version, reset)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s%s%s%s\n", dim, cyan, rule, reset)
	fmt.Fprintln(w)

	printSectionHeader(w, "🧠 Language Model")
	printKV(w, "Model", info.LLMModel, brightMagenta)
	printKV(w, "Endpoint", maskURL(info.LLMBaseURL), dim+white)
	printService(w, config.ServiceLLM, info.Configured, "set TOGETHER_API_KEY")
	fmt.Fprintln(w)

	printSectionHeader(w, "🎙  Transcription")
	printKV(w, "Model", info.TranscribeModel, brightMagenta)
	printKV(w, "Endpoint", maskURL(info.TranscribeBaseURL), dim+white)
	printService(w, config.ServiceTranscriber, info.Configured, "set OPENAI_API_KEY")
	fmt.Fprintln(w)

	printSectionHeader(w, "📚 Case Database")
	printKV(w, "Endpoint", maskURL(info.CaseSearchBaseURL), dim+white)
	printService(w, config.ServiceCaseSearch, info.Configured, "set INDIAN_KANOON_API_KEY")
	fmt.Fprintln(w)

	printSectionHeader(w, "⚙️  Runtime Configuration")
	if info.PromptsFile != "" {
		printKV(w, "Prompts", info.PromptsFile, brightWhite)
	} else {
		printKV(w, "Prompts", "(built-in)", dim+white)
	}
	origins := strings.Join(info.CORSOrigins, ", ")
	if origins == "" || origins == "*" {
		printKVColored(w, "CORS", "any origin", brightYellow)
	} else {
		printKV(w, "CORS", origins, white)
	}
	fmt.Fprintln(w)

	printSectionHeader(w, "🌐 Endpoints")
	for _, e := range Endpoints {
		printEndpoint(w, e.Label, e.Method, host+e.Path, colorForMethod(e.Method))
	}
	fmt.Fprintln(w)

	// Footer
	fmt.Fprintf(w, "  %s%s%s%s\n", dim, cyan, rule, reset)
	fmt.Fprintf(w, "  %s%s🚀 Server listening on %s%s%s%s\n", dim, white, reset, bold+brightGreen, host, reset)
	fmt.Fprintf(w, "  %s%s%s%s\n", dim, cyan, rule, reset)
	fmt.Fprintln(w)
}

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func printSectionHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "  %s%s%s%s\n", bold, brightYellow, title, reset)
}

func printService(w io.Writer, name string, configured map[string]bool, hint string) {
	if configured[name] {
		printKVColored(w, "API Key", "✓ configured", brightGreen)
		return
	}
	printKVColored(w, "API Key", "✗ missing ("+hint+")", brightYellow)
}

func printKV(w io.Writer, key, value, valueColor string) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(w, "    %s%s%s  %s%s%s\n", dim, paddedKey, reset, valueColor, value, reset)
}

func printKVColored(w io.Writer, key, value, valueColor string) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(w, "    %s%s%s  %s%s%s%s\n", dim, paddedKey, reset, bold, valueColor, value, reset)
}

func printEndpoint(w io.Writer, label, method, url, color string) {
	paddedLabel := padRight(label, 8)
	fmt.Fprintf(w, "    %s%s%s %s%s%-5s%s %s%s%s\n",
		dim, paddedLabel, reset,
		bold, brightWhite, method, reset,
		color, url, reset,
	)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// maskURL trims the trailing slash for compact display.
func maskURL(rawURL string) string {
	if rawURL == "" {
		return "(not set)"
	}
	return strings.TrimRight(rawURL, "/")
}
