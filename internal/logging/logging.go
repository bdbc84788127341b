// ABOUTME: Structured logfmt logging for the healthmetrics tool.
// ABOUTME: Provides a shared base logger and source-tagged children writing to stderr.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp    = "app"
	SourceDB     = "db"
	SourceLoader = "loader"
	SourceMCP    = "mcp"
)

var (
	mu         sync.Mutex
	baseLogger *log.Logger
)

// Init configures the base logger. Later calls replace the writer and level.
// stdout is never used so that the MCP stdio transport stays clean.
func Init(w io.Writer, level log.Level) {
	mu.Lock()
	defer mu.Unlock()

	baseLogger = log.NewWithOptions(w, log.Options{
		TimeFunction:    log.NowUTC,
		TimeFormat:      time.RFC3339,
		Level:           level,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if baseLogger == nil {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})
	}
	return baseLogger.With("source", source)
}
