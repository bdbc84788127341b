// ABOUTME: Bulk loader from headered delimited text into a fresh measurement store.
// ABOUTME: Parses and coerces every row before rebuilding the store from scratch.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/healthmetrics/internal/logging"
	"github.com/harperreed/healthmetrics/internal/storage"
)

// DefaultDelimiter separates header names and values.
const DefaultDelimiter = ","

// ErrColumnMismatch is returned in strict mode when a row's value count differs
// from the header's.
var ErrColumnMismatch = errors.New("column count does not match header")

// Options controls parsing.
type Options struct {
	// Delimiter splits fields. No quoting or escaping is recognised.
	Delimiter string
	// Strict rejects rows whose value count differs from the header.
	Strict bool
}

// Result reports what a parse or load did.
type Result struct {
	Headers      []string
	Rows         int
	ShortRows    int
	LongRows     int
	SkippedLines int
}

// Row is one parsed line: header names zipped positionally with values.
type Row struct {
	Line   int
	Fields map[string]string
}

// Parse reads a header line and every following line from r. Rows shorter than
// the header produce a partial field map; extra values are dropped.
func Parse(r io.Reader, opts Options) ([]Row, Result, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	var res Result
	var rows []Row

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, res, fmt.Errorf("read header: %w", err)
		}
		return nil, res, nil
	}
	header := strings.TrimPrefix(scanner.Text(), "\ufeff")
	res.Headers = strings.Split(strings.TrimSpace(header), delim)

	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			res.SkippedLines++
			continue
		}

		values := strings.Split(text, delim)
		switch {
		case len(values) < len(res.Headers):
			if opts.Strict {
				return nil, res, fmt.Errorf("line %d: %w: got %d values, want %d",
					line, ErrColumnMismatch, len(values), len(res.Headers))
			}
			res.ShortRows++
		case len(values) > len(res.Headers):
			if opts.Strict {
				return nil, res, fmt.Errorf("line %d: %w: got %d values, want %d",
					line, ErrColumnMismatch, len(values), len(res.Headers))
			}
			res.LongRows++
		}

		fields := make(map[string]string, len(res.Headers))
		for i, name := range res.Headers {
			if i >= len(values) {
				break
			}
			fields[name] = values[i]
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}
	if err := scanner.Err(); err != nil {
		return nil, res, fmt.Errorf("read line %d: %w", line+1, err)
	}

	res.Rows = len(rows)
	return rows, res, nil
}

// LoadFile rebuilds the store at storePath from the delimited file at csvPath.
// Every row is coerced before the old store is deleted, so a malformed value
// aborts the load without writing anything.
func LoadFile(csvPath, storePath string, opts Options) (*storage.Store, Result, error) {
	logger := logging.Logger(logging.SourceLoader).With("run", uuid.NewString()[:8], "file", csvPath)

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, Result{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	rows, res, err := Parse(f, opts)
	if err != nil {
		return nil, res, fmt.Errorf("parse %s: %w", csvPath, err)
	}

	records := make([]storage.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := storage.RecordFromFields(row.Fields)
		if err != nil {
			return nil, res, fmt.Errorf("parse %s: line %d: %w", csvPath, row.Line, err)
		}
		records = append(records, rec)
	}
	warnMismatches(logger, res)

	if err := storage.Remove(storePath); err != nil {
		return nil, res, fmt.Errorf("remove existing store: %w", err)
	}
	s, err := storage.Open(storePath)
	if err != nil {
		return nil, res, err
	}

	for i, rec := range records {
		if _, err := s.Insert(rec); err != nil {
			return nil, res, fmt.Errorf("load line %d: %w", rows[i].Line, err)
		}
	}

	logger.Info("loaded store", "store", storePath, "rows", res.Rows, "skipped", res.SkippedLines)
	return s, res, nil
}

func warnMismatches(logger *log.Logger, res Result) {
	if len(res.Headers) == 0 {
		logger.Warn("input has no header line")
	}
	if res.ShortRows > 0 {
		logger.Warn("rows shorter than header; missing values default to 0", "rows", res.ShortRows)
	}
	if res.LongRows > 0 {
		logger.Warn("rows longer than header; extra values dropped", "rows", res.LongRows)
	}
}
