// Package tables provides loaders for the tab-separated evidence tables
// consumed by the analysis commands: copy-number calls, structural variant
// calls, fusion calls, histology metadata, and classifier scores.
package tables

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseError describes a malformed line in a delimited input file.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", e.Path, e.Line, e.Message)
}

// Reader streams rows from a tab-separated file with a named-column header.
// Gzipped input is detected by magic bytes. Comment lines (#) before the
// header are skipped.
type Reader struct {
	path       string
	file       *os.File
	gzipReader *gzip.Reader
	scanner    *bufio.Scanner
	header     []string
	index      map[string]int
	lineNumber int
}

// OpenReader opens a delimited file and reads its header line.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}

	r := &Reader{path: path, file: file}

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	if _, err := io.ReadFull(file, buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read table header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek table: %w", err)
	}

	var src io.Reader = file
	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		src = r.gzipReader
	}

	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if err := r.readHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// NewReaderFrom creates a Reader over an io.Reader (used by tests and stdin).
func NewReaderFrom(src io.Reader) (*Reader, error) {
	r := &Reader{scanner: bufio.NewScanner(src)}
	r.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.header = strings.Split(line, "\t")
		r.index = make(map[string]int, len(r.header))
		for i, col := range r.header {
			r.index[strings.TrimSpace(col)] = i
		}
		return nil
	}
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	return &ParseError{Path: r.path, Line: r.lineNumber, Message: "no header line found"}
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Require returns the indices of the named columns, or an error naming the
// first column that is missing from the header.
func (r *Reader) Require(names ...string) ([]int, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		idx, ok := r.index[name]
		if !ok {
			return nil, &ParseError{
				Path:    r.path,
				Line:    r.lineNumber,
				Message: fmt.Sprintf("missing required column %q", name),
			}
		}
		indices[i] = idx
	}
	return indices, nil
}

// Optional returns the index of the named column, or -1 if absent.
func (r *Reader) Optional(name string) int {
	idx, ok := r.index[name]
	if !ok {
		return -1
	}
	return idx
}

// Next returns the fields of the next data row, or nil at end of input.
// Rows with fewer fields than the header are padded with empty strings.
func (r *Reader) Next() ([]string, error) {
	for r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		for len(fields) < len(r.header) {
			fields = append(fields, "")
		}
		return fields, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}
	return nil, nil
}

// Line returns the current line number, for error reporting.
func (r *Reader) Line() int {
	return r.lineNumber
}

func (r *Reader) errf(format string, args ...any) error {
	return &ParseError{Path: r.path, Line: r.lineNumber, Message: fmt.Sprintf(format, args...)}
}

// Close releases the underlying file handles.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
