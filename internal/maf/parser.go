// Package maf provides MAF (Mutation Annotation Format) file parsing for
// consensus SNV/indel call tables.
package maf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Standard MAF column names.
const (
	ColHugoSymbol            = "Hugo_Symbol"
	ColChromosome            = "Chromosome"
	ColStartPosition         = "Start_Position"
	ColVariantClassification = "Variant_Classification"
	ColHGVSpShort            = "HGVSp_Short"
	ColProteinPosition       = "Protein_position"
	ColTumorSampleBarcode    = "Tumor_Sample_Barcode"
)

// ColumnIndices holds the indices of the MAF columns this parser reads.
type ColumnIndices struct {
	HugoSymbol            int
	Chromosome            int
	StartPosition         int
	VariantClassification int
	HGVSpShort            int
	ProteinPosition       int
	TumorSampleBarcode    int
}

// SnvCall is one SNV/indel call from a consensus MAF.
type SnvCall struct {
	Sample         string
	Hugo           string
	Chrom          string
	Start          int64
	Classification string // MAF Variant_Classification term
	HGVSpShort     string // e.g. "p.R175H", "" when absent
	ProteinPos     int    // 1-based amino acid position, 0 when unknown
}

// silentClassifications are Variant_Classification terms excluded from
// alteration counting: they do not change the protein product or fall
// outside the transcript body.
var silentClassifications = map[string]bool{
	"Silent":        true,
	"Intron":        true,
	"3'UTR":         true,
	"5'UTR":         true,
	"3'Flank":       true,
	"5'Flank":       true,
	"IGR":           true,
	"RNA":           true,
	"Splice_Region": true,
}

// Qualifies reports whether the call counts as a protein-altering event.
func (c *SnvCall) Qualifies() bool {
	return c.Classification != "" && !silentClassifications[c.Classification]
}

// ParseError describes a malformed MAF line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf line %d: %s", e.Line, e.Message)
}

// Parser reads SNV/indel calls from a MAF file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    ColumnIndices
}

// NewParser creates a MAF parser for the given file.
// Supports plain and gzipped MAF; use "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read maf header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek maf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{reader: bufio.NewReader(r)}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// Columns returns the parsed column indices.
func (p *Parser) Columns() ColumnIndices {
	return p.columns
}

func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{Line: p.lineNumber, Message: "no header line found"}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return p.parseColumnIndices(line)
	}
}

func (p *Parser) parseColumnIndices(headerLine string) error {
	columns := strings.Split(headerLine, "\t")

	p.columns = ColumnIndices{
		HugoSymbol:            -1,
		Chromosome:            -1,
		StartPosition:         -1,
		VariantClassification: -1,
		HGVSpShort:            -1,
		ProteinPosition:       -1,
		TumorSampleBarcode:    -1,
	}

	for i, col := range columns {
		switch col {
		case ColHugoSymbol:
			p.columns.HugoSymbol = i
		case ColChromosome:
			p.columns.Chromosome = i
		case ColStartPosition:
			p.columns.StartPosition = i
		case ColVariantClassification:
			p.columns.VariantClassification = i
		case ColHGVSpShort:
			p.columns.HGVSpShort = i
		case ColProteinPosition:
			p.columns.ProteinPosition = i
		case ColTumorSampleBarcode:
			p.columns.TumorSampleBarcode = i
		}
	}

	for _, req := range []struct {
		name string
		idx  int
	}{
		{ColHugoSymbol, p.columns.HugoSymbol},
		{ColVariantClassification, p.columns.VariantClassification},
		{ColTumorSampleBarcode, p.columns.TumorSampleBarcode},
	} {
		if req.idx < 0 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("missing required column %s", req.name),
			}
		}
	}
	return nil
}

// Next returns the next SNV/indel call, or nil at end of input.
func (p *Parser) Next() (*SnvCall, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		call, perr := p.parseLine(line)
		if perr != nil {
			return nil, perr
		}
		return call, nil
	}
}

func (p *Parser) parseLine(line string) (*SnvCall, error) {
	fields := strings.Split(line, "\t")

	get := func(idx int) string {
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	call := &SnvCall{
		Sample:         get(p.columns.TumorSampleBarcode),
		Hugo:           get(p.columns.HugoSymbol),
		Chrom:          get(p.columns.Chromosome),
		Classification: get(p.columns.VariantClassification),
		HGVSpShort:     get(p.columns.HGVSpShort),
	}
	if call.Sample == "" {
		return nil, &ParseError{Line: p.lineNumber, Message: "empty Tumor_Sample_Barcode"}
	}

	if raw := get(p.columns.StartPosition); raw != "" {
		pos, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("invalid Start_Position %q", raw),
			}
		}
		call.Start = pos
	}

	call.ProteinPos = proteinPosition(get(p.columns.ProteinPosition), call.HGVSpShort)
	return call, nil
}

// proteinPosition extracts the 1-based amino-acid position from the MAF
// Protein_position column ("175/393", "175-176/393") or, failing that,
// from HGVSp_Short ("p.R175H").
func proteinPosition(raw, hgvsp string) int {
	if raw != "" && raw != "." {
		if i := strings.IndexAny(raw, "/-"); i > 0 {
			raw = raw[:i]
		}
		if pos, err := strconv.Atoi(raw); err == nil && pos > 0 {
			return pos
		}
	}

	s := strings.TrimPrefix(hgvsp, "p.")
	start := 0
	for start < len(s) && (s[start] < '0' || s[start] > '9') {
		start++
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if start == end {
		return 0
	}
	pos, err := strconv.Atoi(s[start:end])
	if err != nil || pos <= 0 {
		return 0
	}
	return pos
}

// ReadGeneCalls reads the whole file and returns qualifying calls for the
// given gene grouped by sample.
func ReadGeneCalls(path, gene string) (map[string][]*SnvCall, error) {
	p, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	calls := make(map[string][]*SnvCall)
	for {
		call, err := p.Next()
		if err != nil {
			return nil, err
		}
		if call == nil {
			break
		}
		if !strings.EqualFold(call.Hugo, gene) || !call.Qualifies() {
			continue
		}
		calls[call.Sample] = append(calls[call.Sample], call)
	}
	return calls, nil
}

// Close closes the underlying file handles.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
