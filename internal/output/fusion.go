package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/openpbta/pbta-tools/internal/fusion"
)

// FusionWriter writes filtered fusion calls in tab-delimited format.
type FusionWriter struct {
	w       *bufio.Writer
	columns []string
	showAll bool
	counts  map[fusion.Disposition]int
	total   int
}

// NewFusionWriter creates a filtered-fusion writer. When showAll is false,
// only calls surviving the filter are written.
func NewFusionWriter(w io.Writer, showAll bool) *FusionWriter {
	return &FusionWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"sample_id",
			"fusion_name",
			"gene1",
			"gene2",
			"caller",
			"junction_reads",
			"spanning_fragments",
			"reading_frame",
			"disposition",
		},
		showAll: showAll,
		counts:  make(map[fusion.Disposition]int),
	}
}

// WriteHeader writes the header line.
func (fw *FusionWriter) WriteHeader() error {
	_, err := fw.w.WriteString(strings.Join(fw.columns, "\t") + "\n")
	return err
}

// Write writes one filter result, honoring the showAll setting.
func (fw *FusionWriter) Write(r fusion.Result) error {
	fw.counts[r.Disposition]++
	fw.total++

	if !fw.showAll && !r.Disposition.Kept() {
		return nil
	}

	c := r.Call
	frame := c.Frame
	if frame == "" {
		frame = "-"
	}

	values := []string{
		c.Sample,
		c.FusionName,
		c.Gene5,
		c.Gene3,
		c.Caller,
		fmt.Sprintf("%d", c.JunctionReads),
		fmt.Sprintf("%d", c.SpanningFragments),
		frame,
		string(r.Disposition),
	}

	_, err := fw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteSummary writes a disposition tally, typically to stderr.
func (fw *FusionWriter) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Filtered %d fusion calls:\n", fw.total)
	for _, d := range []fusion.Disposition{
		fusion.DispositionPutativeOncogenic,
		fusion.DispositionDomainLost,
		fusion.DispositionOther,
		fusion.DispositionLowSupport,
		fusion.DispositionArtifact,
	} {
		fmt.Fprintf(w, "  %-20s %d\n", d, fw.counts[d])
	}
}

// Flush flushes any buffered data to the underlying writer.
func (fw *FusionWriter) Flush() error {
	return fw.w.Flush()
}
