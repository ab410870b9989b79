// Package output provides tab-delimited writers for classification and
// filtering results.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/openpbta/pbta-tools/internal/tp53"
)

// StatusWriter writes per-sample status calls in tab-delimited format.
type StatusWriter struct {
	w       *bufio.Writer
	gene    string
	columns []string
	counts  map[tp53.Status]int
	total   int
}

// NewStatusWriter creates a status call writer for the given gene.
func NewStatusWriter(w io.Writer, gene string) *StatusWriter {
	return &StatusWriter{
		w:    bufio.NewWriter(w),
		gene: gene,
		columns: []string{
			"sample_id",
			"gene",
			"status",
			"snv_indel_count",
			"cnv_loss_count",
			"sv_count",
			"fusion_count",
			"hotspot",
			"activating",
			"predisposition",
			"expression_score",
		},
		counts: make(map[tp53.Status]int),
	}
}

// WriteHeader writes the header line.
func (sw *StatusWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// Write writes one classified record.
func (sw *StatusWriter) Write(rec *tp53.SampleAlterationRecord, label tp53.Status) error {
	predisposition := rec.Predisposition
	if predisposition == "" {
		predisposition = "-"
	}

	score := "-"
	if rec.ExpressionScore != nil {
		score = fmt.Sprintf("%.4f", *rec.ExpressionScore)
	}

	values := []string{
		rec.SampleID,
		sw.gene,
		string(label),
		fmt.Sprintf("%d", rec.SNVIndelCount),
		fmt.Sprintf("%d", rec.CNVLossCount),
		fmt.Sprintf("%d", rec.SVCount),
		fmt.Sprintf("%d", rec.FusionCount),
		yesNo(rec.HotspotFlag),
		yesNo(rec.ActivatingFlag),
		predisposition,
		score,
	}

	sw.counts[label]++
	sw.total++

	_, err := sw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteSummary writes a label tally, typically to stderr.
func (sw *StatusWriter) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Classified %d samples for %s:\n", sw.total, sw.gene)
	for _, label := range []tp53.Status{tp53.StatusActivated, tp53.StatusLoss, tp53.StatusOther} {
		fmt.Fprintf(w, "  %-10s %d\n", label, sw.counts[label])
	}
}

// Flush flushes any buffered data to the underlying writer.
func (sw *StatusWriter) Flush() error {
	return sw.w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
