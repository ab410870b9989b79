package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// SummaryWriter writes statistical test results as a tab-delimited table,
// one row per test.
type SummaryWriter struct {
	w       *bufio.Writer
	columns []string
	rows    int
}

// NewSummaryWriter creates a stats summary writer.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"test",
			"comparison",
			"statistic",
			"p_value",
			"n",
			"note",
		},
	}
}

// WriteHeader writes the header line.
func (sw *SummaryWriter) WriteHeader() error {
	_, err := sw.w.WriteString(strings.Join(sw.columns, "\t") + "\n")
	return err
}

// WriteTest writes one test result row. A NaN p-value is written as "-"
// for procedures that report only a significance decision.
func (sw *SummaryWriter) WriteTest(test, comparison string, statistic, pValue float64, n int, note string) error {
	if note == "" {
		note = "-"
	}
	p := "-"
	if !math.IsNaN(pValue) {
		p = fmt.Sprintf("%.4g", pValue)
	}
	values := []string{
		test,
		comparison,
		fmt.Sprintf("%.4g", statistic),
		p,
		fmt.Sprintf("%d", n),
		note,
	}
	sw.rows++
	_, err := sw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Rows returns the number of result rows written.
func (sw *SummaryWriter) Rows() int {
	return sw.rows
}

// Flush flushes any buffered data to the underlying writer.
func (sw *SummaryWriter) Flush() error {
	return sw.w.Flush()
}
