package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openpbta/pbta-tools/internal/output"
	"github.com/openpbta/pbta-tools/internal/stats"
	"github.com/openpbta/pbta-tools/internal/tables"
)

func newSummarizeCmd() *cobra.Command {
	var (
		statusPath string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Run group-comparison statistics over a classified status table",
		Long: `Compare the expression classifier score across status labels
(Wilcoxon rank-sum for two groups, one-way ANOVA with Tukey HSD for
more), test label/predisposition independence (chi-squared), and
correlate score with SNV/indel burden (Spearman).`,
		Example: `  pbta-tools summarize --status tp53_status.tsv -o summary.tsv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(statusPath, outputFile)
		},
	}

	cmd.Flags().StringVar(&statusPath, "status", "", "Status table from the classify command (required)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagRequired("status")

	return cmd
}

// statusRow is one parsed row of a classify output table.
type statusRow struct {
	label          string
	snvCount       float64
	predisposition bool
	score          *float64
}

func runSummarize(statusPath, outputFile string) error {
	logger := newLogger()
	defer logger.Sync()

	rows, err := readStatusTable(statusPath)
	if err != nil {
		return err
	}
	logger.Debug("read status table", zap.Int("rows", len(rows)))

	out, closeOut, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	writer := output.NewSummaryWriter(out)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := summarizeScoreByLabel(rows, writer, logger); err != nil {
		return err
	}
	if err := summarizeLabelVsPredisposition(rows, writer, logger); err != nil {
		return err
	}
	if err := summarizeScoreVsBurden(rows, writer, logger); err != nil {
		return err
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	logger.Info("wrote summary", zap.Int("tests", writer.Rows()))
	return nil
}

func readStatusTable(path string) ([]statusRow, error) {
	r, err := tables.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require("status", "snv_indel_count", "predisposition", "expression_score")
	if err != nil {
		return nil, err
	}

	var rows []statusRow
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		row := statusRow{label: strings.TrimSpace(fields[idx[0]])}
		if row.label == "" {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(fields[idx[1]])); err == nil {
			row.snvCount = float64(n)
		}
		row.predisposition = fields[idx[2]] != "" && fields[idx[2]] != "-"
		if raw := strings.TrimSpace(fields[idx[3]]); raw != "" && raw != "-" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				row.score = &v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// summarizeScoreByLabel compares score distributions across status labels:
// Wilcoxon rank-sum for two labels, ANOVA plus Tukey HSD for more.
func summarizeScoreByLabel(rows []statusRow, writer *output.SummaryWriter, logger *zap.Logger) error {
	groups := make(map[string][]float64)
	for _, row := range rows {
		if row.score != nil {
			groups[row.label] = append(groups[row.label], *row.score)
		}
	}
	// Drop singleton groups; no within-group spread to test against.
	for label, g := range groups {
		if len(g) < 2 {
			logger.Warn("dropping status group with <2 scored samples", zap.String("label", label))
			delete(groups, label)
		}
	}

	switch {
	case len(groups) < 2:
		logger.Warn("fewer than 2 scored status groups; skipping score comparison")
		return nil
	case len(groups) == 2:
		labels := make([]string, 0, 2)
		for label := range groups {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		res, err := stats.WilcoxonRankSum(groups[labels[0]], groups[labels[1]])
		if err != nil {
			return fmt.Errorf("wilcoxon: %w", err)
		}
		n := len(groups[labels[0]]) + len(groups[labels[1]])
		return writer.WriteTest("wilcoxon_rank_sum",
			fmt.Sprintf("score: %s vs %s", labels[0], labels[1]),
			res.W, res.PValue, n, "")
	}

	anova, err := stats.OneWayANOVA(groups)
	if err != nil {
		return fmt.Errorf("anova: %w", err)
	}
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	if err := writer.WriteTest("anova", "score by status", anova.F, anova.PValue, n, ""); err != nil {
		return err
	}

	comparisons, err := stats.TukeyHSD(groups, anova)
	if err != nil {
		return fmt.Errorf("tukey: %w", err)
	}
	for _, c := range comparisons {
		note := fmt.Sprintf("diff=%.3g ns", c.MeanDiff)
		if c.Significant {
			note = fmt.Sprintf("diff=%.3g significant", c.MeanDiff)
		}
		comparison := fmt.Sprintf("score: %s vs %s", c.GroupA, c.GroupB)
		if err := writer.WriteTest("tukey_hsd", comparison, c.Q, math.NaN(), n, note); err != nil {
			return err
		}
	}
	return nil
}

// summarizeLabelVsPredisposition tests independence of status label and
// documented predisposition syndrome.
func summarizeLabelVsPredisposition(rows []statusRow, writer *output.SummaryWriter, logger *zap.Logger) error {
	labelSet := make(map[string]bool)
	for _, row := range rows {
		labelSet[row.label] = true
	}
	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) < 2 {
		logger.Warn("fewer than 2 status labels; skipping chi-squared")
		return nil
	}

	observed := make([][]float64, len(labels))
	labelIdx := make(map[string]int, len(labels))
	for i, label := range labels {
		observed[i] = make([]float64, 2)
		labelIdx[label] = i
	}
	for _, row := range rows {
		col := 0
		if row.predisposition {
			col = 1
		}
		observed[labelIdx[row.label]][col]++
	}

	res, err := stats.ChiSquaredIndependence(observed)
	if err != nil {
		logger.Warn("chi-squared not applicable", zap.Error(err))
		return nil
	}
	return writer.WriteTest("chi_squared", "status vs predisposition",
		res.Statistic, res.PValue, len(rows), fmt.Sprintf("df=%d", res.DF))
}

// summarizeScoreVsBurden correlates classifier score with SNV/indel count.
func summarizeScoreVsBurden(rows []statusRow, writer *output.SummaryWriter, logger *zap.Logger) error {
	var scores, burdens []float64
	for _, row := range rows {
		if row.score != nil {
			scores = append(scores, *row.score)
			burdens = append(burdens, row.snvCount)
		}
	}

	res, err := stats.Spearman(scores, burdens)
	if err != nil {
		logger.Warn("correlation not applicable", zap.Error(err))
		return nil
	}
	return writer.WriteTest("spearman", "score vs snv_indel_count",
		res.R, res.PValue, res.N, "")
}
