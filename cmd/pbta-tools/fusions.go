package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openpbta/pbta-tools/internal/fusion"
	"github.com/openpbta/pbta-tools/internal/output"
	"github.com/openpbta/pbta-tools/internal/tables"
)

func newFilterFusionsCmd() *cobra.Command {
	var (
		fusionPath   string
		geneListPath string
		outputFile   string
		showAll      bool
	)

	cmd := &cobra.Command{
		Use:   "filter-fusions",
		Short: "Filter raw fusion calls to a putative oncogenic subset",
		Long: `Apply artifact, read-evidence, and kinase-domain-retention rules to a
raw fusion call table and emit the calls that survive filtering.`,
		Example: `  pbta-tools filter-fusions --fusions fusions_raw.tsv \
      --gene-list cancerGeneList.tsv -o fusions_filtered.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilterFusions(fusionPath, geneListPath, outputFile, showAll)
		},
	}

	cmd.Flags().StringVar(&fusionPath, "fusions", "", "Raw fusion call table (required)")
	cmd.Flags().StringVar(&geneListPath, "gene-list", "", "Cancer gene list TSV with kinase annotations")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&showAll, "all", false, "Write discarded calls too, with their disposition")
	cmd.MarkFlagRequired("fusions")

	return cmd
}

func runFilterFusions(fusionPath, geneListPath, outputFile string, showAll bool) error {
	logger := newLogger()
	defer logger.Sync()

	calls, err := tables.LoadFusionCalls(fusionPath)
	if err != nil {
		return fmt.Errorf("load fusions: %w", err)
	}

	genes := tables.GeneList{}
	if geneListPath != "" {
		if genes, err = tables.LoadGeneList(geneListPath); err != nil {
			return fmt.Errorf("load gene list: %w", err)
		}
	}

	filter := fusion.NewFilter(genes)
	filter.SetLogger(logger)
	results := filter.Run(calls)

	out, closeOut, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	writer := output.NewFusionWriter(out, showAll)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(r); err != nil {
			return fmt.Errorf("write fusion call: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	writer.WriteSummary(os.Stderr)

	return nil
}
