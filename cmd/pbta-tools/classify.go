package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/openpbta/pbta-tools/internal/duckdb"
	"github.com/openpbta/pbta-tools/internal/maf"
	"github.com/openpbta/pbta-tools/internal/output"
	"github.com/openpbta/pbta-tools/internal/tables"
	"github.com/openpbta/pbta-tools/internal/tp53"
)

func newClassifyCmd() *cobra.Command {
	var (
		gene        string
		mafPath     string
		cnvPath     string
		svPath      string
		fusionPath  string
		histoPath   string
		scoresPath  string
		hotspotPath string
		activating  []string
		outputFile  string
		dbPath      string
		runID       string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify per-sample gene alteration status",
		Long: `Join the per-variant-type evidence tables on sample id, build one
alteration record per sample, and classify each sample's gene status as
activated, loss, or other.`,
		Example: `  pbta-tools classify --maf consensus.maf.gz --cnv cnv_losses.tsv \
      --sv sv_overlaps.tsv --fusions fusions.tsv \
      --histologies histologies.tsv --scores classifier_scores.tsv \
      -o tp53_status.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gene == "" {
				gene = viper.GetString("gene")
			}
			return runClassify(classifyOptions{
				gene:        gene,
				mafPath:     mafPath,
				cnvPath:     cnvPath,
				svPath:      svPath,
				fusionPath:  fusionPath,
				histoPath:   histoPath,
				scoresPath:  scoresPath,
				hotspotPath: hotspotPath,
				activating:  activating,
				outputFile:  outputFile,
				dbPath:      dbPath,
				runID:       runID,
				workers:     workers,
			})
		},
	}

	cmd.Flags().StringVar(&gene, "gene", "", "Gene of interest (default from config, TP53)")
	cmd.Flags().StringVar(&mafPath, "maf", "", "Consensus MAF of SNV/indel calls (required)")
	cmd.Flags().StringVar(&cnvPath, "cnv", "", "Copy-number call table")
	cmd.Flags().StringVar(&svPath, "sv", "", "Structural-variant overlap table")
	cmd.Flags().StringVar(&fusionPath, "fusions", "", "Fusion call table")
	cmd.Flags().StringVar(&histoPath, "histologies", "", "Histologies metadata table")
	cmd.Flags().StringVar(&scoresPath, "scores", "", "Expression classifier score table")
	cmd.Flags().StringVar(&hotspotPath, "hotspots", "", "Cancer hotspots TSV (default: data dir copy)")
	cmd.Flags().StringSliceVar(&activating, "activating", nil, "Override activating substitutions (e.g. p.R273C,p.R248W)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Also persist calls to this DuckDB database")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier for the results database")
	cmd.Flags().IntVar(&workers, "workers", 0, "Classification workers (default: NumCPU)")
	cmd.MarkFlagRequired("maf")

	return cmd
}

type classifyOptions struct {
	gene        string
	mafPath     string
	cnvPath     string
	svPath      string
	fusionPath  string
	histoPath   string
	scoresPath  string
	hotspotPath string
	activating  []string
	outputFile  string
	dbPath      string
	runID       string
	workers     int
}

func runClassify(opts classifyOptions) error {
	logger := newLogger()
	defer logger.Sync()

	ev, err := loadEvidence(opts, logger)
	if err != nil {
		return err
	}

	builder := tp53.NewBuilder(opts.gene)
	builder.SetLogger(logger)
	if len(opts.activating) > 0 {
		set := make(tp53.ActivatingSet, len(opts.activating))
		for _, change := range opts.activating {
			set[change] = true
		}
		builder.SetActivating(set)
	}

	hotspotPath := opts.hotspotPath
	if hotspotPath == "" {
		hotspotPath = filepath.Join(viper.GetString("data_dir"), hotspotsFileName)
	}
	if _, err := os.Stat(hotspotPath); err == nil {
		hs, err := tp53.LoadHotspots(hotspotPath, viper.GetInt("hotspots.min_samples"))
		if err != nil {
			return fmt.Errorf("load hotspots: %w", err)
		}
		builder.SetHotspots(hs)
		logger.Debug("loaded hotspots", zap.String("path", hotspotPath))
	} else {
		logger.Warn("no hotspot reference found; hotspot evidence disabled",
			zap.String("path", hotspotPath),
			zap.String("hint", "run: pbta-tools download"))
	}

	records := builder.Build(ev)
	labels := tp53.ClassifyAll(records, opts.workers)

	out, closeOut, err := openOutput(opts.outputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	writer := output.NewStatusWriter(out, opts.gene)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(rec, labels[i]); err != nil {
			return fmt.Errorf("write status call: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	writer.WriteSummary(os.Stderr)

	if opts.dbPath != "" {
		if err := persistCalls(opts, records, labels, logger); err != nil {
			return err
		}
	}

	return nil
}

func loadEvidence(opts classifyOptions, logger *zap.Logger) (*tp53.Evidence, error) {
	ev := &tp53.Evidence{
		CNVLosses:   map[string][]tables.CNVCall{},
		SVCalls:     map[string][]tables.SVCall{},
		FusionCount: map[string]int{},
		Histologies: map[string]tables.Histology{},
		Scores:      map[string]float64{},
	}

	snvCalls, err := maf.ReadGeneCalls(opts.mafPath, opts.gene)
	if err != nil {
		return nil, fmt.Errorf("load maf: %w", err)
	}
	ev.SNVCalls = snvCalls
	logger.Debug("loaded snv calls", zap.Int("samples", len(snvCalls)))

	if opts.cnvPath != "" {
		if ev.CNVLosses, err = tables.LoadCNVLosses(opts.cnvPath, opts.gene); err != nil {
			return nil, fmt.Errorf("load cnv: %w", err)
		}
	}
	if opts.svPath != "" {
		if ev.SVCalls, err = tables.LoadSVCalls(opts.svPath, opts.gene); err != nil {
			return nil, fmt.Errorf("load sv: %w", err)
		}
	}
	if opts.fusionPath != "" {
		fusions, err := tables.LoadFusionCalls(opts.fusionPath)
		if err != nil {
			return nil, fmt.Errorf("load fusions: %w", err)
		}
		ev.FusionCount = tables.CountFusionsForGene(fusions, opts.gene)
	}
	if opts.histoPath != "" {
		if ev.Histologies, err = tables.LoadHistologies(opts.histoPath); err != nil {
			return nil, fmt.Errorf("load histologies: %w", err)
		}
	}
	if opts.scoresPath != "" {
		if ev.Scores, err = tables.LoadScores(opts.scoresPath); err != nil {
			return nil, fmt.Errorf("load scores: %w", err)
		}
	}

	return ev, nil
}

func persistCalls(opts classifyOptions, records []*tp53.SampleAlterationRecord, labels []tp53.Status, logger *zap.Logger) error {
	store, err := duckdb.Open(opts.dbPath)
	if err != nil {
		return fmt.Errorf("open results db: %w", err)
	}
	defer store.Close()

	runID := opts.runID
	if runID == "" {
		runID = time.Now().UTC().Format("20060102T150405Z")
	}

	calls := make([]duckdb.StatusCall, len(records))
	for i, rec := range records {
		calls[i] = duckdb.StatusCall{
			RunID:  runID,
			Gene:   opts.gene,
			Record: rec,
			Label:  labels[i],
		}
	}
	if err := store.WriteStatusCalls(calls); err != nil {
		return fmt.Errorf("write status calls: %w", err)
	}

	if err := store.RecordRun(duckdb.RunInfo{
		RunID:       runID,
		ToolVersion: version,
		Gene:        opts.gene,
		MAFPath:     opts.mafPath,
		SampleCount: len(records),
	}); err != nil {
		return err
	}

	// Read the tally back from the database so the log reflects what
	// actually landed after primary-key dedup.
	counts, err := store.CountByLabel(runID)
	if err != nil {
		return fmt.Errorf("count persisted calls: %w", err)
	}
	logger.Info("persisted calls",
		zap.String("db", opts.dbPath),
		zap.String("run_id", runID),
		zap.Int("activated", counts[tp53.StatusActivated]),
		zap.Int("loss", counts[tp53.StatusLoss]),
		zap.Int("other", counts[tp53.StatusOther]))

	return nil
}
