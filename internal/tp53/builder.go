package tp53

import (
	"sort"

	"go.uber.org/zap"

	"github.com/openpbta/pbta-tools/internal/maf"
	"github.com/openpbta/pbta-tools/internal/tables"
)

// Evidence holds the loaded per-variant-type tables to join on sample id.
type Evidence struct {
	SNVCalls    map[string][]*maf.SnvCall
	CNVLosses   map[string][]tables.CNVCall
	SVCalls     map[string][]tables.SVCall
	FusionCount map[string]int
	Histologies map[string]tables.Histology
	Scores      map[string]float64
}

// Builder joins evidence tables into immutable SampleAlterationRecords.
type Builder struct {
	gene       string
	hotspots   HotspotSet
	activating ActivatingSet
	logger     *zap.Logger
}

// NewBuilder creates a record builder for the given gene.
func NewBuilder(gene string) *Builder {
	return &Builder{
		gene:       gene,
		hotspots:   make(HotspotSet),
		activating: DefaultActivatingChanges(),
		logger:     zap.NewNop(),
	}
}

// SetHotspots sets the curated hotspot codon set.
func (b *Builder) SetHotspots(hs HotspotSet) {
	b.hotspots = hs
}

// SetActivating overrides the activating substitution set.
func (b *Builder) SetActivating(a ActivatingSet) {
	b.activating = a
}

// SetLogger sets the logger for progress and warning messages.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Build joins the evidence tables and returns one record per sample,
// sorted by sample id. The sample universe is the union of the histology
// roster and every sample seen in any evidence table.
func (b *Builder) Build(ev *Evidence) []*SampleAlterationRecord {
	samples := make(map[string]bool)
	for s := range ev.Histologies {
		samples[s] = true
	}
	for s := range ev.SNVCalls {
		samples[s] = true
	}
	for s := range ev.CNVLosses {
		samples[s] = true
	}
	for s := range ev.SVCalls {
		samples[s] = true
	}
	for s := range ev.FusionCount {
		samples[s] = true
	}
	for s := range ev.Scores {
		samples[s] = true
	}

	ids := make([]string, 0, len(samples))
	for s := range samples {
		ids = append(ids, s)
	}
	sort.Strings(ids)

	records := make([]*SampleAlterationRecord, 0, len(ids))
	for _, id := range ids {
		rec := &SampleAlterationRecord{SampleID: id}

		for _, call := range ev.SNVCalls[id] {
			rec.SNVIndelCount++
			if b.hotspots.Contains(b.gene, call.ProteinPos) {
				rec.HotspotFlag = true
			}
			if b.activating.Contains(call.HGVSpShort) {
				rec.ActivatingFlag = true
			}
		}
		rec.CNVLossCount = len(ev.CNVLosses[id])
		rec.SVCount = len(ev.SVCalls[id])
		rec.FusionCount = ev.FusionCount[id]

		if h, ok := ev.Histologies[id]; ok {
			rec.Predisposition = h.Predisposition
		} else {
			b.logger.Debug("sample missing from histologies",
				zap.String("sample", id))
		}
		if score, ok := ev.Scores[id]; ok {
			s := score
			rec.ExpressionScore = &s
		}

		records = append(records, rec)
	}

	b.logger.Info("built alteration records",
		zap.String("gene", b.gene),
		zap.Int("samples", len(records)))

	return records
}
