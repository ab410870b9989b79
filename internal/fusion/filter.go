// Package fusion filters raw gene-fusion calls down to a putative
// oncogenic subset using caller evidence, artifact, and domain-retention
// rules.
package fusion

import (
	"strings"

	"go.uber.org/zap"

	"github.com/openpbta/pbta-tools/internal/tables"
)

// Disposition is the filter outcome for one fusion call.
type Disposition string

const (
	DispositionArtifact          Disposition = "artifact"
	DispositionLowSupport        Disposition = "low-support"
	DispositionPutativeOncogenic Disposition = "putative-oncogenic"
	DispositionDomainLost        Disposition = "domain-lost"
	DispositionOther             Disposition = "other"
)

// Kept reports whether a call with this disposition survives filtering.
func (d Disposition) Kept() bool {
	return d != DispositionArtifact && d != DispositionLowSupport
}

// Minimum read support for a single-caller call.
const (
	minJunctionReads     = 2
	minSpanningFragments = 1
	minRecurrentSamples  = 2
)

// artifactFamilies are gene-family prefixes whose fusions are recurrent
// alignment artifacts in RNA-seq callers.
var artifactFamilies = []string{"GOLGA", "HLA-", "RP11-", "LINC"}

// Result pairs a fusion call with its filter disposition.
type Result struct {
	Call        *tables.FusionCall
	Disposition Disposition
}

// Filter applies the fusion filtering rules.
type Filter struct {
	genes  tables.GeneList
	logger *zap.Logger
}

// NewFilter creates a fusion filter using the given cancer gene list for
// kinase/oncogene/TSG membership.
func NewFilter(genes tables.GeneList) *Filter {
	return &Filter{genes: genes, logger: zap.NewNop()}
}

// SetLogger sets the logger for filter summary messages.
func (f *Filter) SetLogger(l *zap.Logger) {
	f.logger = l
}

// Run filters all calls. Caller-count and recurrence evidence is computed
// across the whole input, so the full slice is required up front.
func (f *Filter) Run(calls []tables.FusionCall) []Result {
	callerCount := make(map[string]map[string]bool) // sample+pair -> callers
	sampleCount := make(map[string]map[string]bool) // pair -> samples
	for i := range calls {
		c := &calls[i]
		key := c.Sample + "\x00" + c.Pair()
		if callerCount[key] == nil {
			callerCount[key] = make(map[string]bool)
		}
		callerCount[key][c.Caller] = true
		if sampleCount[c.Pair()] == nil {
			sampleCount[c.Pair()] = make(map[string]bool)
		}
		sampleCount[c.Pair()][c.Sample] = true
	}

	results := make([]Result, 0, len(calls))
	tally := make(map[Disposition]int)
	for i := range calls {
		c := &calls[i]
		d := f.classify(c,
			len(callerCount[c.Sample+"\x00"+c.Pair()]),
			len(sampleCount[c.Pair()]))
		tally[d]++
		results = append(results, Result{Call: c, Disposition: d})
	}

	f.logger.Info("filtered fusion calls",
		zap.Int("total", len(calls)),
		zap.Int("artifact", tally[DispositionArtifact]),
		zap.Int("low_support", tally[DispositionLowSupport]),
		zap.Int("putative_oncogenic", tally[DispositionPutativeOncogenic]),
		zap.Int("domain_lost", tally[DispositionDomainLost]),
		zap.Int("other", tally[DispositionOther]))

	return results
}

// classify applies the rule stages to one call. First match wins within
// each stage.
func (f *Filter) classify(c *tables.FusionCall, callers, samples int) Disposition {
	// Stage 1: artifacts.
	if c.ReadThrough || isArtifactFamily(c.Gene5) || isArtifactFamily(c.Gene3) {
		return DispositionArtifact
	}

	// Stage 2: evidence. A call is kept when reported by multiple callers,
	// when a single caller has enough read support, or when the partner
	// pair recurs across the cohort.
	supported := callers >= 2 ||
		(c.JunctionReads >= minJunctionReads && c.SpanningFragments >= minSpanningFragments) ||
		samples >= minRecurrentSamples
	if !supported {
		return DispositionLowSupport
	}

	// Stage 3: biological classification.
	if kinase, retained := f.kinasePartner(c); kinase != "" {
		if retained && c.InFrame() {
			return DispositionPutativeOncogenic
		}
		return DispositionDomainLost
	}
	if f.genes.IsOncogene(c.Gene5) || f.genes.IsOncogene(c.Gene3) ||
		f.genes.IsTSG(c.Gene5) || f.genes.IsTSG(c.Gene3) {
		if c.InFrame() {
			return DispositionPutativeOncogenic
		}
	}
	return DispositionOther
}

// kinasePartner returns the kinase partner gene (or "") and whether its
// kinase domain is annotated as retained.
func (f *Filter) kinasePartner(c *tables.FusionCall) (string, bool) {
	if f.genes.IsKinase(c.Gene5) {
		return c.Gene5, c.DomainsRetained5 == "yes"
	}
	if f.genes.IsKinase(c.Gene3) {
		return c.Gene3, c.DomainsRetained3 == "yes"
	}
	return "", false
}

func isArtifactFamily(gene string) bool {
	upper := strings.ToUpper(gene)
	for _, prefix := range artifactFamilies {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
