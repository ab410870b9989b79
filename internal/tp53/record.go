// Package tp53 builds per-sample alteration evidence records for a gene of
// interest and classifies each sample's functional gene status.
package tp53

// SampleAlterationRecord holds the joined alteration evidence for one
// biological sample. Records are immutable once built.
type SampleAlterationRecord struct {
	SampleID       string
	SNVIndelCount  int    // distinct qualifying SNV/indel calls in the gene
	CNVLossCount   int    // distinct copy-number-loss segments overlapping the gene
	SVCount        int    // distinct structural-variant calls overlapping the gene
	FusionCount    int    // distinct fusion calls involving the gene
	HotspotFlag    bool   // any SNV/indel at a curated hotspot codon
	ActivatingFlag bool   // any SNV/indel at a known activating codon
	Predisposition string // predisposition syndrome label, "" when none

	// ExpressionScore is the external classifier's inactivation probability
	// in [0,1]; nil when no matched RNA sample exists.
	ExpressionScore *float64
}

// HasStructuralEvidence reports whether any copy-number, structural-variant,
// or fusion call overlaps the gene.
func (r *SampleAlterationRecord) HasStructuralEvidence() bool {
	return r.CNVLossCount >= 1 || r.SVCount >= 1 || r.FusionCount >= 1
}

// HasAnyAlteration reports whether any alteration call of any type exists.
func (r *SampleAlterationRecord) HasAnyAlteration() bool {
	return r.SNVIndelCount >= 1 || r.HasStructuralEvidence()
}

// scoreAbove reports whether the expression score exists and exceeds the
// threshold. A nil score never satisfies the comparison.
func (r *SampleAlterationRecord) scoreAbove(threshold float64) bool {
	return r.ExpressionScore != nil && *r.ExpressionScore > threshold
}
