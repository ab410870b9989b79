package tp53

// Status is the functional gene status call for one sample.
type Status string

const (
	StatusActivated Status = "activated"
	StatusLoss      Status = "loss"
	StatusOther     Status = "other"
)

// inactivationThreshold is the expression-classifier cutoff above which a
// sample's RNA profile is treated as evidence of functional inactivation.
const inactivationThreshold = 0.5

// Classify maps a sample's joined alteration evidence to a status label.
// It is a pure total function: every well-formed record yields exactly one
// label. Rules are evaluated in order and the first match wins, so
// activating evidence takes precedence over any loss-style evidence.
func Classify(r *SampleAlterationRecord) Status {
	if r.ActivatingFlag {
		return StatusActivated
	}

	lfs := r.Predisposition == PredispositionLFS

	switch {
	case r.HotspotFlag:
		return StatusLoss
	case r.SNVIndelCount >= 1 && r.HasStructuralEvidence():
		// Biallelic-style evidence: a point event plus a structural or
		// copy-number event.
		return StatusLoss
	case r.SNVIndelCount > 1:
		return StatusLoss
	case r.SNVIndelCount >= 1 && lfs:
		return StatusLoss
	case r.HasStructuralEvidence() && lfs:
		return StatusLoss
	case r.scoreAbove(inactivationThreshold) && lfs:
		return StatusLoss
	case r.scoreAbove(inactivationThreshold) && r.HasAnyAlteration():
		// Looser than the preceding rules: a high classifier score plus any
		// single alteration call of any type. Kept as the study applied it;
		// flagged for domain-expert review rather than tightened here.
		return StatusLoss
	}

	return StatusOther
}

// PredispositionLFS is the germline syndrome label that contributes loss
// evidence for this gene.
const PredispositionLFS = "Li-Fraumeni syndrome"
