package tables

import (
	"strconv"
	"strings"
)

// CNVCall is one copy-number segment call overlapping a gene.
type CNVCall struct {
	Sample     string
	Gene       string
	Status     string // "loss", "deep deletion", "gain", "amplification", "neutral"
	CopyNumber int
}

// IsLoss reports whether the call indicates loss of genetic material.
func (c *CNVCall) IsLoss() bool {
	switch strings.ToLower(c.Status) {
	case "loss", "deep deletion":
		return true
	}
	return false
}

// CNV table column names.
const (
	ColBiospecimenID = "biospecimen_id"
	ColGene          = "gene"
	ColStatus        = "status"
	ColCopyNumber    = "copy_number"
)

// LoadCNVLosses loads a CNV call table and returns only loss-type calls,
// grouped by sample. Calls for genes other than gene are skipped when gene
// is non-empty.
func LoadCNVLosses(path, gene string) (map[string][]CNVCall, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require(ColBiospecimenID, ColGene, ColStatus)
	if err != nil {
		return nil, err
	}
	cnIdx := r.Optional(ColCopyNumber)

	calls := make(map[string][]CNVCall)
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		call := CNVCall{
			Sample: strings.TrimSpace(fields[idx[0]]),
			Gene:   strings.TrimSpace(fields[idx[1]]),
			Status: strings.TrimSpace(fields[idx[2]]),
		}
		if call.Sample == "" {
			continue
		}
		if gene != "" && !strings.EqualFold(call.Gene, gene) {
			continue
		}
		if cnIdx >= 0 && fields[cnIdx] != "" && fields[cnIdx] != "NA" {
			cn, err := strconv.Atoi(fields[cnIdx])
			if err != nil {
				return nil, r.errf("invalid copy_number %q: %v", fields[cnIdx], err)
			}
			if cn < 0 {
				return nil, r.errf("negative copy_number %d", cn)
			}
			call.CopyNumber = cn
		}
		if !call.IsLoss() {
			continue
		}
		calls[call.Sample] = append(calls[call.Sample], call)
	}
	return calls, nil
}

// CountLosses returns the number of loss calls per sample.
func CountLosses(calls map[string][]CNVCall) map[string]int {
	counts := make(map[string]int, len(calls))
	for sample, cc := range calls {
		counts[sample] = len(cc)
	}
	return counts
}
