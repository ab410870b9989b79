package tables

import "strings"

// SVCall is one structural-variant call overlapping a gene.
type SVCall struct {
	Sample string
	Gene   string
	Type   string // "DEL", "DUP", "INV", "BND", "INS"
}

// SV table column names.
const (
	ColSVType = "sv_type"
)

// LoadSVCalls loads a structural-variant overlap table grouped by sample.
// Calls for genes other than gene are skipped when gene is non-empty.
func LoadSVCalls(path, gene string) (map[string][]SVCall, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require(ColBiospecimenID, ColGene, ColSVType)
	if err != nil {
		return nil, err
	}

	calls := make(map[string][]SVCall)
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		call := SVCall{
			Sample: strings.TrimSpace(fields[idx[0]]),
			Gene:   strings.TrimSpace(fields[idx[1]]),
			Type:   strings.ToUpper(strings.TrimSpace(fields[idx[2]])),
		}
		if call.Sample == "" {
			continue
		}
		if gene != "" && !strings.EqualFold(call.Gene, gene) {
			continue
		}
		calls[call.Sample] = append(calls[call.Sample], call)
	}
	return calls, nil
}
