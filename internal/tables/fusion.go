package tables

import (
	"strconv"
	"strings"
)

// FusionCall is one raw gene-fusion call from a fusion caller.
type FusionCall struct {
	Sample            string
	Gene5             string // 5' partner
	Gene3             string // 3' partner
	FusionName        string // e.g. "EWSR1--FLI1"
	Caller            string // "arriba", "starfusion", ...
	JunctionReads     int
	SpanningFragments int
	Frame             string // "in-frame", "frameshift", "other"
	DomainsRetained5  string // "yes", "no", "partial", "" when unannotated
	DomainsRetained3  string
	ReadThrough       bool
}

// InFrame reports whether the fused reading frame is preserved.
func (f *FusionCall) InFrame() bool {
	return strings.EqualFold(f.Frame, "in-frame") || strings.EqualFold(f.Frame, "inframe")
}

// Involves reports whether either partner is the given gene symbol.
func (f *FusionCall) Involves(gene string) bool {
	return strings.EqualFold(f.Gene5, gene) || strings.EqualFold(f.Gene3, gene)
}

// Pair returns the partner pair in a caller-independent orientation-preserving form.
func (f *FusionCall) Pair() string {
	return f.Gene5 + "--" + f.Gene3
}

// Fusion table column names.
const (
	ColFusionName        = "fusion_name"
	ColGene5             = "gene1"
	ColGene3             = "gene2"
	ColCaller            = "caller"
	ColJunctionReads     = "junction_reads"
	ColSpanningFragments = "spanning_fragments"
	ColFrame             = "reading_frame"
	ColDomainsRetained5  = "domains_retained_gene1"
	ColDomainsRetained3  = "domains_retained_gene2"
	ColAnnots            = "annots"
)

// LoadFusionCalls loads a raw fusion call table.
func LoadFusionCalls(path string) ([]FusionCall, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	idx, err := r.Require(ColBiospecimenID, ColGene5, ColGene3, ColCaller)
	if err != nil {
		return nil, err
	}
	nameIdx := r.Optional(ColFusionName)
	jrIdx := r.Optional(ColJunctionReads)
	sfIdx := r.Optional(ColSpanningFragments)
	frameIdx := r.Optional(ColFrame)
	dom5Idx := r.Optional(ColDomainsRetained5)
	dom3Idx := r.Optional(ColDomainsRetained3)
	annotIdx := r.Optional(ColAnnots)

	var calls []FusionCall
	for {
		fields, err := r.Next()
		if err != nil {
			return nil, err
		}
		if fields == nil {
			break
		}

		call := FusionCall{
			Sample: strings.TrimSpace(fields[idx[0]]),
			Gene5:  strings.TrimSpace(fields[idx[1]]),
			Gene3:  strings.TrimSpace(fields[idx[2]]),
			Caller: strings.ToLower(strings.TrimSpace(fields[idx[3]])),
		}
		if call.Sample == "" || call.Gene5 == "" || call.Gene3 == "" {
			continue
		}
		if nameIdx >= 0 && fields[nameIdx] != "" {
			call.FusionName = strings.TrimSpace(fields[nameIdx])
		} else {
			call.FusionName = call.Pair()
		}
		if call.JunctionReads, err = readCount(r, fields, jrIdx, ColJunctionReads); err != nil {
			return nil, err
		}
		if call.SpanningFragments, err = readCount(r, fields, sfIdx, ColSpanningFragments); err != nil {
			return nil, err
		}
		if frameIdx >= 0 {
			call.Frame = strings.ToLower(strings.TrimSpace(fields[frameIdx]))
		}
		if dom5Idx >= 0 {
			call.DomainsRetained5 = strings.ToLower(strings.TrimSpace(fields[dom5Idx]))
		}
		if dom3Idx >= 0 {
			call.DomainsRetained3 = strings.ToLower(strings.TrimSpace(fields[dom3Idx]))
		}
		if annotIdx >= 0 {
			call.ReadThrough = strings.Contains(strings.ToUpper(fields[annotIdx]), "READTHROUGH")
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// CountFusionsForGene counts fusion calls involving the gene per sample.
func CountFusionsForGene(calls []FusionCall, gene string) map[string]int {
	counts := make(map[string]int)
	for i := range calls {
		if calls[i].Involves(gene) {
			counts[calls[i].Sample]++
		}
	}
	return counts
}

func readCount(r *Reader, fields []string, idx int, col string) (int, error) {
	if idx < 0 {
		return 0, nil
	}
	raw := strings.TrimSpace(fields[idx])
	if raw == "" || raw == "NA" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, r.errf("invalid %s %q: %v", col, raw, err)
	}
	if n < 0 {
		return 0, r.errf("negative %s %d", col, n)
	}
	return n, nil
}
