package tp53

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// HotspotSet holds curated hotspot codon positions per gene.
type HotspotSet map[string]map[int]bool

// Contains reports whether the codon position is a hotspot for the gene.
func (h HotspotSet) Contains(gene string, pos int) bool {
	if pos <= 0 {
		return false
	}
	return h[gene][pos]
}

// Add records a hotspot codon for a gene.
func (h HotspotSet) Add(gene string, pos int) {
	codons, ok := h[gene]
	if !ok {
		codons = make(map[int]bool)
		h[gene] = codons
	}
	codons[pos] = true
}

// LoadHotspots loads a cancer-hotspots TSV with columns "Hugo_Symbol",
// "Codon" (e.g. "R175") and "Tumor_Count". Codons seen in fewer than
// minSamples tumors are skipped; pass 0 to keep all.
func LoadHotspots(path string, minSamples int) (HotspotSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hotspots: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("hotspots: empty file")
	}
	header := strings.Split(scanner.Text(), "\t")

	hugoIdx, codonIdx, countIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Hugo_Symbol":
			hugoIdx = i
		case "Codon":
			codonIdx = i
		case "Tumor_Count":
			countIdx = i
		}
	}
	if hugoIdx < 0 || codonIdx < 0 {
		return nil, fmt.Errorf("hotspots: missing Hugo_Symbol or Codon column")
	}

	hs := make(HotspotSet)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= hugoIdx || len(fields) <= codonIdx {
			continue
		}
		gene := strings.TrimSpace(fields[hugoIdx])
		pos := codonPosition(fields[codonIdx])
		if gene == "" || pos <= 0 {
			continue
		}
		if countIdx >= 0 && len(fields) > countIdx && minSamples > 0 {
			count, err := strconv.Atoi(strings.TrimSpace(fields[countIdx]))
			if err == nil && count < minSamples {
				continue
			}
		}
		hs.Add(gene, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hotspots: %w", err)
	}

	return hs, nil
}

// codonPosition parses the numeric position from a codon label like "R175".
func codonPosition(raw string) int {
	s := strings.TrimSpace(raw)
	start := 0
	for start < len(s) && (s[start] < '0' || s[start] > '9') {
		start++
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if start == end {
		return 0
	}
	pos, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0
	}
	return pos
}

// ActivatingSet holds protein changes that are empirically gain-of-function
// rather than loss-of-function.
type ActivatingSet map[string]bool

// DefaultActivatingChanges returns the fixed activating substitution set
// used for TP53 in this study.
func DefaultActivatingChanges() ActivatingSet {
	return ActivatingSet{
		"p.R273C": true,
		"p.R248W": true,
	}
}

// Contains reports whether the protein change is in the activating set.
func (a ActivatingSet) Contains(hgvspShort string) bool {
	return hgvspShort != "" && a[hgvspShort]
}
