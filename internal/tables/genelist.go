package tables

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// GeneAnnotation holds gene-level classification from a cancer gene list.
type GeneAnnotation struct {
	HugoSymbol string
	GeneType   string // "ONCOGENE", "TSG", or "ONCOGENE,TSG"
	IsKinase   bool
}

// GeneList maps Hugo Symbol to its annotation.
type GeneList map[string]*GeneAnnotation

// IsOncogene reports whether the gene is annotated as an oncogene.
func (g GeneList) IsOncogene(gene string) bool {
	a, ok := g[gene]
	return ok && strings.Contains(a.GeneType, "ONCOGENE")
}

// IsTSG reports whether the gene is annotated as a tumor suppressor.
func (g GeneList) IsTSG(gene string) bool {
	a, ok := g[gene]
	return ok && strings.Contains(a.GeneType, "TSG")
}

// IsKinase reports whether the gene is annotated as a kinase.
func (g GeneList) IsKinase(gene string) bool {
	a, ok := g[gene]
	return ok && a.IsKinase
}

// LoadGeneList loads a cancer gene list TSV.
// The header must contain "Hugo Symbol" and "Gene Type"; an optional
// "Is Kinase" column marks kinase genes with "Yes".
func LoadGeneList(path string) (GeneList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, fmt.Errorf("gene list: empty file")
	}
	header := strings.Split(scanner.Text(), "\t")

	hugoIdx, geneTypeIdx, kinaseIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Hugo Symbol":
			hugoIdx = i
		case "Gene Type":
			geneTypeIdx = i
		case "Is Kinase":
			kinaseIdx = i
		}
	}
	if hugoIdx < 0 {
		return nil, fmt.Errorf("gene list: missing 'Hugo Symbol' column")
	}
	if geneTypeIdx < 0 {
		return nil, fmt.Errorf("gene list: missing 'Gene Type' column")
	}

	gl := make(GeneList)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= hugoIdx || len(fields) <= geneTypeIdx {
			continue
		}
		hugo := strings.TrimSpace(fields[hugoIdx])
		if hugo == "" {
			continue
		}
		a := &GeneAnnotation{
			HugoSymbol: hugo,
			GeneType:   strings.TrimSpace(fields[geneTypeIdx]),
		}
		if kinaseIdx >= 0 && len(fields) > kinaseIdx {
			a.IsKinase = strings.EqualFold(strings.TrimSpace(fields[kinaseIdx]), "Yes")
		}
		gl[hugo] = a
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading gene list: %w", err)
	}

	return gl, nil
}
