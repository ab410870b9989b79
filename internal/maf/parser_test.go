package maf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMAF = `#version 2.4
Hugo_Symbol	Chromosome	Start_Position	Variant_Classification	HGVSp_Short	Protein_position	Tumor_Sample_Barcode
TP53	17	7674220	Missense_Mutation	p.R175H	175/393	BS_A
TP53	17	7673802	Silent	p.T125T	125/393	BS_A
TP53	17	7674872	Nonsense_Mutation	p.R196*	196/393	BS_B
KRAS	12	25245351	Missense_Mutation	p.G12C	12/189	BS_B
TP53	17	7675088	Intron			BS_C
`

func TestParser_ParseCalls(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader(sampleMAF))
	require.NoError(t, err)

	cols := p.Columns()
	assert.Equal(t, 0, cols.HugoSymbol)
	assert.Equal(t, 3, cols.VariantClassification)
	assert.Equal(t, 6, cols.TumorSampleBarcode)

	call, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.Equal(t, "BS_A", call.Sample)
	assert.Equal(t, "TP53", call.Hugo)
	assert.Equal(t, "17", call.Chrom)
	assert.Equal(t, int64(7674220), call.Start)
	assert.Equal(t, "p.R175H", call.HGVSpShort)
	assert.Equal(t, 175, call.ProteinPos)
	assert.True(t, call.Qualifies())

	call, err = p.Next()
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.Equal(t, "Silent", call.Classification)
	assert.False(t, call.Qualifies())
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("Hugo_Symbol\tVariant_Classification\nTP53\tMissense_Mutation\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tumor_Sample_Barcode")
}

func TestParser_EmptyInput(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader(""))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "no header")
}

func TestReadGeneCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consensus.maf")
	require.NoError(t, os.WriteFile(path, []byte(sampleMAF), 0644))

	calls, err := ReadGeneCalls(path, "TP53")
	require.NoError(t, err)

	// BS_A: one missense (the silent call is excluded).
	// BS_B: one nonsense (KRAS is a different gene).
	// BS_C: intronic call excluded entirely.
	require.Len(t, calls, 2)
	assert.Len(t, calls["BS_A"], 1)
	assert.Len(t, calls["BS_B"], 1)
	assert.NotContains(t, calls, "BS_C")
}

func TestQualifies_SilentSet(t *testing.T) {
	excluded := []string{"Silent", "Intron", "3'UTR", "5'UTR", "3'Flank", "5'Flank", "IGR", "RNA", "Splice_Region"}
	for _, cls := range excluded {
		c := SnvCall{Classification: cls}
		assert.False(t, c.Qualifies(), cls)
	}

	included := []string{"Missense_Mutation", "Nonsense_Mutation", "Frame_Shift_Del", "Frame_Shift_Ins", "Splice_Site", "In_Frame_Del"}
	for _, cls := range included {
		c := SnvCall{Classification: cls}
		assert.True(t, c.Qualifies(), cls)
	}
}

func TestProteinPosition(t *testing.T) {
	tests := []struct {
		raw   string
		hgvsp string
		want  int
	}{
		{"175/393", "", 175},
		{"175-176/393", "", 175},
		{".", "p.R175H", 175},
		{"", "p.G12C", 12},
		{"", "p.*389Lext*?", 389},
		{"", "", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, proteinPosition(tt.raw, tt.hgvsp), "%q/%q", tt.raw, tt.hgvsp)
	}
}
