package tp53

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpbta/pbta-tools/internal/maf"
	"github.com/openpbta/pbta-tools/internal/tables"
)

func TestBuilder_JoinsEvidenceBySample(t *testing.T) {
	hs := make(HotspotSet)
	hs.Add("TP53", 175)

	b := NewBuilder("TP53")
	b.SetHotspots(hs)

	ev := &Evidence{
		SNVCalls: map[string][]*maf.SnvCall{
			"BS_A": {
				{Sample: "BS_A", Hugo: "TP53", Classification: "Missense_Mutation", HGVSpShort: "p.R175H", ProteinPos: 175},
			},
			"BS_B": {
				{Sample: "BS_B", Hugo: "TP53", Classification: "Missense_Mutation", HGVSpShort: "p.R273C", ProteinPos: 273},
			},
		},
		CNVLosses: map[string][]tables.CNVCall{
			"BS_C": {{Sample: "BS_C", Gene: "TP53", Status: "loss"}},
		},
		SVCalls:     map[string][]tables.SVCall{},
		FusionCount: map[string]int{"BS_C": 1},
		Histologies: map[string]tables.Histology{
			"BS_A": {Sample: "BS_A"},
			"BS_C": {Sample: "BS_C", Predisposition: "Li-Fraumeni syndrome"},
			"BS_D": {Sample: "BS_D"},
		},
		Scores: map[string]float64{"BS_A": 0.92},
	}

	records := b.Build(ev)
	require.Len(t, records, 4)

	// Sorted by sample id.
	assert.Equal(t, "BS_A", records[0].SampleID)
	assert.Equal(t, "BS_B", records[1].SampleID)
	assert.Equal(t, "BS_C", records[2].SampleID)
	assert.Equal(t, "BS_D", records[3].SampleID)

	a := records[0]
	assert.Equal(t, 1, a.SNVIndelCount)
	assert.True(t, a.HotspotFlag, "R175 is a hotspot codon")
	assert.False(t, a.ActivatingFlag)
	require.NotNil(t, a.ExpressionScore)
	assert.InDelta(t, 0.92, *a.ExpressionScore, 1e-9)

	bRec := records[1]
	assert.True(t, bRec.ActivatingFlag, "R273C is an activating substitution")
	assert.False(t, bRec.HotspotFlag)
	assert.Nil(t, bRec.ExpressionScore)

	c := records[2]
	assert.Equal(t, 0, c.SNVIndelCount)
	assert.Equal(t, 1, c.CNVLossCount)
	assert.Equal(t, 1, c.FusionCount)
	assert.Equal(t, "Li-Fraumeni syndrome", c.Predisposition)

	d := records[3]
	assert.Equal(t, 0, d.SNVIndelCount)
	assert.Equal(t, StatusOther, Classify(d))
}

func TestBuilder_FlagsRequireSNVCalls(t *testing.T) {
	// The flags are derived only from SNV/indel calls, so a sample with no
	// calls can never carry them.
	b := NewBuilder("TP53")
	hs := make(HotspotSet)
	hs.Add("TP53", 175)
	b.SetHotspots(hs)

	ev := &Evidence{
		SNVCalls:    map[string][]*maf.SnvCall{},
		CNVLosses:   map[string][]tables.CNVCall{"BS_X": {{Sample: "BS_X", Gene: "TP53", Status: "loss"}}},
		SVCalls:     map[string][]tables.SVCall{},
		FusionCount: map[string]int{},
		Histologies: map[string]tables.Histology{},
		Scores:      map[string]float64{},
	}

	records := b.Build(ev)
	require.Len(t, records, 1)
	assert.False(t, records[0].HotspotFlag)
	assert.False(t, records[0].ActivatingFlag)
}
