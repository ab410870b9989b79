package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpbta/pbta-tools/internal/tp53"
)

func TestStatusWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewStatusWriter(&buf, "TP53")

	require.NoError(t, w.WriteHeader())

	score := 0.8765
	rec := &tp53.SampleAlterationRecord{
		SampleID:        "BS_A",
		SNVIndelCount:   1,
		CNVLossCount:    1,
		HotspotFlag:     true,
		Predisposition:  "Li-Fraumeni syndrome",
		ExpressionScore: &score,
	}
	require.NoError(t, w.Write(rec, tp53.StatusLoss))
	require.NoError(t, w.Write(&tp53.SampleAlterationRecord{SampleID: "BS_B"}, tp53.StatusOther))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"sample_id\tgene\tstatus\tsnv_indel_count\tcnv_loss_count\tsv_count\tfusion_count\thotspot\tactivating\tpredisposition\texpression_score",
		lines[0])
	assert.Equal(t,
		"BS_A\tTP53\tloss\t1\t1\t0\t0\tYES\tNO\tLi-Fraumeni syndrome\t0.8765",
		lines[1])

	// Absent optionals become "-".
	fields := strings.Split(lines[2], "\t")
	assert.Equal(t, "-", fields[9])
	assert.Equal(t, "-", fields[10])
}

func TestStatusWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	w := NewStatusWriter(&buf, "TP53")
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(&tp53.SampleAlterationRecord{SampleID: "BS_A", ActivatingFlag: true}, tp53.StatusActivated))
	require.NoError(t, w.Write(&tp53.SampleAlterationRecord{SampleID: "BS_B"}, tp53.StatusOther))

	var summary bytes.Buffer
	w.WriteSummary(&summary)

	out := summary.String()
	assert.Contains(t, out, "Classified 2 samples for TP53")
	assert.Contains(t, out, "activated")
	assert.Contains(t, out, "other")
}
