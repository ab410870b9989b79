package duckdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpbta/pbta-tools/internal/tp53"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndLookupStatusCalls(t *testing.T) {
	s := openInMemory(t)

	score := 0.91
	calls := []StatusCall{
		{
			RunID: "run1", Gene: "TP53",
			Record: &tp53.SampleAlterationRecord{
				SampleID:        "BS_A",
				SNVIndelCount:   1,
				CNVLossCount:    1,
				HotspotFlag:     true,
				Predisposition:  "Li-Fraumeni syndrome",
				ExpressionScore: &score,
			},
			Label: tp53.StatusLoss,
		},
		{
			RunID: "run1", Gene: "TP53",
			Record: &tp53.SampleAlterationRecord{SampleID: "BS_B"},
			Label:  tp53.StatusOther,
		},
		// Duplicate primary key, dropped before writing.
		{
			RunID: "run1", Gene: "TP53",
			Record: &tp53.SampleAlterationRecord{SampleID: "BS_A"},
			Label:  tp53.StatusOther,
		},
	}

	require.NoError(t, s.WriteStatusCalls(calls))

	got, err := s.LookupSample("BS_A")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "run1", got[0].RunID)
	assert.Equal(t, tp53.StatusLoss, got[0].Label)
	assert.Equal(t, 1, got[0].Record.SNVIndelCount)
	assert.True(t, got[0].Record.HotspotFlag)
	require.NotNil(t, got[0].Record.ExpressionScore)
	assert.InDelta(t, 0.91, *got[0].Record.ExpressionScore, 1e-9)

	missing, err := s.LookupSample("BS_Z")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestNilScoreRoundTrips(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStatusCalls([]StatusCall{{
		RunID: "run1", Gene: "TP53",
		Record: &tp53.SampleAlterationRecord{SampleID: "BS_A"},
		Label:  tp53.StatusOther,
	}}))

	got, err := s.LookupSample("BS_A")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Record.ExpressionScore)
}

func TestCountByLabel(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteStatusCalls([]StatusCall{
		{RunID: "run1", Gene: "TP53", Record: &tp53.SampleAlterationRecord{SampleID: "BS_A"}, Label: tp53.StatusLoss},
		{RunID: "run1", Gene: "TP53", Record: &tp53.SampleAlterationRecord{SampleID: "BS_B"}, Label: tp53.StatusLoss},
		{RunID: "run1", Gene: "TP53", Record: &tp53.SampleAlterationRecord{SampleID: "BS_C"}, Label: tp53.StatusOther},
		{RunID: "run2", Gene: "TP53", Record: &tp53.SampleAlterationRecord{SampleID: "BS_A"}, Label: tp53.StatusOther},
	}))

	counts, err := s.CountByLabel("run1")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[tp53.StatusLoss])
	assert.Equal(t, 1, counts[tp53.StatusOther])
	assert.Equal(t, 0, counts[tp53.StatusActivated])
}

func TestRecordAndGetRun(t *testing.T) {
	s := openInMemory(t)

	info := RunInfo{
		RunID:       "run1",
		ToolVersion: "dev",
		Gene:        "TP53",
		MAFPath:     "consensus.maf.gz",
		SampleCount: 42,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.RecordRun(info))

	got, err := s.GetRun("run1")
	require.NoError(t, err)
	assert.Equal(t, info.Gene, got.Gene)
	assert.Equal(t, info.SampleCount, got.SampleCount)
	assert.Equal(t, info.MAFPath, got.MAFPath)

	_, err = s.GetRun("nope")
	assert.Error(t, err)
}

func TestWriteStatusCalls_Empty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.WriteStatusCalls(nil))
}
