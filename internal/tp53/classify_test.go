package tp53

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoreOf(v float64) *float64 {
	return &v
}

func TestClassify_ActivatingPrecedence(t *testing.T) {
	// Activating evidence wins regardless of any loss-style evidence.
	rec := &SampleAlterationRecord{
		SampleID:        "BS_0001",
		SNVIndelCount:   3,
		CNVLossCount:    2,
		SVCount:         1,
		FusionCount:     1,
		HotspotFlag:     true,
		ActivatingFlag:  true,
		Predisposition:  PredispositionLFS,
		ExpressionScore: scoreOf(0.99),
	}
	assert.Equal(t, StatusActivated, Classify(rec))
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name string
		rec  SampleAlterationRecord
		want Status
	}{
		{
			name: "hotspot alone",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, HotspotFlag: true},
			want: StatusLoss,
		},
		{
			name: "biallelic snv plus cnv loss",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, CNVLossCount: 1},
			want: StatusLoss,
		},
		{
			name: "biallelic snv plus sv",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, SVCount: 1},
			want: StatusLoss,
		},
		{
			name: "biallelic snv plus fusion",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, FusionCount: 1},
			want: StatusLoss,
		},
		{
			name: "multiple snvs",
			rec:  SampleAlterationRecord{SNVIndelCount: 2},
			want: StatusLoss,
		},
		{
			name: "single snv plus LFS",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, Predisposition: PredispositionLFS},
			want: StatusLoss,
		},
		{
			name: "cnv loss plus LFS",
			rec:  SampleAlterationRecord{CNVLossCount: 1, Predisposition: PredispositionLFS},
			want: StatusLoss,
		},
		{
			name: "high score plus LFS without alterations",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.9), Predisposition: PredispositionLFS},
			want: StatusLoss,
		},
		{
			name: "high score plus single cnv loss",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.6), CNVLossCount: 1},
			want: StatusLoss,
		},
		{
			name: "high score plus single snv",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.51), SNVIndelCount: 1},
			want: StatusLoss,
		},
		{
			name: "no evidence",
			rec:  SampleAlterationRecord{},
			want: StatusOther,
		},
		{
			name: "sub-threshold score plus single snv",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.4), SNVIndelCount: 1},
			want: StatusOther,
		},
		{
			name: "score exactly at threshold does not count",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.5), CNVLossCount: 1},
			want: StatusOther,
		},
		{
			name: "single snv alone",
			rec:  SampleAlterationRecord{SNVIndelCount: 1},
			want: StatusOther,
		},
		{
			name: "cnv loss alone",
			rec:  SampleAlterationRecord{CNVLossCount: 1},
			want: StatusOther,
		},
		{
			name: "high score alone",
			rec:  SampleAlterationRecord{ExpressionScore: scoreOf(0.95)},
			want: StatusOther,
		},
		{
			name: "other syndrome does not substitute for LFS",
			rec:  SampleAlterationRecord{SNVIndelCount: 1, Predisposition: "Neurofibromatosis type 1"},
			want: StatusOther,
		},
		{
			name: "nil score never satisfies score rules",
			rec:  SampleAlterationRecord{CNVLossCount: 1, Predisposition: "Other syndrome"},
			want: StatusOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.rec))
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	rec := &SampleAlterationRecord{SNVIndelCount: 1, CNVLossCount: 1, ExpressionScore: scoreOf(0.7)}
	first := Classify(rec)
	second := Classify(rec)
	assert.Equal(t, first, second)
	assert.Equal(t, StatusLoss, first)
}
