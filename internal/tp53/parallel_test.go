package tp53

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAll_PreservesOrder(t *testing.T) {
	var records []*SampleAlterationRecord
	for i := 0; i < 200; i++ {
		rec := &SampleAlterationRecord{SampleID: fmt.Sprintf("BS_%04d", i)}
		// Every third record gets biallelic loss evidence.
		if i%3 == 0 {
			rec.SNVIndelCount = 1
			rec.CNVLossCount = 1
		}
		records = append(records, rec)
	}

	labels := ClassifyAll(records, 8)
	require.Len(t, labels, len(records))

	for i, label := range labels {
		if i%3 == 0 {
			assert.Equal(t, StatusLoss, label, "record %d", i)
		} else {
			assert.Equal(t, StatusOther, label, "record %d", i)
		}
	}
}

func TestOrderedCollect_ReordersResults(t *testing.T) {
	results := make(chan WorkResult, 3)
	results <- WorkResult{Seq: 2, Label: StatusOther}
	results <- WorkResult{Seq: 0, Label: StatusLoss}
	results <- WorkResult{Seq: 1, Label: StatusActivated}
	close(results)

	var got []Status
	err := OrderedCollect(results, func(r WorkResult) error {
		got = append(got, r.Label)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusLoss, StatusActivated, StatusOther}, got)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0}
	results <- WorkResult{Seq: 1}
	close(results)

	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
