package tp53

import (
	"runtime"
	"sync"
)

// WorkItem holds one record queued for classification.
type WorkItem struct {
	Seq    int
	Record *SampleAlterationRecord
}

// WorkResult holds the classification output for one record.
type WorkResult struct {
	Seq    int
	Record *SampleAlterationRecord
	Label  Status
}

// ParallelClassify classifies work items using a pool of workers.
// Classify is pure, so records may be classified concurrently without
// coordination. Results arrive on the returned channel in completion
// order; use OrderedCollect to consume them in sequence order.
// If workers is 0, runtime.NumCPU() is used.
func ParallelClassify(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:    item.Seq,
					Record: item.Record,
					Label:  Classify(item.Record),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until the next expected sequence number
// arrives. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// ClassifyAll classifies records concurrently and returns labels in the
// same order as the input slice.
func ClassifyAll(records []*SampleAlterationRecord, workers int) []Status {
	items := make(chan WorkItem, len(records))
	for i, rec := range records {
		items <- WorkItem{Seq: i, Record: rec}
	}
	close(items)

	labels := make([]Status, len(records))
	_ = OrderedCollect(ParallelClassify(items, workers), func(r WorkResult) error {
		labels[r.Seq] = r.Label
		return nil
	})
	return labels
}
