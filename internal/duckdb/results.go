package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/openpbta/pbta-tools/internal/tp53"
)

// StatusCall pairs a classified record with its run and gene context.
type StatusCall struct {
	RunID  string
	Gene   string
	Record *tp53.SampleAlterationRecord
	Label  tp53.Status
}

// callKey is the composite primary key used to deduplicate before writing.
type callKey struct {
	runID, sampleID, gene string
}

// WriteStatusCalls batch-inserts status calls using the Appender API.
// Duplicate (run_id, sample_id, gene) entries are deduplicated before
// writing.
func (s *Store) WriteStatusCalls(calls []StatusCall) error {
	if len(calls) == 0 {
		return nil
	}

	seen := make(map[callKey]bool, len(calls))
	deduped := make([]StatusCall, 0, len(calls))
	for _, c := range calls {
		k := callKey{c.RunID, c.Record.SampleID, c.Gene}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, c)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "status_calls")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, c := range deduped {
		r := c.Record
		var score any
		if r.ExpressionScore != nil {
			score = *r.ExpressionScore
		}
		if err := appender.AppendRow(
			c.RunID, r.SampleID, c.Gene, string(c.Label),
			int32(r.SNVIndelCount), int32(r.CNVLossCount),
			int32(r.SVCount), int32(r.FusionCount),
			r.HotspotFlag, r.ActivatingFlag,
			r.Predisposition, score,
		); err != nil {
			return fmt.Errorf("append status call: %w", err)
		}
	}

	return appender.Flush()
}

// LookupSample returns the stored status calls for a sample across runs.
func (s *Store) LookupSample(sampleID string) ([]StatusCall, error) {
	rows, err := s.db.Query(`SELECT
		run_id, gene, label,
		snv_indel_count, cnv_loss_count, sv_count, fusion_count,
		hotspot, activating, predisposition, expression_score
		FROM status_calls
		WHERE sample_id = ?
		ORDER BY run_id`, sampleID)
	if err != nil {
		return nil, fmt.Errorf("query sample: %w", err)
	}
	defer rows.Close()

	var calls []StatusCall
	for rows.Next() {
		rec := &tp53.SampleAlterationRecord{SampleID: sampleID}
		var call StatusCall
		var label string
		var score sql.NullFloat64
		if err := rows.Scan(
			&call.RunID, &call.Gene, &label,
			&rec.SNVIndelCount, &rec.CNVLossCount, &rec.SVCount, &rec.FusionCount,
			&rec.HotspotFlag, &rec.ActivatingFlag, &rec.Predisposition, &score,
		); err != nil {
			return nil, fmt.Errorf("scan status call: %w", err)
		}
		if score.Valid {
			v := score.Float64
			rec.ExpressionScore = &v
		}
		call.Record = rec
		call.Label = tp53.Status(label)
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status calls: %w", err)
	}
	return calls, nil
}

// CountByLabel returns the number of samples per status label in a run.
func (s *Store) CountByLabel(runID string) (map[tp53.Status]int, error) {
	rows, err := s.db.Query(
		`SELECT label, COUNT(*) FROM status_calls WHERE run_id = ? GROUP BY label`, runID)
	if err != nil {
		return nil, fmt.Errorf("query label counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[tp53.Status]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scan label count: %w", err)
		}
		counts[tp53.Status(label)] = n
	}
	return counts, rows.Err()
}
