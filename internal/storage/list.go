package storage

import (
	"database/sql"
	"time"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// ListRuns returns a lightweight list of runs with verdict counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.ir_version, r.overall,
		       (SELECT COUNT(1) FROM verdicts v WHERE v.run_id = r.id) AS verdicts,
		       (SELECT COUNT(1) FROM verdicts v WHERE v.run_id = r.id AND v.passed = 0) AS failed
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.IRVersion, &rr.Overall, &rr.Verdicts, &rr.Failed); err != nil {
			return nil, err
		}
		// RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListVerdicts returns a run's verdicts at or above a minimum
// severity, failures first.
func (db *DB) ListVerdicts(runID, minSeverity string) ([]ir.Verdict, error) {
	const q = `
		SELECT scene, element_id, rule_id, category, severity, passed, message
		  FROM verdicts
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		 ORDER BY
		       passed,
		       (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END) DESC,
		       rule_id, scene, element_id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Verdict
	for rows.Next() {
		var v ir.Verdict
		var cat, sev string
		var passed int
		if err := rows.Scan(&v.Scene, &v.ElementID, &v.RuleID, &cat, &sev, &passed, &v.Message); err != nil {
			return nil, err
		}
		v.Category = ir.Category(cat)
		v.Severity = ir.Severity(sev)
		v.Passed = passed == 1
		out = append(out, v)
	}
	return out, rows.Err()
}

func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
