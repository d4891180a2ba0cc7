package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
)

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  started_at TEXT,          -- RFC3339
  source     TEXT,
  ir_version TEXT,
  overall    TEXT,
  run_json   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verdicts (
  run_id     TEXT NOT NULL,
  scene      TEXT,
  element_id TEXT,
  rule_id    TEXT,
  category   TEXT,
  severity   TEXT,
  passed     INTEGER NOT NULL,
  message    TEXT,
  PRIMARY KEY (run_id, scene, element_id, rule_id),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_verdicts_run ON verdicts(run_id);
CREATE INDEX IF NOT EXISTS idx_verdicts_rule ON verdicts(rule_id);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);

CREATE TABLE IF NOT EXISTS waivers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  rule_id     TEXT NOT NULL,
  scene       TEXT,              -- optional exact match; NULL = any
  element_id  TEXT,              -- optional exact match; NULL = any
  pattern_sub TEXT,              -- optional substring to match message
  reason      TEXT NOT NULL,
  expires_at  TEXT NOT NULL,     -- RFC3339Nano
  created_by  TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  revoked_at  TEXT               -- NULL = active
);
`)
	return errors.Wrap(err, "create schema")
}

// SaveRun upserts a run JSON and (re)writes its verdicts.
func (db *DB) SaveRun(run *ir.Run) error {
	b, err := json.Marshal(run)
	if err != nil {
		return errors.Wrap(err, "marshal run")
	}
	ts := run.StartedAt.UTC().Format(time.RFC3339Nano)
	overall := ""
	if run.Report != nil {
		overall = string(run.Report.Overall)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, source, ir_version, overall, run_json)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, source=excluded.source, ir_version=excluded.ir_version, overall=excluded.overall, run_json=excluded.run_json`,
		run.ID, ts, run.Source, run.IRVersion, overall, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM verdicts WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if len(run.Verdicts) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO verdicts
			(run_id, scene, element_id, rule_id, category, severity, passed, message)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, v := range run.Verdicts {
			passed := 0
			if v.Passed {
				passed = 1
			}
			if _, err := stmt.Exec(
				run.ID,
				v.Scene,
				v.ElementID,
				v.RuleID,
				string(v.Category),
				string(v.Severity),
				passed,
				v.Message,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadRun returns the full run (from stored JSON).
func (db *DB) LoadRun(id string) (ir.Run, error) {
	var s string
	row := db.conn.QueryRow(`SELECT run_json FROM runs WHERE id = ?`, id)
	if err := row.Scan(&s); err != nil {
		return ir.Run{}, err
	}
	var run ir.Run
	if err := json.Unmarshal([]byte(s), &run); err != nil {
		return ir.Run{}, errors.Wrap(err, "unmarshal run")
	}
	return run, nil
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (ir.Run, error) {
	var id string
	row := db.conn.QueryRow(`SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&id); err != nil {
		return ir.Run{}, err
	}
	return db.LoadRun(id)
}
