// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package results formats and stores the outcome of one trial.
package results

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sugawarayuuta/sonnet"
	_ "modernc.org/sqlite"
)

type Counter struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// Run is one trial: the table, the hash function, and what inserting cost.
type Run struct {
	M         int           `json:"m"`
	N         int           `json:"n"`
	Seed      int64         `json:"seed"`
	Method    int           `json:"h"`
	Name      string        `json:"name"`
	Time      time.Duration `json:"time_ns"`
	CPUTime   time.Duration `json:"cpu_time_ns"`
	StashSize int           `json:"stash_size"`
	Counters  []Counter     `json:"counters,omitempty"` // hardware counters, when available
	Stats     []Counter     `json:"stats,omitempty"`    // table counters
	Coverage1 float64       `json:"coverage_h1"`
	Coverage2 float64       `json:"coverage_h2"`
	Ideal     float64       `json:"coverage_ideal"`
}

// String formats r as one line: m, n, seed, h, name, time and cpu_time in
// seconds, stash_size, then name=value for each counter.
func (r *Run) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "m=%d n=%d seed=%d h=%d name=%s time=%.6f cpu_time=%.6f stash_size=%d",
		r.M, r.N, r.Seed, r.Method, r.Name, r.Time.Seconds(), r.CPUTime.Seconds(), r.StashSize)
	for _, c := range r.Counters {
		fmt.Fprintf(&b, " %s=%d", c.Name, c.Value)
	}
	for _, c := range r.Stats {
		fmt.Fprintf(&b, " %s=%d", c.Name, c.Value)
	}
	if r.Ideal > 0 {
		fmt.Fprintf(&b, " coverage=%.4f/%.4f ideal=%.4f", r.Coverage1, r.Coverage2, r.Ideal)
	}
	return b.String()
}

func (r *Run) JSON() ([]byte, error) {
	return sonnet.Marshal(r)
}

// Store appends runs to the table "runs" of a sqlite database.
type Store struct {
	db   *sql.DB
	stmt *sql.Stmt
}

const createRuns = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
	m INTEGER NOT NULL,
	n INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	method INTEGER NOT NULL,
	name TEXT NOT NULL,
	time_ns INTEGER NOT NULL,
	cpu_time_ns INTEGER NOT NULL,
	stash_size INTEGER NOT NULL,
	run_data TEXT NOT NULL
);`

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("results: open %s: %w", path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: ping %s: %w", path, err)
	}
	if _, err = db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: create runs: %w", err)
	}
	stmt, err := db.Prepare(`INSERT INTO runs (m, n, seed, method, name, time_ns, cpu_time_ns, stash_size, run_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("results: prepare insert: %w", err)
	}
	return &Store{db: db, stmt: stmt}, nil
}

func (s *Store) Append(r *Run) error {
	data, err := r.JSON()
	if err != nil {
		return fmt.Errorf("results: encode: %w", err)
	}
	_, err = s.stmt.Exec(r.M, r.N, r.Seed, r.Method, r.Name, int64(r.Time), int64(r.CPUTime), r.StashSize, string(data))
	if err != nil {
		return fmt.Errorf("results: insert: %w", err)
	}
	return nil
}

// Runs returns the stored runs for method, oldest first; method < 0 returns all of them.
func (s *Store) Runs(method int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_data FROM runs WHERE ? < 0 OR method = ? ORDER BY id`, method, method)
	if err != nil {
		return nil, fmt.Errorf("results: query: %w", err)
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("results: scan: %w", err)
		}
		var r Run
		if err := sonnet.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("results: decode: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	var first error
	if err := s.stmt.Close(); err != nil {
		first = err
	}
	if err := s.db.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
