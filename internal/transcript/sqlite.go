// Package transcript persists a full game record to SQLite so finished
// games can be replayed and analyzed offline.
package transcript

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"assassins/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS information (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL,
	category   TEXT NOT NULL,
	scope      TEXT NOT NULL,
	targets    TEXT,
	day        INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS statements (
	id         TEXT PRIMARY KEY,
	speaker    TEXT NOT NULL,
	content    TEXT NOT NULL,
	thinking   TEXT,
	phase      TEXT NOT NULL,
	round      INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS votes (
	voter           TEXT NOT NULL,
	target          TEXT NOT NULL,
	original_target TEXT,
	reasoning       TEXT,
	day             INTEGER NOT NULL,
	round           INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS eliminations (
	player TEXT NOT NULL,
	role   TEXT NOT NULL,
	cause  TEXT NOT NULL,
	day    INTEGER NOT NULL
);
`

// Store is a SQLite-backed transcript recorder
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the transcript database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordInformation persists one information record
func (s *Store) RecordInformation(info *domain.Information) error {
	targets, err := json.Marshal(info.Visibility.Targets)
	if err != nil {
		return fmt.Errorf("marshal targets: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO information (id, content, source, category, scope, targets, day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID, info.Content, info.Source, string(info.Category),
		string(info.Visibility.Scope), string(targets), info.Day, info.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record information: %w", err)
	}
	return nil
}

// RecordStatement persists one statement
func (s *Store) RecordStatement(st *domain.Statement) error {
	_, err := s.db.Exec(
		`INSERT INTO statements (id, speaker, content, thinking, phase, round, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Speaker, st.Content, st.Thinking, st.Phase, st.Round, st.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record statement: %w", err)
	}
	return nil
}

// RecordVote persists one vote
func (s *Store) RecordVote(v domain.Vote) error {
	_, err := s.db.Exec(
		`INSERT INTO votes (voter, target, original_target, reasoning, day, round)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.Voter, v.Target, v.OriginalTarget, v.Reasoning, v.Day, v.Round,
	)
	if err != nil {
		return fmt.Errorf("record vote: %w", err)
	}
	return nil
}

// RecordElimination persists one elimination
func (s *Store) RecordElimination(name, role, cause string, day int) error {
	_, err := s.db.Exec(
		`INSERT INTO eliminations (player, role, cause, day) VALUES (?, ?, ?, ?)`,
		name, role, cause, day,
	)
	if err != nil {
		return fmt.Errorf("record elimination: %w", err)
	}
	return nil
}
