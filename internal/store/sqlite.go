package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	recentStmt *sql.Stmt
	winsStmt   *sql.Stmt
}

var _ Store = (*SQLiteStore)(nil)

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) is the recommended mode with WAL
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.prepare(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) prepare() error {
	var err error
	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO battles (first_name, second_name, first_attack, second_attack, outcome, fought_at)
		VALUES (?,?,?,?,?,?)
	`)
	if err != nil {
		return err
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT id, first_name, second_name, first_attack, second_attack, outcome, fought_at
		FROM battles
		ORDER BY fought_at DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		return err
	}

	s.winsStmt, err = s.db.Prepare(`
		SELECT winner, COUNT(*) AS wins FROM (
			SELECT CASE outcome WHEN 1 THEN first_name ELSE second_name END AS winner
			FROM battles
			WHERE outcome IN (1, 2)
		)
		GROUP BY lower(winner)
		ORDER BY wins DESC, lower(winner) ASC
		LIMIT ?
	`)
	return err
}

func (s *SQLiteStore) Close() error {
	for _, st := range []*sql.Stmt{s.insertStmt, s.recentStmt, s.winsStmt} {
		if st != nil {
			_ = st.Close()
		}
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS battles (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name    TEXT    NOT NULL,
			second_name   TEXT    NOT NULL,
			first_attack  INTEGER NOT NULL,
			second_attack INTEGER NOT NULL,
			outcome       INTEGER NOT NULL,
			fought_at     INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_battles_recent
			ON battles (fought_at DESC, id DESC);
	`)
	return err
}

func (s *SQLiteStore) Add(ctx context.Context, r battle.Result) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}

	if r.FoughtAt.IsZero() {
		r.FoughtAt = time.Now()
	}

	_, err := s.insertStmt.ExecContext(ctx,
		r.First,
		r.Second,
		r.FirstAttack,
		r.SecondAttack,
		int(r.Outcome),
		r.FoughtAt.Unix(),
	)
	return err
}

// Recent returns the latest battles, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]battle.Result, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialized")
	}

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]battle.Result, 0, limit)
	for rows.Next() {
		var (
			r          battle.Result
			outcome    int
			foughtUnix int64
		)
		if err := rows.Scan(&r.Id, &r.First, &r.Second, &r.FirstAttack, &r.SecondAttack, &outcome, &foughtUnix); err != nil {
			return nil, err
		}
		r.Outcome = battle.Outcome(outcome)
		r.FoughtAt = time.Unix(foughtUnix, 0).UTC()
		out = append(out, r)
	}

	return out, rows.Err()
}

// Wins ranks pokemon by number of battles won. Names are grouped
// case-insensitively, matching catalog keys.
func (s *SQLiteStore) Wins(ctx context.Context, limit int) ([]WinCount, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialized")
	}

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.winsStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WinCount
	for rows.Next() {
		var w WinCount
		if err := rows.Scan(&w.Name, &w.Wins); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
