package knowledge

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteBackend stores the same ordered sequence of records in a single
// table. Position preserves teaching order.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	s, err := openSQLite(path)
	if err != nil && isNotADatabase(err) {
		// Same policy as a malformed JSON file: discard and start empty.
		logrus.WithField("path", path).WithError(err).
			Warn("knowledge base is not a sqlite database, recreating")
		if rmErr := os.Remove(path); rmErr != nil {
			return nil, fmt.Errorf("removing corrupt sqlite %s: %w", path, rmErr)
		}
		s, err = openSQLite(path)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Info("sqlite backend ready")
	return s, nil
}

func openSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	s := &SQLiteBackend{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating sqlite %s: %w", path, err)
	}
	return s, nil
}

func isNotADatabase(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrNotADB || sqliteErr.Code == sqlite3.ErrCorrupt
}

func (s *SQLiteBackend) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			position INTEGER PRIMARY KEY,
			question TEXT NOT NULL,
			answer   TEXT NOT NULL
		)
	`)
	return err
}

func (s *SQLiteBackend) Describe() string { return "sqlite:" + s.path }

// Load reads every record ordered by position. Query or scan failures fall
// back to an empty knowledge base, matching the JSON backend's policy.
func (s *SQLiteBackend) Load() *KnowledgeBase {
	kb, err := s.readAll()
	if err != nil {
		logrus.WithField("path", s.path).WithError(err).
			Warn("knowledge base unreadable, starting empty")
		return Empty()
	}
	return kb
}

func (s *SQLiteBackend) readAll() (*KnowledgeBase, error) {
	rows, err := s.db.Query(`SELECT question, answer FROM questions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kb := Empty()
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Question, &r.Answer); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		kb.Append(r)
	}
	return kb, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *SQLiteBackend) Save(kb *KnowledgeBase) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM questions`); err != nil {
		return fmt.Errorf("clearing questions: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO questions (position, question, answer) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range kb.Questions {
		if _, err := stmt.Exec(i, r.Question, r.Answer); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
