package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/arbimo/dataq"
)

// Store mirrors a Frontend's facts into a SQL table. It is constructed by
// OpenSQLite or OpenPostgres and is a pure snapshot collaborator: Export
// and Import only ever run between queries, never while a SolutionStream
// is live against the Frontend's Database.
type Store struct {
	db      *sql.DB
	ownsDB  bool
	dialect dialect

	insertStmt *sql.Stmt
}

// OpenSQLite opens (creating if needed) a SQLite-backed Store. Pass
// ":memory:" for an in-memory database.
func OpenSQLite(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open sqlite: %w", err)
	}
	return newStore(db, true, sqliteDialect{})
}

// OpenPostgres opens a PostgreSQL-backed Store using a standard connection
// string.
func OpenPostgres(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("persist: open postgres: %w", err)
	}
	return newStore(db, true, postgresDialect{})
}

func newStore(db *sql.DB, ownsDB bool, d dialect) (*Store, error) {
	if _, err := db.Exec(d.createTableSQL()); err != nil {
		if ownsDB {
			db.Close()
		}
		return nil, fmt.Errorf("persist: create table: %w", err)
	}
	stmt, err := db.Prepare(d.insertSQL())
	if err != nil {
		if ownsDB {
			db.Close()
		}
		return nil, fmt.Errorf("persist: prepare insert: %w", err)
	}
	return &Store{db: db, ownsDB: ownsDB, dialect: d, insertStmt: stmt}, nil
}

// Close closes the store's prepared statements and, if the Store opened
// the connection itself, the connection too.
func (s *Store) Close() error {
	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// Export appends every fact currently held by f to the store, in the
// per-arity insertion order dataq.Frontend.ExportFacts returns.
func (s *Store) Export(f *dataq.Frontend) error {
	for _, fact := range f.ExportFacts() {
		args, err := json.Marshal(fact.Args)
		if err != nil {
			return fmt.Errorf("persist: marshal args for %q: %w", fact.Predicate, err)
		}
		if _, err := s.insertStmt.Exec(fact.Predicate, string(args)); err != nil {
			return fmt.Errorf("persist: insert %q: %w", fact.Predicate, err)
		}
	}
	return nil
}

// Import reads every row back out, in the order they were inserted, and
// adds each to f via AddFact. f is typically a fresh Frontend: Import does
// not clear any prior contents.
func (s *Store) Import(f *dataq.Frontend) error {
	rows, err := s.db.Query(s.dialect.selectOrderedSQL())
	if err != nil {
		return fmt.Errorf("persist: select: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var predicate, argsJSON string
		if err := rows.Scan(&predicate, &argsJSON); err != nil {
			return fmt.Errorf("persist: scan: %w", err)
		}
		var args []string
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return fmt.Errorf("persist: unmarshal args for %q: %w", predicate, err)
		}
		fact := append([]string{predicate}, args...)
		if err := f.AddFact(fact); err != nil {
			return fmt.Errorf("persist: add fact %v: %w", fact, err)
		}
	}
	return rows.Err()
}
