// Package persist provides optional snapshot collaborators that externalize
// or reload the current contents of a dataq Frontend to SQLite, PostgreSQL,
// or a JSON stream. None of this package is reachable from, or required by,
// the core evaluator: a dataq.SolutionStream never touches a persist.Store,
// and deleting this whole package would leave the core engine's contract
// unchanged.
package persist

// dialect isolates the SQL syntax differences between SQLite and
// PostgreSQL, the same way dialect isolation shows up elsewhere in SQL
// client code. Both dialects store one row per fact, with an explicit
// sequence column: SQL result order is otherwise unspecified, and facts
// must be read back out in their original insertion order.
type dialect interface {
	createTableSQL() string
	insertSQL() string
	selectOrderedSQL() string
}

type sqliteDialect struct{}

func (sqliteDialect) createTableSQL() string {
	return `
		CREATE TABLE IF NOT EXISTS facts (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			predicate TEXT NOT NULL,
			args TEXT NOT NULL
		);
	`
}

func (sqliteDialect) insertSQL() string {
	return `INSERT INTO facts (predicate, args) VALUES (?, ?)`
}

func (sqliteDialect) selectOrderedSQL() string {
	return `SELECT predicate, args FROM facts ORDER BY seq`
}

type postgresDialect struct{}

func (postgresDialect) createTableSQL() string {
	return `
		CREATE TABLE IF NOT EXISTS facts (
			seq SERIAL PRIMARY KEY,
			predicate TEXT NOT NULL,
			args TEXT NOT NULL
		);
	`
}

func (postgresDialect) insertSQL() string {
	return `INSERT INTO facts (predicate, args) VALUES ($1, $2)`
}

func (postgresDialect) selectOrderedSQL() string {
	return `SELECT predicate, args FROM facts ORDER BY seq`
}
