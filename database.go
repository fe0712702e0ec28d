package dataq

// Database is the core, symbol-level programmatic surface: a FactStore
// plus the ability to run queries against it. It holds no string tables;
// see Frontend for the string/variable-name layer built on top of it.
type Database struct {
	store *FactStore
}

// NewDatabase returns an empty Database.
func NewDatabase() *Database {
	return &Database{store: NewFactStore()}
}

// AddFact appends f to the database. It fails with *ErrInvalidArity if
// len(f) is outside [1, MaxArity].
func (db *Database) AddFact(f Fact) error {
	return db.store.AddFact(f)
}

// Run compiles query against the database's FactStore and returns a lazy
// SolutionStream. The returned stream borrows the store: callers must not
// call AddFact again until they are done pulling from the stream.
func (db *Database) Run(query Query) *SolutionStream {
	return newSolutionStream(query, db.store)
}

// Store exposes the underlying FactStore for read-only introspection (used
// by the persist and rdfexport snapshot collaborators). It must never be
// mutated while a SolutionStream returned by Run is still live.
func (db *Database) Store() *FactStore {
	return db.store
}
