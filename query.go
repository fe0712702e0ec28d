package dataq

// Var is a dense, non-negative variable id. A Query's variable ids must be
// dense (0..V-1) over the whole query; Frontend.Run guarantees this for
// queries compiled from variable names, but callers constructing a Query
// directly from Atoms are responsible for it themselves.
type Var uint32

// Atom is one position of a lifted fact (a Conjunct): either a variable or
// a constant symbol.
type Atom struct {
	sym   Sym
	v     Var
	isVar bool
}

// VarAtom builds an Atom referring to variable v.
func VarAtom(v Var) Atom {
	return Atom{v: v, isVar: true}
}

// ConstAtom builds an Atom constrained to symbol s.
func ConstAtom(s Sym) Atom {
	return Atom{sym: s, isVar: false}
}

// IsVar reports whether a is a variable reference.
func (a Atom) IsVar() bool {
	return a.isVar
}

// Var returns the variable id and true if a is a variable reference.
func (a Atom) Var() (Var, bool) {
	return a.v, a.isVar
}

// Symbol returns the constant symbol and true if a is a constant.
func (a Atom) Symbol() (Sym, bool) {
	return a.sym, !a.isVar
}

// Conjunct is one lifted fact in a Query: an ordered sequence of Atoms,
// whose length (arity) must match one of the FactStore's buckets.
type Conjunct []Atom

// Query is an ordered conjunction of Conjuncts. Conjunct order is
// evaluation order and is never reordered internally.
type Query struct {
	conjuncts []Conjunct
	numVars   int
}

// Single builds a one-conjunct Query.
func Single(c Conjunct) Query {
	return From([]Conjunct{c})
}

// From builds a Query from an ordered list of conjuncts, in the order
// given.
func From(conjuncts []Conjunct) Query {
	q := Query{conjuncts: conjuncts}
	maxVar := -1
	for _, c := range conjuncts {
		for _, atom := range c {
			if v, ok := atom.Var(); ok {
				if int(v) > maxVar {
					maxVar = int(v)
				}
			}
		}
	}
	q.numVars = maxVar + 1
	return q
}

// NumVars returns one past the largest variable id referenced anywhere in
// the query.
func (q Query) NumVars() int {
	return q.numVars
}

// Conjuncts returns the query's conjuncts in evaluation order.
func (q Query) Conjuncts() []Conjunct {
	return q.conjuncts
}
