package dataq

import (
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// varPrefix marks a string as a variable name rather than a symbol, both in
// facts (where it is rejected) and in queries (where it is the only way to
// introduce a variable).
const varPrefix = "?"

// ErrReservedPrefix is returned by Frontend.AddFact when a fact argument
// begins with "?": that prefix is reserved for variable names in queries.
type ErrReservedPrefix struct {
	Symbol string
}

func (e *ErrReservedPrefix) Error() string {
	return fmt.Sprintf("dataq: fact argument %q starts with %q, which is reserved for query variables", e.Symbol, varPrefix)
}

// PredicateInfo names a distinct predicate/arity combination the frontend
// has seen, used for introspection (Frontend.Predicates).
type PredicateInfo struct {
	Name  string
	Arity int
}

// Frontend maps user-facing string symbols and named query variables onto
// the dense integer world the core Database operates over, and maps
// results back. It owns two side tables (string->id, id->string) that grow
// monotonically and never shrink.
type Frontend struct {
	db *Database

	toID     map[string]Sym
	toString []string

	// predicates tracks every distinct "name/arity" key seen as the shape of
	// an added fact, so introspection doesn't require a full store scan.
	predicates stringset.Set
}

// NewFrontend returns an empty Frontend over a fresh Database.
func NewFrontend() *Frontend {
	return &Frontend{
		db:         NewDatabase(),
		toID:       make(map[string]Sym),
		predicates: stringset.New(),
	}
}

// Database returns the underlying symbol-level Database, e.g. for handing
// to a snapshot collaborator.
func (f *Frontend) Database() *Database {
	return f.db
}

// intern returns the dense id for s, allocating a fresh one on first sight.
func (f *Frontend) intern(s string) Sym {
	if id, ok := f.toID[s]; ok {
		return id
	}
	id := Sym(len(f.toString))
	f.toID[s] = id
	f.toString = append(f.toString, s)
	return id
}

// lookup returns the existing id for s, or (0, false) if s was never
// interned.
func (f *Frontend) lookup(s string) (Sym, bool) {
	id, ok := f.toID[s]
	return id, ok
}

// symbolString returns the string a symbol was interned from.
func (f *Frontend) symbolString(s Sym) string {
	return f.toString[s]
}

func predicateKey(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// AddFact interns each string in fact and stores the resulting Fact. It
// fails with *ErrReservedPrefix if any argument starts with "?" (those are
// only meaningful in queries), or with *ErrInvalidArity if len(fact) is
// outside [1, MaxArity].
func (f *Frontend) AddFact(fact []string) error {
	for _, s := range fact {
		if strings.HasPrefix(s, varPrefix) {
			return &ErrReservedPrefix{Symbol: s}
		}
	}
	symbols := make(Fact, len(fact))
	for i, s := range fact {
		symbols[i] = f.intern(s)
	}
	if err := f.db.AddFact(symbols); err != nil {
		return err
	}
	if len(fact) > 0 {
		f.predicates.Add(predicateKey(fact[0], len(fact)))
	}
	return nil
}

// Predicates lists every distinct predicate name/arity combination seen by
// AddFact so far, in no particular order.
func (f *Frontend) Predicates() []PredicateInfo {
	out := make([]PredicateInfo, 0, len(f.predicates))
	for _, key := range f.predicates.Elements() {
		idx := strings.LastIndex(key, "/")
		arity, err := strconv.Atoi(key[idx+1:])
		if err != nil {
			continue
		}
		out = append(out, PredicateInfo{Name: key[:idx], Arity: arity})
	}
	return out
}

// ExportedFact pairs a fact's predicate (its first position) with its
// remaining arguments, both translated back to the strings they were
// interned from. It is read-only introspection consumed by the persist
// and rdfexport snapshot collaborators; the evaluator never produces one.
type ExportedFact struct {
	Predicate string
	Args      []string
}

// ExportFacts returns every fact the frontend's Database holds: arity 1's
// bucket first, then arity 2's, and so on through MaxArity, each bucket in
// its own insertion order. Cross-arity order is not preserved because the
// core FactStore never records one: only the per-bucket order is part of
// the public contract.
func (f *Frontend) ExportFacts() []ExportedFact {
	store := f.db.Store()
	var out []ExportedFact
	for arity := 1; arity <= MaxArity; arity++ {
		for _, fact := range store.Facts(arity) {
			strs := make([]string, len(fact))
			for i, sym := range fact {
				strs[i] = f.symbolString(sym)
			}
			out = append(out, ExportedFact{Predicate: strs[0], Args: strs[1:]})
		}
	}
	return out
}

// NamedConjunct is one conjunct of a NamedQuery: a sequence of strings,
// where a string starting with "?" names a variable and anything else is a
// literal symbol.
type NamedConjunct []string

// NamedQuery is the string-level counterpart of Query.
type NamedQuery struct {
	conjuncts []NamedConjunct
}

// NamedSingle builds a one-conjunct NamedQuery.
func NamedSingle(c NamedConjunct) NamedQuery {
	return NamedQuery{conjuncts: []NamedConjunct{c}}
}

// NamedFrom builds a NamedQuery from an ordered list of conjuncts.
func NamedFrom(cs []NamedConjunct) NamedQuery {
	return NamedQuery{conjuncts: cs}
}

// NamedSolutions wraps a SolutionStream and projects each Assignment back
// into a {variable name -> symbol string} mapping.
type NamedSolutions struct {
	stream   *SolutionStream
	frontend *Frontend
	varName  []string
}

// Next returns the next solution as a map from variable name (including
// its leading "?") to the string symbol bound to it, or (nil, nil) once
// the query is exhausted.
func (ns *NamedSolutions) Next() (map[string]string, error) {
	ass, err := ns.stream.Next()
	if err != nil {
		return nil, err
	}
	if ass == nil {
		return nil, nil
	}
	out := make(map[string]string, len(ass))
	for v, sym := range ass {
		out[ns.varName[v]] = ns.frontend.symbolString(sym)
	}
	return out, nil
}

// Run compiles a NamedQuery against the frontend's interned symbols and
// runs it. Variable names are assigned dense ids in first-seen order; a
// symbol string never interned by AddFact is translated to NoSymbol, which
// matches no fact and so soundly yields no solutions through any conjunct
// touching it.
func (f *Frontend) Run(q NamedQuery) *NamedSolutions {
	varID := make(map[string]Var)
	var varName []string
	coreConjuncts := make([]Conjunct, len(q.conjuncts))

	for ci, nc := range q.conjuncts {
		conjunct := make(Conjunct, len(nc))
		for i, term := range nc {
			if strings.HasPrefix(term, varPrefix) {
				name := term
				id, ok := varID[name]
				if !ok {
					id = Var(len(varName))
					varID[name] = id
					varName = append(varName, name)
				}
				conjunct[i] = VarAtom(id)
			} else {
				sym, ok := f.lookup(term)
				if !ok {
					sym = NoSymbol
				}
				conjunct[i] = ConstAtom(sym)
			}
		}
		coreConjuncts[ci] = conjunct
	}

	query := From(coreConjuncts)
	return &NamedSolutions{
		stream:   f.db.Run(query),
		frontend: f,
		varName:  varName,
	}
}
