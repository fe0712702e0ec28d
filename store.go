package dataq

// FactStore holds ground facts grouped by arity. Facts of different arities
// never share a bucket, and within a bucket facts are kept in insertion
// order forever: nothing is ever reordered or removed.
//
// FactStore has no notion of a query in flight; callers that run queries
// over a FactStore (via Database.Run) must not call AddFact again until
// every SolutionStream over that store has been dropped.
type FactStore struct {
	buckets [MaxArity + 1][]Fact
}

// NewFactStore returns an empty store.
func NewFactStore() *FactStore {
	return &FactStore{}
}

// AddFact appends f to the bucket matching its arity. It fails with
// *ErrInvalidArity if len(f) is outside [1, MaxArity].
func (s *FactStore) AddFact(f Fact) error {
	arity := len(f)
	if arity < 1 || arity > MaxArity {
		return &ErrInvalidArity{Arity: arity}
	}
	s.buckets[arity] = append(s.buckets[arity], f)
	return nil
}

// NextMatch scans the bucket whose arity equals pattern.Len(), starting at
// cursor, and returns the index and fact of the first entry the pattern
// matches. It returns ok=false once the bucket is exhausted. It fails with
// *ErrInvalidArity if the pattern's arity is outside [1, MaxArity]: that
// case can never arise from a bucket being empty, so it is reported
// distinctly rather than folded into ok=false.
//
// NextMatch allocates nothing: it only ever reads from the backing slice.
func (s *FactStore) NextMatch(pattern Pattern, cursor int) (index int, fact Fact, ok bool, err error) {
	arity := pattern.Len()
	if arity < 1 || arity > MaxArity {
		return 0, nil, false, &ErrInvalidArity{Arity: arity}
	}
	bucket := s.buckets[arity]
	for i := cursor; i < len(bucket); i++ {
		if pattern.Matches(bucket[i]) {
			return i, bucket[i], true, nil
		}
	}
	return 0, nil, false, nil
}

// Len returns the number of facts stored under the given arity. It returns
// 0 for arities outside [1, MaxArity].
func (s *FactStore) Len(arity int) int {
	if arity < 1 || arity > MaxArity {
		return 0
	}
	return len(s.buckets[arity])
}

// Facts returns the facts stored under the given arity, in insertion order.
// The returned slice is owned by the store and must not be mutated; it is
// read-only introspection used by tests and the snapshot collaborators
// (persist, rdfexport), never by the evaluator itself.
func (s *FactStore) Facts(arity int) []Fact {
	if arity < 1 || arity > MaxArity {
		return nil
	}
	return s.buckets[arity]
}
