package dataq

import "math"

// Sym is a dense, non-negative interned symbol id. Ids are stable for the
// lifetime of the store that allocated them and are never freed.
type Sym uint32

// NoSymbol is the sentinel used in place of a Sym that does not exist in a
// given interning table. A pattern built with NoSymbol matches nothing,
// which gives unknown-symbol queries a sound, special-case-free semantics
// (see Frontend.Run).
const NoSymbol Sym = math.MaxUint32

// MaxArity is the largest fact/pattern length this store supports.
const MaxArity = 6

// Fact is a fixed-length, immutable tuple of symbols. Its length (arity) is
// fixed at construction and never changes.
type Fact []Sym
