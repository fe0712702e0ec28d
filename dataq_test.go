package dataq

import "testing"

// database builds the fact store shared by the scenario tests below.
func database(t *testing.T) *Database {
	t.Helper()
	db := NewDatabase()
	facts := []Fact{
		{1, 2, 1}, {1, 2, 2}, {1, 2, 3}, {1, 2, 4}, {1, 2, 5},
		{2, 2, 1}, {2, 2, 2}, {2, 2, 3}, {2, 2, 4}, {2, 2, 5}, {2, 2, 6}, {2, 2, 7},
		{1, 3, 1}, {1, 3, 2}, {1, 3, 3}, {1, 3, 4}, {1, 3, 5}, {1, 3, 6},
	}
	for _, f := range facts {
		if err := db.AddFact(f); err != nil {
			t.Fatalf("AddFact(%v): %v", f, err)
		}
	}
	return db
}

func drain(t *testing.T, stream *SolutionStream) []Assignment {
	t.Helper()
	var out []Assignment
	for {
		a, err := stream.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if a == nil {
			return out
		}
		out = append(out, a)
	}
}

func assertAssignments(t *testing.T, got []Assignment, want ...Assignment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d assignments %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("assignment %d: got %v, want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("assignment %d: got %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestSingleConjunctSymSymVar(t *testing.T) {
	db := database(t)
	q := Single(Conjunct{ConstAtom(1), ConstAtom(2), VarAtom(0)})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{1}, Assignment{2}, Assignment{3}, Assignment{4}, Assignment{5})
}

func TestSingleConjunctVarVarSym(t *testing.T) {
	db := database(t)
	q := Single(Conjunct{VarAtom(0), VarAtom(1), ConstAtom(6)})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{2, 2}, Assignment{1, 3})
}

func TestSingleConjunctSymVarSym(t *testing.T) {
	db := database(t)
	q := Single(Conjunct{ConstAtom(1), VarAtom(0), ConstAtom(3)})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{2}, Assignment{3})
}

func TestTwoConjunctsOrderA(t *testing.T) {
	db := database(t)
	q := From([]Conjunct{
		{VarAtom(0), VarAtom(1), ConstAtom(3)},
		{VarAtom(0), VarAtom(2), ConstAtom(7)},
	})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{2, 2, 2})
}

func TestTwoConjunctsOrderIndependence(t *testing.T) {
	db := database(t)
	q := From([]Conjunct{
		{VarAtom(0), VarAtom(2), ConstAtom(7)},
		{VarAtom(0), VarAtom(1), ConstAtom(3)},
	})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{2, 2, 2})
}

func TestTwoConjunctsNonDenseFirstAppearance(t *testing.T) {
	db := database(t)
	q := From([]Conjunct{
		{VarAtom(2), VarAtom(1), ConstAtom(7)},
		{VarAtom(2), VarAtom(0), ConstAtom(3)},
	})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{2, 2, 2})
}

func TestResumability(t *testing.T) {
	db := database(t)
	q := Single(Conjunct{ConstAtom(1), ConstAtom(2), VarAtom(0)})
	stream := db.Run(q)
	for i := 0; i < 5; i++ {
		if a, err := stream.Next(); err != nil || a == nil {
			t.Fatalf("Next() #%d = %v, %v, want a real assignment", i, a, err)
		}
	}
	for i := 0; i < 3; i++ {
		a, err := stream.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if a != nil {
			t.Fatalf("expected exhaustion after drain, got %v", a)
		}
	}
}

func TestUnmatchedSymbolYieldsNoSolutions(t *testing.T) {
	db := database(t)
	q := Single(Conjunct{ConstAtom(9), VarAtom(0), ConstAtom(9)})
	got := drain(t, db.Run(q))
	if len(got) != 0 {
		t.Fatalf("expected no solutions, got %v", got)
	}
}

func TestRepeatedVariableWithinConjunct(t *testing.T) {
	db := NewDatabase()
	for _, f := range []Fact{{1, 1}, {1, 2}, {2, 2}, {2, 1}} {
		if err := db.AddFact(f); err != nil {
			t.Fatalf("AddFact: %v", err)
		}
	}
	q := Single(Conjunct{VarAtom(0), VarAtom(0)})
	got := drain(t, db.Run(q))
	assertAssignments(t, got, Assignment{1}, Assignment{2})
}

func TestInvalidArity(t *testing.T) {
	db := NewDatabase()
	err := db.AddFact(Fact{})
	var arityErr *ErrInvalidArity
	if err == nil {
		t.Fatal("expected *ErrInvalidArity for empty fact, got nil")
	}
	if !asErrInvalidArity(err, &arityErr) {
		t.Fatalf("expected *ErrInvalidArity, got %T: %v", err, err)
	}

	tooLong := make(Fact, MaxArity+1)
	if err := db.AddFact(tooLong); err == nil {
		t.Fatal("expected *ErrInvalidArity for over-long fact, got nil")
	}
}

func asErrInvalidArity(err error, target **ErrInvalidArity) bool {
	if e, ok := err.(*ErrInvalidArity); ok {
		*target = e
		return true
	}
	return false
}

func TestMalformedQuery(t *testing.T) {
	db := database(t)
	// Var(1) never appears in any conjunct, so it can never be bound.
	q := Single(Conjunct{ConstAtom(1), ConstAtom(2), VarAtom(0)})
	q.numVars = 2

	_, err := db.Run(q).Next()
	var malformed *ErrMalformedQuery
	if err == nil {
		t.Fatal("expected *ErrMalformedQuery, got nil")
	}
	if e, ok := err.(*ErrMalformedQuery); !ok {
		t.Fatalf("expected *ErrMalformedQuery, got %T: %v", err, err)
	} else {
		malformed = e
	}
	if malformed.Var != 1 {
		t.Fatalf("expected unbound var 1, got %d", malformed.Var)
	}
}
