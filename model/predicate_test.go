package model

import (
	"testing"

	"github.com/dalzilio/symctl/bdd"
)

// TestBooleanAlgebraLaws checks the algebraic laws of u-form predicates
// over a small state space: commutativity, associativity, idempotence and
// distributivity of AND/OR, the complement laws, double negation, and the
// expansion of xor into (p AND !q) OR (!p AND q).
func TestBooleanAlgebraLaws(t *testing.T) {
	space := newSpace(t, 3)
	p, err := VarP(space, 0)
	if err != nil {
		t.Fatal(err)
	}
	q, err := VarP(space, 1)
	if err != nil {
		t.Fatal(err)
	}
	r, err := VarP(space, 2)
	if err != nil {
		t.Fatal(err)
	}

	mustBin := func(op func(*Predicate, *Predicate) (*Predicate, error), a, b *Predicate) *Predicate {
		res, err := op(a, b)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	t.Run("and commutative", func(t *testing.T) {
		mustEqual(t, mustBin(And, p, q), mustBin(And, q, p), "p AND q == q AND p")
	})
	t.Run("or commutative", func(t *testing.T) {
		mustEqual(t, mustBin(Or, p, q), mustBin(Or, q, p), "p OR q == q OR p")
	})
	t.Run("and associative", func(t *testing.T) {
		left := mustBin(And, mustBin(And, p, q), r)
		right := mustBin(And, p, mustBin(And, q, r))
		mustEqual(t, left, right, "(p AND q) AND r == p AND (q AND r)")
	})
	t.Run("or associative", func(t *testing.T) {
		left := mustBin(Or, mustBin(Or, p, q), r)
		right := mustBin(Or, p, mustBin(Or, q, r))
		mustEqual(t, left, right, "(p OR q) OR r == p OR (q OR r)")
	})
	t.Run("and idempotent", func(t *testing.T) {
		mustEqual(t, mustBin(And, p, p), p, "p AND p == p")
	})
	t.Run("or idempotent", func(t *testing.T) {
		mustEqual(t, mustBin(Or, p, p), p, "p OR p == p")
	})
	t.Run("and distributes over or", func(t *testing.T) {
		left := mustBin(And, p, mustBin(Or, q, r))
		right := mustBin(Or, mustBin(And, p, q), mustBin(And, p, r))
		mustEqual(t, left, right, "p AND (q OR r) == (p AND q) OR (p AND r)")
	})
	t.Run("or distributes over and", func(t *testing.T) {
		left := mustBin(Or, p, mustBin(And, q, r))
		right := mustBin(And, mustBin(Or, p, q), mustBin(Or, p, r))
		mustEqual(t, left, right, "p OR (q AND r) == (p OR q) AND (p OR r)")
	})
	t.Run("complement laws", func(t *testing.T) {
		mustEqual(t, mustBin(And, p, Not(p)), FalseP(space), "p AND !p == false")
		mustEqual(t, mustBin(Or, p, Not(p)), TrueP(space), "p OR !p == true")
	})
	t.Run("double negation", func(t *testing.T) {
		mustEqual(t, Not(Not(p)), p, "!!p == p")
	})
	t.Run("xor as disjunction of differences", func(t *testing.T) {
		xor := mustBin(Xor, p, q)
		pnq := mustBin(And, p, Not(q))
		npq := mustBin(And, Not(p), q)
		want, err := Or(pnq, npq)
		if err != nil {
			t.Fatal(err)
		}
		mustEqual(t, xor, want, "p XOR q == (p AND !q) OR (!p AND q)")
	})
}

// TestSwapFormRoundTrips checks the dual-representation invariant: renaming
// a predicate to the opposite parity and back produces an equal predicate,
// regardless of the starting active form.
func TestSwapFormRoundTrips(t *testing.T) {
	space := newSpace(t, 2)
	p, err := VarP(space, 0)
	if err != nil {
		t.Fatal(err)
	}
	q, err := VarP(space, 1)
	if err != nil {
		t.Fatal(err)
	}
	orpq, err := Or(p, q)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []*Predicate{TrueP(space), FalseP(space), p, Not(p), orpq} {
		mustEqual(t, c, c.SwapForm(), "p == p.SwapForm()")
	}

	// Exercise the v-form branch of SwapForm directly: NVar(1) is the
	// v-copy of bit 0 negated, i.e. the v-form predicate "!v0".
	v := newVPredicate(space, space.engine.NVar(1))
	mustEqual(t, v, v.SwapForm(), "v-form p == p.SwapForm()")
}

// TestGetBDDAlwaysUForm checks that GetBDD returns a u-vars BDD regardless
// of which active form produced the predicate.
func TestGetBDDAlwaysUForm(t *testing.T) {
	space := newSpace(t, 2)
	u, err := VarP(space, 0)
	if err != nil {
		t.Fatal(err)
	}
	// NVar(1) is the v-copy of bit 0 negated: the v-form predicate "!v0".
	v := newVPredicate(space, space.engine.NVar(1))

	uBdd := u.GetBDD()
	vBdd := v.GetBDD()
	if uBdd != space.engine.Var(0) {
		t.Errorf("GetBDD() of a u-form predicate should be its own BDD unchanged")
	}
	// GetBDD must report the same set of states in u-vars: the u-form
	// negation of bit 0.
	want := space.engine.Not(space.engine.Var(0))
	if vBdd != want {
		t.Errorf("GetBDD() of a v-form predicate should rename into u-vars")
	}
}

// TestFixpointMonotonicity checks the monotonicity property every CTL
// fixpoint operator relies on for termination: f => f' implies Q(f) =>
// Q(f'). Weakening p to p OR true must not shrink EF(p).
func TestFixpointMonotonicity(t *testing.T) {
	space := newSpace(t, 1)
	tr := buildTransition(t, space, func(e *bdd.Engine) bdd.Node {
		return e.Xor(e.Var(0), e.Var(1))
	})

	p, err := VarP(space, 0)
	if err != nil {
		t.Fatal(err)
	}
	q := TrueP(space)
	pOrQ, err := Or(p, q)
	if err != nil {
		t.Fatal(err)
	}

	efP, err := tr.EF(p)
	if err != nil {
		t.Fatal(err)
	}
	efPQ, err := tr.EF(pOrQ)
	if err != nil {
		t.Fatal(err)
	}
	holds, err := Implies(efP, efPQ)
	if err != nil {
		t.Fatal(err)
	}
	if !holds {
		t.Errorf("p => p OR q should give EF(p) => EF(p OR q)")
	}
}
