// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd_test

import (
	"testing"

	"github.com/dalzilio/symctl/bdd"
)

func newEngine(t *testing.T, varnum int) *bdd.Engine {
	t.Helper()
	e, err := bdd.New(varnum, bdd.Nodesize(1000), bdd.Cachesize(1000))
	if err != nil {
		t.Fatalf("New(%d): %v", varnum, err)
	}
	return e
}

func TestTerminalsAndVars(t *testing.T) {
	e := newEngine(t, 4)
	if !e.IsTrue(e.True()) || !e.IsFalse(e.False()) {
		t.Fatalf("terminals misreported")
	}
	if e.Var(0) == e.Var(1) {
		t.Fatalf("distinct variables collapsed to the same node")
	}
	if e.Var(0) != e.Var(0) {
		t.Fatalf("Var(0) is not idempotent: ROBDD canonicity broken")
	}
	if e.Not(e.Var(0)) != e.NVar(0) {
		t.Fatalf("Not(Var(i)) != NVar(i)")
	}
}

func TestApplyIdentities(t *testing.T) {
	e := newEngine(t, 3)
	x, y, z := e.Var(0), e.Var(1), e.Var(2)

	var identities = []struct {
		name string
		got  bdd.Node
	}{
		{"excluded middle", e.Or(x, e.Not(x))},
		{"De Morgan and", e.Equiv(e.Not(e.And(x, y)), e.Or(e.Not(x), e.Not(y)))},
		{"De Morgan or", e.Equiv(e.Not(e.Or(x, y)), e.And(e.Not(x), e.Not(y)))},
		{"associativity", e.Equiv(e.And(e.And(x, y), z), e.And(x, e.And(y, z)))},
		{"absorption", e.Equiv(e.Or(x, e.And(x, y)), x)},
		{"xor self-cancel", e.Not(e.Xor(x, x))},
		{"imp via or", e.Equiv(e.Imp(x, y), e.Or(e.Not(x), y))},
	}
	for _, tt := range identities {
		if tt.got != e.True() {
			t.Errorf("%s: expected the constant-true BDD, got a different node", tt.name)
		}
	}
	if e.Error() != nil {
		t.Fatalf("unexpected engine error: %v", e.Error())
	}
}

func TestIte(t *testing.T) {
	e := newEngine(t, 3)
	x, y, z := e.Var(0), e.Var(1), e.Var(2)
	got := e.Ite(x, y, z)
	want := e.Or(e.And(x, y), e.And(e.Not(x), z))
	if got != want {
		t.Errorf("Ite(x,y,z) != (x&y)|(!x&z)")
	}
}

func TestExistForallDuality(t *testing.T) {
	e := newEngine(t, 3)
	x, y, z := e.Var(0), e.Var(1), e.Var(2)
	f := e.Or(e.And(x, y), z)
	cube := e.Cube(0, 1)

	forall := e.Forall(f, cube)
	forallViaDeMorgan := e.Not(e.Exist(e.Not(f), cube))
	if forall != forallViaDeMorgan {
		t.Errorf("Forall(f) != Not(Exist(Not(f))): De Morgan duality broken")
	}

	// Exist(x|!x, {x}) must be true regardless of the rest of the function.
	tautology := e.Exist(e.Or(x, e.Not(x)), e.Cube(0))
	if tautology != e.True() {
		t.Errorf("Exist over a variable-free tautology did not collapse to true")
	}

	// Forall(x&!x, {x}) must be false.
	contradiction := e.Forall(e.And(x, e.Not(x)), e.Cube(0))
	if contradiction != e.False() {
		t.Errorf("Forall over a contradiction did not collapse to false")
	}
}

func TestCubeDeduplicatesAndSorts(t *testing.T) {
	e := newEngine(t, 4)
	a := e.Cube(3, 1, 1, 2)
	b := e.Cube(1, 2, 3)
	if a != b {
		t.Errorf("Cube should be order- and duplicate-insensitive")
	}
}

func TestPickOneCube(t *testing.T) {
	e := newEngine(t, 3)
	x, y := e.Var(0), e.Var(1)
	f := e.And(x, e.Not(y))
	assign, err := e.PickOneCube(f)
	if err != nil {
		t.Fatalf("PickOneCube: %v", err)
	}
	if len(assign) != 3 || !assign[0] || assign[1] {
		t.Errorf("PickOneCube(x & !y) = %v, want [true false _]", assign)
	}
	if _, err := e.PickOneCube(e.False()); err == nil {
		t.Errorf("PickOneCube(false) should fail")
	}
}

func TestSatcount(t *testing.T) {
	e := newEngine(t, 3)
	x, y := e.Var(0), e.Var(1)
	f := e.And(x, y) // independent of z: 2 assignments out of 8
	if got := e.Satcount(f).Int64(); got != 2 {
		t.Errorf("Satcount(x&y) over 3 vars = %d, want 2", got)
	}
	if got := e.Satcount(e.True()).Int64(); got != 8 {
		t.Errorf("Satcount(true) over 3 vars = %d, want 8", got)
	}
	if got := e.Satcount(e.False()).Int64(); got != 0 {
		t.Errorf("Satcount(false) = %d, want 0", got)
	}
}

func TestRefcountAndGC(t *testing.T) {
	e := newEngine(t, 2)
	x, y := e.Var(0), e.Var(1)
	f := e.AddRef(e.And(x, y))
	before := e.Stats().NodesInUse
	e.GC()
	after := e.Stats().NodesInUse
	if after > before {
		t.Errorf("GC increased live node count: %d -> %d", before, after)
	}
	if _, err := e.PickOneCube(f); err != nil {
		t.Fatalf("referenced node was collected: %v", err)
	}
	e.Release(f)
}

func TestXorNRequiresTwoOperands(t *testing.T) {
	e := newEngine(t, 2)
	e.XorN(e.Var(0))
	if e.Error() == nil {
		t.Errorf("XorN with a single operand should report an error")
	}
}
