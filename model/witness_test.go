package model

import (
	"testing"

	"github.com/dalzilio/symctl/bdd"
)

// TestEUWitnessSoundness checks that every state an EUWitness path visits
// before its last satisfies f, and the last satisfies g, on the mod-2
// counter with f = true, g = u0 (state bit 0 set).
func TestEUWitnessSoundness(t *testing.T) {
	space := newSpace(t, 1)
	tr := buildTransition(t, space, func(e *bdd.Engine) bdd.Node { return e.Xor(e.Var(0), e.Var(1)) })
	u0, err := VarP(space, 0)
	if err != nil {
		t.Fatal(err)
	}
	notU0 := Not(u0)

	path, err := tr.EUWitness(notU0, TrueP(space), u0)
	if err != nil {
		t.Fatalf("EUWitness: %v", err)
	}
	if len(path.States) == 0 {
		t.Fatal("EUWitness returned an empty path")
	}
	for i, s := range path.States[:len(path.States)-1] {
		if !s.SatisfiesPredicate(TrueP(space)) {
			t.Errorf("state %d does not satisfy f", i)
		}
	}
	last := path.States[len(path.States)-1]
	if !last.SatisfiesPredicate(u0) {
		t.Errorf("last state of EUWitness path does not satisfy g")
	}
	for i := 1; i < len(path.States); i++ {
		succ, err := tr.Next(path.States[i-1])
		if err != nil {
			t.Fatal(err)
		}
		if !path.States[i].SatisfiesPredicate(succ) {
			t.Errorf("state %d is not a successor of state %d", i, i-1)
		}
	}
}

// TestEGWitnessSoundness checks that every state on an EGWitness lasso
// satisfies f and that consecutive states (including the wraparound from
// the last state back to the lasso point) are genuine successors.
func TestEGWitnessSoundness(t *testing.T) {
	space := newSpace(t, 1)
	tr := buildTransition(t, space, func(e *bdd.Engine) bdd.Node {
		return e.Or(e.And(e.NVar(0), e.NVar(1)), e.And(e.Var(0), e.Var(1)))
	})
	notU0 := Not(mustVarP(t, space, 0))

	path, err := tr.EGWitness(notU0, notU0)
	if err != nil {
		t.Fatalf("EGWitness: %v", err)
	}
	if !path.Infinite {
		t.Fatal("EGWitness on a self-loop sink should return an infinite lasso")
	}
	for i, s := range path.States {
		if !s.SatisfiesPredicate(notU0) {
			t.Errorf("lasso state %d does not satisfy f", i)
		}
	}
	for i := 1; i < len(path.States); i++ {
		succ, err := tr.Next(path.States[i-1])
		if err != nil {
			t.Fatal(err)
		}
		if !path.States[i].SatisfiesPredicate(succ) {
			t.Errorf("lasso state %d is not a successor of state %d", i, i-1)
		}
	}
	last := path.States[len(path.States)-1]
	loopBack, err := tr.Next(last)
	if err != nil {
		t.Fatal(err)
	}
	if !path.States[path.LassoPoint].SatisfiesPredicate(loopBack) {
		t.Errorf("lasso does not close back to the lasso point")
	}
}

// TestAFCounterexampleSoundness checks that AFCounterexample returns a
// path refuting AF on a self-loop sink that never reaches the target.
func TestAFCounterexampleSoundness(t *testing.T) {
	space := newSpace(t, 1)
	tr := buildTransition(t, space, func(e *bdd.Engine) bdd.Node {
		return e.Or(e.And(e.NVar(0), e.NVar(1)), e.And(e.Var(0), e.Var(1)))
	})
	u0 := mustVarP(t, space, 0)
	notU0 := Not(u0)

	path, err := tr.AFCounterexample(notU0, u0)
	if err != nil {
		t.Fatalf("AFCounterexample: %v", err)
	}
	for i, s := range path.States {
		if s.SatisfiesPredicate(u0) {
			t.Errorf("counterexample state %d satisfies the target, should never", i)
		}
	}
}

func mustVarP(t *testing.T, space *StateSpace, i int) *Predicate {
	t.Helper()
	p, err := VarP(space, i)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
