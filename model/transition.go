package model

import (
	"runtime"

	"github.com/dalzilio/symctl/bdd"
)

// Transition is a binary relation on states, carried as both a u->v BDD
// and its structural mirror, the v->u BDD with the u/v roles swapped. The
// mirror is what lets EX/AX alternate form on every application without an
// explicit rename.
type Transition struct {
	space *StateSpace
	tuv   bdd.Node
	tvu   bdd.Node

	fairness []*Predicate

	fairCache      *Predicate
	fairCacheValid bool
}

// swapper builds, on every call, the Replacer swapping every u_i with v_i
// and vice versa; it is what turns a u->v relation into its v->u
// mirror without a bespoke rename per call site.
func swapper(space *StateSpace) (*bdd.Replacer, error) {
	pairs := make(map[int]int, 2*space.bits)
	for i := 0; i < space.bits; i++ {
		u, v := 2*i, 2*i+1
		pairs[u] = v
		pairs[v] = u
	}
	return space.engine.NewReplacer(pairs)
}

// NewTransition builds a Transition from its u->v relation. The v->u
// mirror is derived automatically by swapping every u_i/v_i pair.
func NewTransition(space *StateSpace, tuv bdd.Node) (*Transition, error) {
	r, err := swapper(space)
	if err != nil {
		return nil, err
	}
	e := space.engine
	tvu := e.Replace(tuv, r)
	if err := e.Error(); err != nil {
		return nil, err
	}
	return newTransition(space, e.AddRef(tuv), e.AddRef(tvu)), nil
}

// newTransition wraps a (tuv, tvu) pair, each already carrying its own
// engine reference, and arranges for that reference to be released when the
// Go wrapper is collected.
func newTransition(space *StateSpace, tuv, tvu bdd.Node) *Transition {
	t := &Transition{space: space, tuv: tuv, tvu: tvu}
	runtime.SetFinalizer(t, func(t *Transition) {
		t.space.engine.Release(t.tuv)
		t.space.engine.Release(t.tvu)
	})
	return t
}

// StateSpace returns the StateSpace t was built against.
func (t *Transition) StateSpace() *StateSpace { return t.space }

// combineTransition validates the StateSpaces of a and b and applies op
// componentwise to (tuv, tvu).
func combineTransition(a, b *Transition, op func(*bdd.Engine, bdd.Node, bdd.Node) bdd.Node) (*Transition, error) {
	if err := requireSameWidth(a.space, b.space); err != nil {
		return nil, err
	}
	e := a.space.engine
	return newTransition(a.space, e.AddRef(op(e, a.tuv, b.tuv)), e.AddRef(op(e, a.tvu, b.tvu))), nil
}

// AndTransition returns the intersection of a and b's relations.
func AndTransition(a, b *Transition) (*Transition, error) {
	return combineTransition(a, b, func(e *bdd.Engine, x, y bdd.Node) bdd.Node { return e.And(x, y) })
}

// OrTransition returns the union of a and b's relations.
func OrTransition(a, b *Transition) (*Transition, error) {
	return combineTransition(a, b, func(e *bdd.Engine, x, y bdd.Node) bdd.Node { return e.Or(x, y) })
}

// XorTransition returns the symmetric difference of a and b's relations.
func XorTransition(a, b *Transition) (*Transition, error) {
	return combineTransition(a, b, func(e *bdd.Engine, x, y bdd.Node) bdd.Node { return e.Xor(x, y) })
}

// NotTransition negates both components of t.
func NotTransition(t *Transition) *Transition {
	e := t.space.engine
	return newTransition(t.space, e.AddRef(e.Not(t.tuv)), e.AddRef(e.Not(t.tvu)))
}

// Next computes the one-step successors of a concrete State, as a v-form
// Predicate: exists u. (t_u_v AND state.BddU()).
func (t *Transition) Next(s *State) (*Predicate, error) {
	if err := requireSameWidth(t.space, s.space); err != nil {
		return nil, err
	}
	e := t.space.engine
	succ := e.Exist(e.And(t.tuv, s.BddU()), t.space.cubeU)
	if err := e.Error(); err != nil {
		return nil, err
	}
	return newVPredicate(t.space, e.AddRef(succ)), nil
}

// EX returns the set of states with some successor satisfying p: the
// pre-image of p under t. It alternates p's active form on every call,
// which is what makes EX-chains in the CTL fixpoints cheap.
func (t *Transition) EX(p *Predicate) (*Predicate, error) {
	if err := requireSameWidth(t.space, p.space); err != nil {
		return nil, err
	}
	e := t.space.engine
	var res bdd.Node
	var vform *Predicate
	if p.isURepr {
		res = e.Exist(e.And(t.tvu, p.pu), t.space.cubeU)
		vform = newVPredicate(t.space, e.AddRef(res))
	} else {
		res = e.Exist(e.And(t.tuv, p.pv), t.space.cubeV)
		vform = newUPredicate(t.space, e.AddRef(res))
	}
	if err := e.Error(); err != nil {
		return nil, err
	}
	return vform, nil
}

// AX is the universal dual of EX: the set of states all of whose successors
// satisfy p. Computed directly via universal abstraction rather than as
// Not(EX(Not(p))), to avoid a redundant negation pass.
func (t *Transition) AX(p *Predicate) (*Predicate, error) {
	if err := requireSameWidth(t.space, p.space); err != nil {
		return nil, err
	}
	e := t.space.engine
	var res bdd.Node
	var out *Predicate
	if p.isURepr {
		res = e.Forall(e.Or(e.Not(t.tvu), p.pu), t.space.cubeU)
		out = newVPredicate(t.space, e.AddRef(res))
	} else {
		res = e.Forall(e.Or(e.Not(t.tuv), p.pv), t.space.cubeV)
		out = newUPredicate(t.space, e.AddRef(res))
	}
	if err := e.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsTotal reports whether every state has at least one successor under t:
// forall u. exists v. t_u_v, i.e. the pre-image of True covers every state.
func (t *Transition) IsTotal() bool {
	e := t.space.engine
	hasSucc := e.Exist(t.tuv, t.space.cubeV)
	universal := e.Forall(hasSucc, t.space.cubeU)
	return universal == e.True()
}
