package model

import (
	"runtime"

	"github.com/dalzilio/symctl/bdd"
)

// Predicate is a set of states, carried as either its u-form BDD or its
// v-form BDD plus a discriminator. Exactly one of the two active-form
// fields is meaningful at any time; the other holds the constant-false
// placeholder.
type Predicate struct {
	space   *StateSpace
	pu      bdd.Node
	pv      bdd.Node
	isURepr bool
}

// active returns the BDD currently in force for p, without regard to form.
func (p *Predicate) active() bdd.Node {
	if p.isURepr {
		return p.pu
	}
	return p.pv
}

// newUPredicate and newVPredicate wrap a raw BDD as, respectively, a u-form
// or v-form Predicate, taking ownership of the one reference its producer
// (an Apply/Not/Exist/... call, which always returns a freshly retnode'd
// handle) already holds on n. A finalizer hands that reference back to the
// engine when the Go wrapper is collected, so callers get move/copy value
// semantics instead of having to call Release by hand.
func newUPredicate(space *StateSpace, n bdd.Node) *Predicate {
	p := &Predicate{space: space, pu: n, pv: space.engine.False(), isURepr: true}
	runtime.SetFinalizer(p, func(p *Predicate) { p.space.engine.Release(p.pu) })
	return p
}

func newVPredicate(space *StateSpace, n bdd.Node) *Predicate {
	p := &Predicate{space: space, pu: space.engine.False(), pv: n, isURepr: false}
	runtime.SetFinalizer(p, func(p *Predicate) { p.space.engine.Release(p.pv) })
	return p
}

// TrueP returns the predicate satisfied by every state, in u-form.
func TrueP(space *StateSpace) *Predicate {
	return newUPredicate(space, space.engine.True())
}

// FalseP returns the predicate satisfied by no state, in u-form.
func FalseP(space *StateSpace) *Predicate {
	return newUPredicate(space, space.engine.False())
}

// VarP returns the u-form predicate "state bit i is set".
func VarP(space *StateSpace, i int) (*Predicate, error) {
	if i < 0 || i >= space.bits {
		return nil, newError(ErrParse, "VarP: variable index %d out of range [0,%d)", i, space.bits)
	}
	return newUPredicate(space, space.engine.Var(2*i)), nil
}

// StateSpace returns the StateSpace p was built against.
func (p *Predicate) StateSpace() *StateSpace { return p.space }

// IsURepr reports whether p's active representation is u-form.
func (p *Predicate) IsURepr() bool { return p.isURepr }

// GetBDD returns a canonical u-form BDD for p, renaming from v-form if
// needed. Used by DOT export and by State.FromPredicate.
func (p *Predicate) GetBDD() bdd.Node {
	if p.isURepr {
		return p.pu
	}
	return p.space.renameVtoU(p.pv)
}

// SwapForm renames p into the opposite parity and back, returning a
// Predicate in the same active form as p. Used to test that the rename
// gadget is its own inverse: p == p.SwapForm() for every p.
func (p *Predicate) SwapForm() *Predicate {
	if p.isURepr {
		v := p.space.renameUtoV(p.pu)
		return newUPredicate(p.space, p.space.renameVtoU(v))
	}
	u := p.space.renameVtoU(p.pv)
	return newVPredicate(p.space, p.space.renameUtoV(u))
}

// Not negates p, preserving its active form.
func Not(p *Predicate) *Predicate {
	e := p.space.engine
	if p.isURepr {
		return newUPredicate(p.space, e.Not(p.pu))
	}
	return newVPredicate(p.space, e.Not(p.pv))
}

// combine implements the active-form dispatch table from the design notes:
// if both operands are v-form the result stays v-form; otherwise any
// v-form operand is renamed to u-form first and the result is u-form.
func combine(p, q *Predicate, op func(*bdd.Engine, bdd.Node, bdd.Node) bdd.Node) (*Predicate, error) {
	if err := requireSameWidth(p.space, q.space); err != nil {
		return nil, err
	}
	space := p.space
	e := space.engine
	if !p.isURepr && !q.isURepr {
		return newVPredicate(space, op(e, p.pv, q.pv)), nil
	}
	pu := p.pu
	if !p.isURepr {
		pu = space.renameVtoU(p.pv)
	}
	qu := q.pu
	if !q.isURepr {
		qu = space.renameVtoU(q.pv)
	}
	return newUPredicate(space, op(e, pu, qu)), nil
}

// And returns the conjunction of p and q.
func And(p, q *Predicate) (*Predicate, error) {
	return combine(p, q, func(e *bdd.Engine, a, b bdd.Node) bdd.Node { return e.And(a, b) })
}

// Or returns the disjunction of p and q.
func Or(p, q *Predicate) (*Predicate, error) {
	return combine(p, q, func(e *bdd.Engine, a, b bdd.Node) bdd.Node { return e.Or(a, b) })
}

// Xor returns the symmetric difference of p and q.
func Xor(p, q *Predicate) (*Predicate, error) {
	return combine(p, q, func(e *bdd.Engine, a, b bdd.Node) bdd.Node { return e.Xor(a, b) })
}

// AndN folds And across zero or more predicates over space, returning
// TrueP(space) for the empty case.
func AndN(space *StateSpace, ps ...*Predicate) (*Predicate, error) {
	res := TrueP(space)
	for _, p := range ps {
		var err error
		res, err = And(res, p)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// OrN folds Or across zero or more predicates over space, returning
// FalseP(space) for the empty case.
func OrN(space *StateSpace, ps ...*Predicate) (*Predicate, error) {
	res := FalseP(space)
	for _, p := range ps {
		var err error
		res, err = Or(res, p)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// XorN folds Xor left-to-right across ps, requiring at least two operands
// (the n-ary xor of a single predicate is not a well-defined reduction).
func XorN(ps ...*Predicate) (*Predicate, error) {
	if len(ps) < 2 {
		return nil, newError(ErrParse, "XorN: need at least two operands, got %d", len(ps))
	}
	res := ps[0]
	for _, p := range ps[1:] {
		var err error
		res, err = Xor(res, p)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Equal reports whether p and q denote the same set of states, regardless
// of their active forms: same-form predicates compare their active BDDs
// by pointer identity; mixed-form predicates are equal iff their symmetric
// difference, identified through var_eq_bdd, is empty.
func Equal(p, q *Predicate) (bool, error) {
	if err := requireSameWidth(p.space, q.space); err != nil {
		return false, err
	}
	if p.isURepr == q.isURepr {
		return p.active() == q.active(), nil
	}
	e := p.space.engine
	diff := e.And(e.Xor(p.active(), q.active()), p.space.varEq)
	return diff == e.False(), nil
}

// IsTrue reports whether p is the constant-true predicate. Constants do not
// depend on the active form, so no rename is needed.
func (p *Predicate) IsTrue() bool { return p.active() == p.space.engine.True() }

// IsFalse reports whether p is the constant-false predicate.
func (p *Predicate) IsFalse() bool { return p.active() == p.space.engine.False() }

// Implies reports whether p logically implies q (p AND NOT q is empty).
func Implies(p, q *Predicate) (bool, error) {
	np := Not(q)
	conj, err := And(p, np)
	if err != nil {
		return false, err
	}
	return conj.IsFalse(), nil
}
