// Package model implements the dual-representation predicate algebra and
// CTL/fair-CTL fixed-point evaluators that sit on top of the bdd package's
// ROBDD engine.
package model

import "github.com/dalzilio/symctl/bdd"

// StateSpace is the immutable description of a fixed-width boolean state:
// the bit width plus the three BDDs every Predicate and Transition over
// that width shares. Variable indices are interleaved so that state bit i
// has a u-copy (present state) at even level 2*i and a v-copy (next state)
// at odd level 2*i+1.
type StateSpace struct {
	engine *bdd.Engine
	bits   int

	varEq bdd.Node // u and v denote the same state: AND_i (u_i <=> v_i)
	cubeU bdd.Node // AND_i u_i
	cubeV bdd.Node // AND_i v_i
}

// NewStateSpace builds a StateSpace of the given bit width over engine. The
// engine must have been created with at least 2*bits variables (u_i at
// 2*i, v_i at 2*i+1).
func NewStateSpace(engine *bdd.Engine, bits int) (*StateSpace, error) {
	if bits <= 0 {
		return nil, newError(ErrParse, "NewStateSpace: bit width must be positive, got %d", bits)
	}
	if engine.Varnum() < 2*bits {
		return nil, newError(ErrResource, "NewStateSpace: engine has %d variables, need at least %d for %d bits", engine.Varnum(), 2*bits, bits)
	}
	var ucube, vcube []int
	varEq := engine.True()
	for i := 0; i < bits; i++ {
		u, v := 2*i, 2*i+1
		ucube = append(ucube, u)
		vcube = append(vcube, v)
		varEq = engine.And(varEq, engine.Equiv(engine.Var(u), engine.Var(v)))
	}
	if err := engine.Error(); err != nil {
		return nil, err
	}
	sp := &StateSpace{
		engine: engine,
		bits:   bits,
		varEq:  engine.AddRef(varEq),
		cubeU:  engine.AddRef(engine.Cube(ucube...)),
		cubeV:  engine.AddRef(engine.Cube(vcube...)),
	}
	return sp, nil
}

// Bits returns the state bit width.
func (s *StateSpace) Bits() int { return s.bits }

// Engine returns the ROBDD engine backing this StateSpace.
func (s *StateSpace) Engine() *bdd.Engine { return s.engine }

// sameWidth reports whether s and other describe interchangeable state
// spaces (equal bit width); per the data model, StateSpace equality is
// defined purely on Bits.
func (s *StateSpace) sameWidth(other *StateSpace) bool {
	return s != nil && other != nil && s.bits == other.bits
}

// requireSameWidth is the validation every binary Predicate/Transition
// operator runs before combining its operands.
func requireSameWidth(a, b *StateSpace) error {
	if !a.sameWidth(b) {
		return newError(ErrDomainMismatch, "domain mismatch: state spaces of width %d and %d", a.bits, b.bits)
	}
	return nil
}

// renameVtoU rewrites a v-form BDD into the corresponding u-form one, using
// the equality relation as a bidirectional renaming gadget:
// exists v. (p_v AND var_eq_bdd).
func (s *StateSpace) renameVtoU(pv bdd.Node) bdd.Node {
	return s.engine.Exist(s.engine.And(pv, s.varEq), s.cubeV)
}

// renameUtoV is the symmetric counterpart of renameVtoU, used by
// Predicate.SwapForm and by Transition construction.
func (s *StateSpace) renameUtoV(pu bdd.Node) bdd.Node {
	return s.engine.Exist(s.engine.And(pu, s.varEq), s.cubeU)
}
