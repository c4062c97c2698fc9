package model

import (
	"runtime"

	"github.com/dalzilio/symctl/bdd"
)

// State is a concrete assignment to a StateSpace's n bits, with memoised
// u- and v-form BDDs of the corresponding singleton set.
type State struct {
	space  *StateSpace
	assign []bool
	bddU   bdd.Node
	bddV   bdd.Node
}

// NewState builds the State denoting assign, which must have exactly
// space.Bits() entries.
func NewState(space *StateSpace, assign []bool) (*State, error) {
	if len(assign) != space.bits {
		return nil, newError(ErrParse, "NewState: assignment has %d bits, want %d", len(assign), space.bits)
	}
	e := space.engine
	u, v := e.True(), e.True()
	for i, bit := range assign {
		ulit, vlit := e.Var(2*i), e.Var(2*i+1)
		if !bit {
			ulit, vlit = e.NVar(2*i), e.NVar(2*i+1)
		}
		u = e.And(u, ulit)
		v = e.And(v, vlit)
	}
	if err := e.Error(); err != nil {
		return nil, err
	}
	s := &State{
		space:  space,
		assign: append([]bool(nil), assign...),
		bddU:   e.AddRef(u),
		bddV:   e.AddRef(v),
	}
	runtime.SetFinalizer(s, func(s *State) {
		s.space.engine.Release(s.bddU)
		s.space.engine.Release(s.bddV)
	})
	return s, nil
}

// FromPredicate picks any state satisfying p, projecting the engine's
// chosen satisfying assignment onto the even (u) variables. It fails with
// ErrEmptyPredicate when p is the false predicate.
func FromPredicate(p *Predicate) (*State, error) {
	space := p.space
	e := space.engine
	full := p.GetBDD()
	assign, err := e.PickOneCube(full)
	if err != nil {
		return nil, newError(ErrEmptyPredicate, "FromPredicate: %v", err)
	}
	bits := make([]bool, space.bits)
	for i := range bits {
		bits[i] = assign[2*i]
	}
	return NewState(space, bits)
}

// BddU returns the u-form minterm for s: AND_i (assign[i] ? u_i : !u_i).
func (s *State) BddU() bdd.Node { return s.bddU }

// BddV returns the v-form minterm for s: AND_i (assign[i] ? v_i : !v_i).
func (s *State) BddV() bdd.Node { return s.bddV }

// Assign returns the bit assignment of s, indexed 0..Bits()-1. The
// returned slice must not be modified.
func (s *State) Assign() []bool { return s.assign }

// StateSpace returns the StateSpace s was built against.
func (s *State) StateSpace() *StateSpace { return s.space }

// Equal reports whether s and other denote the same assignment.
func (s *State) Equal(other *State) bool {
	if !s.space.sameWidth(other.space) || len(s.assign) != len(other.assign) {
		return false
	}
	for i := range s.assign {
		if s.assign[i] != other.assign[i] {
			return false
		}
	}
	return true
}

// SatisfiesPredicate reports whether s belongs to the set p denotes.
func (s *State) SatisfiesPredicate(p *Predicate) bool {
	e := s.space.engine
	var lit bdd.Node
	if p.isURepr {
		lit = s.bddU
	} else {
		lit = s.bddV
	}
	return e.And(lit, p.active()) != e.False()
}
