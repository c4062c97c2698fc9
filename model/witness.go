package model

// stateKey builds a map key uniquely identifying a state's bit assignment,
// used by the witness/counterexample generators to detect revisits.
func stateKey(s *State) string {
	bits := s.Assign()
	key := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			key[i] = '1'
		} else {
			key[i] = '0'
		}
	}
	return string(key)
}

// EUWitness produces a finite path demonstrating that some state in init
// satisfies E[f U g]: it starts at any such state, then repeatedly extends
// by picking any successor that stays inside E[f U g] and has not yet been
// visited, which both keeps every intermediate state satisfying f and
// guarantees termination within |S| steps, until a g-state is reached.
func (t *Transition) EUWitness(init, f, g *Predicate) (*Path, error) {
	eu, err := t.EU(f, g)
	if err != nil {
		return nil, err
	}
	start, err := And(init, eu)
	if err != nil {
		return nil, err
	}
	if start.IsFalse() {
		return nil, newError(ErrEmptyPredicate, "EUWitness: E[f U g] does not hold from any initial state")
	}
	cur, err := FromPredicate(start)
	if err != nil {
		return nil, err
	}
	states := []*State{cur}
	visited, err := Or(newVPredicate(init.space, init.space.engine.False()), vform(cur))
	if err != nil {
		return nil, err
	}
	for !cur.SatisfiesPredicate(g) {
		succ, err := t.Next(cur)
		if err != nil {
			return nil, err
		}
		avail, err := And(succ, eu)
		if err != nil {
			return nil, err
		}
		notVisited := Not(visited)
		avail, err = And(avail, notVisited)
		if err != nil {
			return nil, err
		}
		next, err := FromPredicate(avail)
		if err != nil {
			return nil, err
		}
		states = append(states, next)
		visited, err = Or(visited, vform(next))
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return &Path{States: states}, nil
}

// EFWitness reduces to the EU witness with a trivially-true left formula.
func (t *Transition) EFWitness(init, f *Predicate) (*Path, error) {
	return t.EUWitness(init, TrueP(t.space), f)
}

// ERWitness reduces to the EU witness with sub-formulas (f, f AND g): an
// f-and-g state certifies the release.
func (t *Transition) ERWitness(init, f, g *Predicate) (*Path, error) {
	fg, err := And(f, g)
	if err != nil {
		return nil, err
	}
	return t.EUWitness(init, f, fg)
}

// EGWitness produces an infinite (lasso) path demonstrating that some
// state in init satisfies EG(f): it starts at any such state, then
// repeatedly extends by picking any successor still in EG(f) (guaranteed
// non-empty by the greatest-fixpoint definition) until the sequence
// revisits an earlier state, which becomes the lasso point.
func (t *Transition) EGWitness(init, f *Predicate) (*Path, error) {
	eg, err := t.EG(f)
	if err != nil {
		return nil, err
	}
	start, err := And(init, eg)
	if err != nil {
		return nil, err
	}
	if start.IsFalse() {
		return nil, newError(ErrEmptyPredicate, "EGWitness: EG(f) does not hold from any initial state")
	}
	cur, err := FromPredicate(start)
	if err != nil {
		return nil, err
	}
	states := []*State{cur}
	seen := map[string]int{stateKey(cur): 0}
	for {
		succ, err := t.Next(cur)
		if err != nil {
			return nil, err
		}
		avail, err := And(succ, eg)
		if err != nil {
			return nil, err
		}
		next, err := FromPredicate(avail)
		if err != nil {
			return nil, err
		}
		key := stateKey(next)
		if idx, ok := seen[key]; ok {
			return &Path{States: states, Infinite: true, LassoPoint: idx}, nil
		}
		seen[key] = len(states)
		states = append(states, next)
		cur = next
	}
}

// AFCounterexample is a witness of EG(NOT f): a path along which f never
// holds, refuting AF(f).
func (t *Transition) AFCounterexample(init, f *Predicate) (*Path, error) {
	return t.EGWitness(init, Not(f))
}

// AGCounterexample is a witness of EF(NOT f): a path reaching a
// NOT-f state, refuting AG(f).
func (t *Transition) AGCounterexample(init, f *Predicate) (*Path, error) {
	return t.EFWitness(init, Not(f))
}

// AUCounterexample is a witness of E[NOT f R NOT g], refuting AU(f,g).
func (t *Transition) AUCounterexample(init, f, g *Predicate) (*Path, error) {
	return t.ERWitness(init, Not(f), Not(g))
}

// ARCounterexample is a witness of E[NOT f U NOT g], refuting AR(f,g).
func (t *Transition) ARCounterexample(init, f, g *Predicate) (*Path, error) {
	return t.EUWitness(init, Not(f), Not(g))
}

// vform returns a v-form Predicate denoting exactly {s}, for accumulating
// the "already visited" set as a v-form predicate comparable against
// Transition.Next's v-form successor sets.
func vform(s *State) *Predicate {
	return newVPredicate(s.space, s.space.engine.AddRef(s.BddV()))
}
