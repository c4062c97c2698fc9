package model

// fixpoint iterates step from start until two successive iterates compare
// equal (Predicate equality, form-insensitive), which termination is
// guaranteed for by finiteness of the state space and monotonicity of
// step: every CTL fixpoint operator below is an instance of this loop.
func fixpoint(start *Predicate, step func(*Predicate) (*Predicate, error)) (*Predicate, error) {
	x := start
	for {
		next, err := step(x)
		if err != nil {
			return nil, err
		}
		eq, err := Equal(x, next)
		if err != nil {
			return nil, err
		}
		if eq {
			return next, nil
		}
		x = next
	}
}

// EF returns the set of states with some path eventually satisfying f:
// least fixpoint of X |-> f OR EX(X), starting at False.
func (t *Transition) EF(f *Predicate) (*Predicate, error) {
	return fixpoint(FalseP(t.space), func(x *Predicate) (*Predicate, error) {
		ex, err := t.EX(x)
		if err != nil {
			return nil, err
		}
		return Or(f, ex)
	})
}

// EG returns the set of states with some path where f holds forever:
// greatest fixpoint of X |-> f AND EX(X), starting at True.
func (t *Transition) EG(f *Predicate) (*Predicate, error) {
	return fixpoint(TrueP(t.space), func(x *Predicate) (*Predicate, error) {
		ex, err := t.EX(x)
		if err != nil {
			return nil, err
		}
		return And(f, ex)
	})
}

// EU returns the set of states with some path where f holds until g holds:
// least fixpoint of X |-> g OR (f AND EX(X)), starting at False.
func (t *Transition) EU(f, g *Predicate) (*Predicate, error) {
	return fixpoint(FalseP(t.space), func(x *Predicate) (*Predicate, error) {
		ex, err := t.EX(x)
		if err != nil {
			return nil, err
		}
		fex, err := And(f, ex)
		if err != nil {
			return nil, err
		}
		return Or(g, fex)
	})
}

// ER returns the set of states with some path where g holds until released
// by f: greatest fixpoint of X |-> g AND (f OR EX(X)), starting at True.
func (t *Transition) ER(f, g *Predicate) (*Predicate, error) {
	return fixpoint(TrueP(t.space), func(x *Predicate) (*Predicate, error) {
		ex, err := t.EX(x)
		if err != nil {
			return nil, err
		}
		fox, err := Or(f, ex)
		if err != nil {
			return nil, err
		}
		return And(g, fox)
	})
}

// AF returns the set of states where every path eventually satisfies f:
// least fixpoint of X |-> f OR AX(X), starting at False.
func (t *Transition) AF(f *Predicate) (*Predicate, error) {
	return fixpoint(FalseP(t.space), func(x *Predicate) (*Predicate, error) {
		ax, err := t.AX(x)
		if err != nil {
			return nil, err
		}
		return Or(f, ax)
	})
}

// AG returns the set of states where every path satisfies f forever:
// greatest fixpoint of X |-> f AND AX(X), starting at True.
func (t *Transition) AG(f *Predicate) (*Predicate, error) {
	return fixpoint(TrueP(t.space), func(x *Predicate) (*Predicate, error) {
		ax, err := t.AX(x)
		if err != nil {
			return nil, err
		}
		return And(f, ax)
	})
}

// AU returns the set of states where every path has f hold until g holds:
// least fixpoint of X |-> g OR (f AND AX(X)), starting at False.
func (t *Transition) AU(f, g *Predicate) (*Predicate, error) {
	return fixpoint(FalseP(t.space), func(x *Predicate) (*Predicate, error) {
		ax, err := t.AX(x)
		if err != nil {
			return nil, err
		}
		fax, err := And(f, ax)
		if err != nil {
			return nil, err
		}
		return Or(g, fax)
	})
}

// AR returns the set of states where every path has g hold until released
// by f: greatest fixpoint of X |-> g AND (f OR AX(X)), starting at True.
func (t *Transition) AR(f, g *Predicate) (*Predicate, error) {
	return fixpoint(TrueP(t.space), func(x *Predicate) (*Predicate, error) {
		ax, err := t.AX(x)
		if err != nil {
			return nil, err
		}
		fox, err := Or(f, ax)
		if err != nil {
			return nil, err
		}
		return And(g, fox)
	})
}
