package model

// AddFairness appends p to t's fairness list, invalidating the cached Fair
// predicate. Transitions are otherwise immutable once constructed.
func (t *Transition) AddFairness(p *Predicate) error {
	if err := requireSameWidth(t.space, p.space); err != nil {
		return err
	}
	t.fairness = append(t.fairness, p)
	t.fairCacheValid = false
	return nil
}

// Fairness returns t's fairness predicates. The returned slice must not be
// modified; use AddFairness to extend it.
func (t *Transition) Fairness() []*Predicate { return t.fairness }

func (t *Transition) requireFairness() error {
	if len(t.fairness) == 0 {
		return newError(ErrEmptyFairness, "fair-CTL operator called on a Transition with no fairness predicates")
	}
	return nil
}

// EGFair is the fairness-aware EG: the greatest fixpoint of
// X |-> f AND AND_j EX(E[f U (F_j AND X)]), starting at True.
func (t *Transition) EGFair(f *Predicate) (*Predicate, error) {
	if err := t.requireFairness(); err != nil {
		return nil, err
	}
	return fixpoint(TrueP(t.space), func(x *Predicate) (*Predicate, error) {
		acc := f
		for _, fj := range t.fairness {
			fjx, err := And(fj, x)
			if err != nil {
				return nil, err
			}
			eu, err := t.EU(f, fjx)
			if err != nil {
				return nil, err
			}
			ex, err := t.EX(eu)
			if err != nil {
				return nil, err
			}
			acc, err = And(acc, ex)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})
}

// Fair returns the set of states that begin some fair path: EG_fair(True).
// The result is cached per Transition and recomputed only after
// AddFairness changes the fairness list.
func (t *Transition) Fair() (*Predicate, error) {
	if t.fairCacheValid {
		return t.fairCache, nil
	}
	fair, err := t.EGFair(TrueP(t.space))
	if err != nil {
		return nil, err
	}
	t.fairCache = fair
	t.fairCacheValid = true
	return fair, nil
}

// EXFair returns EX(fair AND f).
func (t *Transition) EXFair(f *Predicate) (*Predicate, error) {
	if err := t.requireFairness(); err != nil {
		return nil, err
	}
	fair, err := t.Fair()
	if err != nil {
		return nil, err
	}
	ff, err := And(fair, f)
	if err != nil {
		return nil, err
	}
	return t.EX(ff)
}

// EFFair returns EF(fair AND f).
func (t *Transition) EFFair(f *Predicate) (*Predicate, error) {
	if err := t.requireFairness(); err != nil {
		return nil, err
	}
	fair, err := t.Fair()
	if err != nil {
		return nil, err
	}
	ff, err := And(fair, f)
	if err != nil {
		return nil, err
	}
	return t.EF(ff)
}

// EUFair returns E[f U (fair AND g)].
func (t *Transition) EUFair(f, g *Predicate) (*Predicate, error) {
	if err := t.requireFairness(); err != nil {
		return nil, err
	}
	fair, err := t.Fair()
	if err != nil {
		return nil, err
	}
	fg, err := And(fair, g)
	if err != nil {
		return nil, err
	}
	return t.EU(f, fg)
}

// ERFair returns E[(fair AND f) R g].
func (t *Transition) ERFair(f, g *Predicate) (*Predicate, error) {
	if err := t.requireFairness(); err != nil {
		return nil, err
	}
	fair, err := t.Fair()
	if err != nil {
		return nil, err
	}
	ff, err := And(fair, f)
	if err != nil {
		return nil, err
	}
	return t.ER(ff, g)
}

// AXFair is the De Morgan dual of EXFair: NOT EXFair(NOT f).
func (t *Transition) AXFair(f *Predicate) (*Predicate, error) {
	p, err := t.EXFair(Not(f))
	if err != nil {
		return nil, err
	}
	return Not(p), nil
}

// AGFair is the De Morgan dual of EFFair: NOT EFFair(NOT f).
func (t *Transition) AGFair(f *Predicate) (*Predicate, error) {
	p, err := t.EFFair(Not(f))
	if err != nil {
		return nil, err
	}
	return Not(p), nil
}

// AFFair is the De Morgan dual of EGFair: NOT EGFair(NOT f).
func (t *Transition) AFFair(f *Predicate) (*Predicate, error) {
	p, err := t.EGFair(Not(f))
	if err != nil {
		return nil, err
	}
	return Not(p), nil
}

// AUFair is the De Morgan dual of ERFair: NOT ERFair(NOT f, NOT g).
func (t *Transition) AUFair(f, g *Predicate) (*Predicate, error) {
	p, err := t.ERFair(Not(f), Not(g))
	if err != nil {
		return nil, err
	}
	return Not(p), nil
}

// ARFair is the De Morgan dual of EUFair: NOT EUFair(NOT f, NOT g).
func (t *Transition) ARFair(f, g *Predicate) (*Predicate, error) {
	p, err := t.EUFair(Not(f), Not(g))
	if err != nil {
		return nil, err
	}
	return Not(p), nil
}
