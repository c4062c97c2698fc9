// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// A Replacer is a precomputed variable relabeling: level i of a Node is
// rewritten to Replacer.at(i). It is built once with NewReplacer and reused
// across any number of Replace calls.
type Replacer struct {
	pairing []int32
}

// NewReplacer builds a Replacer that maps variable i to pairs[i] for every
// key present in pairs, and leaves every other variable unchanged. It fails
// if any index in pairs falls outside the engine's declared variable range.
func (e *Engine) NewReplacer(pairs map[int]int) (*Replacer, error) {
	pairing := make([]int32, e.varnum)
	for i := range pairing {
		pairing[i] = int32(i)
	}
	for from, to := range pairs {
		if from < 0 || from >= int(e.varnum) || to < 0 || to >= int(e.varnum) {
			return nil, newError(ErrBadVar, "NewReplacer: pair (%d,%d) out of range [0,%d)", from, to, e.varnum)
		}
		pairing[from] = int32(to)
	}
	return &Replacer{pairing: pairing}, nil
}

func (r *Replacer) at(level int32) int32 {
	if int(level) >= len(r.pairing) {
		return level
	}
	return r.pairing[level]
}

// Replace rewrites every variable of f according to r, rebuilding the
// diagram bottom-up so the result respects the engine's fixed variable
// order regardless of how r permutes levels.
func (e *Engine) Replace(f Node, r *Replacer) Node {
	if e.err != nil {
		return bddfalse
	}
	rep := &replacer{e: e, r: r, seen: make(map[Node]Node), fixed: make(map[fixkey]Node)}
	e.initref()
	e.pushref(f)
	res := rep.replace(f)
	e.popref(1)
	return e.retnode(res)
}

// replacer carries the per-call memo tables: seen avoids recomputing the
// substitution on a shared subgraph, fixed avoids recorrecting an identical
// (level, low, high) triple produced by different callers during the same
// Replace.
type replacer struct {
	e     *Engine
	r     *Replacer
	seen  map[Node]Node
	fixed map[fixkey]Node
}

type fixkey struct {
	level     int32
	low, high Node
}

func (rep *replacer) replace(f Node) Node {
	if f < 2 {
		return f
	}
	if res, ok := rep.seen[f]; ok {
		return res
	}
	e := rep.e
	lo := e.pushref(rep.replace(e.low(f)))
	hi := e.pushref(rep.replace(e.high(f)))
	res := e.pushref(rep.correctify(rep.r.at(e.level(f)), lo, hi))
	e.popref(3)
	rep.seen[f] = res
	return res
}

// correctify builds a node deciding `level` with the given children. Both
// terminals report level == Varnum (see initTable), so comparisons below
// need no special-casing for them.
func (rep *replacer) correctify(level int32, lo, hi Node) Node {
	e := rep.e
	levLo, levHi := e.level(lo), e.level(hi)
	if levLo > level && levHi > level {
		n, err := e.makenode(level, lo, hi)
		if err != nil {
			return e.seterror(ErrResource, "Replace: %v", err)
		}
		return n
	}
	k := fixkey{level, lo, hi}
	if res, ok := rep.fixed[k]; ok {
		return res
	}
	var res Node
	var err error
	switch {
	case levLo == levHi:
		l := e.pushref(rep.correctify(level, e.low(lo), e.low(hi)))
		h := e.pushref(rep.correctify(level, e.high(lo), e.high(hi)))
		res, err = e.makenode(levLo, l, h)
		e.popref(2)
	case levLo < levHi:
		l := e.pushref(rep.correctify(level, e.low(lo), hi))
		h := e.pushref(rep.correctify(level, e.high(lo), hi))
		res, err = e.makenode(levLo, l, h)
		e.popref(2)
	default:
		l := e.pushref(rep.correctify(level, lo, e.low(hi)))
		h := e.pushref(rep.correctify(level, lo, e.high(hi)))
		res, err = e.makenode(levHi, l, h)
		e.popref(2)
	}
	if err != nil {
		return e.seterror(ErrResource, "Replace: %v", err)
	}
	rep.fixed[k] = res
	return res
}
