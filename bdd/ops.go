// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Not returns the negation of n.
func (e *Engine) Not(n Node) Node {
	if e.err != nil {
		return bddfalse
	}
	if !e.checkptr(n) && n > 1 {
		return e.seterror(ErrBadNode, "Not: node %d is not live", n)
	}
	e.initref()
	e.pushref(n)
	res := e.not(n)
	e.popref(1)
	return e.retnode(res)
}

func (e *Engine) not(n Node) Node {
	switch n {
	case bddfalse:
		return bddtrue
	case bddtrue:
		return bddfalse
	}
	k := opkey{tag: tagNot, a: n}
	if res, ok := e.matchcache(k); ok {
		return res
	}
	low := e.pushref(e.not(e.low(n)))
	high := e.pushref(e.not(e.high(n)))
	res, err := e.makenode(e.level(n), low, high)
	e.popref(2)
	if err != nil {
		return e.seterror(ErrResource, "Not: %v", err)
	}
	return e.setcache(k, res)
}

// Apply combines left and right with the binary operator op, one of OPand,
// OPor, OPxor, OPnand, OPnor, OPimp, OPbiimp, OPdiff, OPless or OPinvimp.
func (e *Engine) Apply(left, right Node, op Operator) Node {
	if e.err != nil {
		return bddfalse
	}
	if op < OPand || op > OPinvimp {
		return e.seterror(ErrBadOp, "Apply: operator %v is not a valid binary operator", op)
	}
	e.initref()
	e.pushref(left)
	e.pushref(right)
	res := e.apply(left, right, op)
	e.popref(2)
	return e.retnode(res)
}

func (e *Engine) apply(left, right Node, op Operator) Node {
	switch {
	case left < 2 && right < 2:
		return Node(opres[op][left][right])
	case op == OPand:
		switch {
		case left == right:
			return left
		case left == bddfalse || right == bddfalse:
			return bddfalse
		case left == bddtrue:
			return right
		case right == bddtrue:
			return left
		}
	case op == OPor:
		switch {
		case left == right:
			return left
		case left == bddtrue || right == bddtrue:
			return bddtrue
		case left == bddfalse:
			return right
		case right == bddfalse:
			return left
		}
	case op == OPxor && left == right:
		return bddfalse
	}
	k := opkey{tag: tagApply, op: op, a: left, b: right}
	if res, ok := e.matchcache(k); ok {
		return res
	}
	var lvl int32
	var lo, hi Node
	switch {
	case e.level(left) == e.level(right):
		lvl = e.level(left)
		lo = e.pushref(e.apply(e.low(left), e.low(right), op))
		hi = e.pushref(e.apply(e.high(left), e.high(right), op))
	case left >= 2 && e.level(left) < e.level(right):
		lvl = e.level(left)
		lo = e.pushref(e.apply(e.low(left), right, op))
		hi = e.pushref(e.apply(e.high(left), right, op))
	default:
		lvl = e.level(right)
		lo = e.pushref(e.apply(left, e.low(right), op))
		hi = e.pushref(e.apply(left, e.high(right), op))
	}
	res, err := e.makenode(lvl, lo, hi)
	e.popref(2)
	if err != nil {
		return e.seterror(ErrResource, "Apply: %v", err)
	}
	return e.setcache(k, res)
}

// And is shorthand for Apply(left, right, OPand).
func (e *Engine) And(left, right Node) Node { return e.Apply(left, right, OPand) }

// Or is shorthand for Apply(left, right, OPor).
func (e *Engine) Or(left, right Node) Node { return e.Apply(left, right, OPor) }

// Xor is shorthand for Apply(left, right, OPxor).
func (e *Engine) Xor(left, right Node) Node { return e.Apply(left, right, OPxor) }

// Imp is shorthand for Apply(left, right, OPimp).
func (e *Engine) Imp(left, right Node) Node { return e.Apply(left, right, OPimp) }

// Equiv is shorthand for Apply(left, right, OPbiimp).
func (e *Engine) Equiv(left, right Node) Node { return e.Apply(left, right, OPbiimp) }

// AndN folds And across zero or more nodes, returning True for the empty
// case.
func (e *Engine) AndN(ns ...Node) Node {
	res := bddtrue
	for _, n := range ns {
		res = e.And(res, n)
	}
	return res
}

// OrN folds Or across zero or more nodes, returning False for the empty
// case.
func (e *Engine) OrN(ns ...Node) Node {
	res := bddfalse
	for _, n := range ns {
		res = e.Or(res, n)
	}
	return res
}

// XorN folds Xor left-to-right across ns. It requires at least two operands:
// the exclusive-or of a single function is not well defined as a reduction
// and callers that need "flip on exactly one of these" should say so
// explicitly with two arguments.
func (e *Engine) XorN(ns ...Node) Node {
	if len(ns) < 2 {
		return e.seterror(ErrBadOp, "XorN: need at least two operands, got %d", len(ns))
	}
	res := ns[0]
	for _, n := range ns[1:] {
		res = e.Xor(res, n)
	}
	return res
}

// Ite computes the if-then-else of (cond, then, els): (cond AND then) OR
// (NOT cond AND els).
func (e *Engine) Ite(cond, then, els Node) Node {
	if e.err != nil {
		return bddfalse
	}
	e.initref()
	e.pushref(cond)
	e.pushref(then)
	e.pushref(els)
	res := e.ite(cond, then, els)
	e.popref(3)
	return e.retnode(res)
}

func (e *Engine) ite(f, g, h Node) Node {
	switch {
	case f == bddtrue:
		return g
	case f == bddfalse:
		return h
	case g == h:
		return g
	case g == bddtrue && h == bddfalse:
		return f
	}
	k := opkey{tag: tagIte, a: f, b: g, c: int32(h)}
	if res, ok := e.matchcache(k); ok {
		return res
	}
	lvl := e.level(f)
	if g >= 2 && e.level(g) < lvl {
		lvl = e.level(g)
	}
	if h >= 2 && e.level(h) < lvl {
		lvl = e.level(h)
	}
	restrict := func(n Node, pos bool) Node {
		if n < 2 || e.level(n) != lvl {
			return n
		}
		if pos {
			return e.high(n)
		}
		return e.low(n)
	}
	lo := e.pushref(e.ite(restrict(f, false), restrict(g, false), restrict(h, false)))
	hi := e.pushref(e.ite(restrict(f, true), restrict(g, true), restrict(h, true)))
	res, err := e.makenode(lvl, lo, hi)
	e.popref(2)
	if err != nil {
		return e.seterror(ErrResource, "Ite: %v", err)
	}
	return e.setcache(k, res)
}

// cubeset converts a cube (a conjunction of positive variable literals, as
// built by Cube) into the sorted level set that quant walks. It assumes n is
// exactly such a cube: every internal node has a false low child.
func (e *Engine) cubeset(n Node) []int32 {
	var levels []int32
	for n > 1 {
		levels = append(levels, e.level(n))
		n = e.high(n)
	}
	return levels
}

// Exist existentially quantifies n over the variables in the cube.
func (e *Engine) Exist(n Node, cube Node) Node {
	return e.quant(n, cube, OPor)
}

// Forall universally quantifies n over the variables in the cube.
func (e *Engine) Forall(n Node, cube Node) Node {
	return e.quant(n, cube, OPand)
}

// quant abstracts n over the variable levels named by cube, combining the
// two branches of each quantified level with combine (OPor for exist, OPand
// for forall).
func (e *Engine) quant(n, cube Node, combine Operator) Node {
	if e.err != nil {
		return bddfalse
	}
	levels := e.cubeset(cube)
	e.initref()
	e.pushref(n)
	e.pushref(cube)
	res := e.doquant(n, cube, levels, combine)
	e.popref(2)
	return e.retnode(res)
}

// doquant walks levels, the level set of cube. The sub-cube still to be
// quantified is carried alongside so the cache key names that exact set.
func (e *Engine) doquant(n, cube Node, levels []int32, combine Operator) Node {
	if n < 2 || len(levels) == 0 {
		return n
	}
	for len(levels) > 0 && levels[0] < e.level(n) {
		levels = levels[1:]
		cube = e.high(cube)
	}
	if len(levels) == 0 {
		return n
	}
	k := opkey{tag: tagQuant, op: combine, a: n, b: cube}
	if res, ok := e.matchcache(k); ok {
		return res
	}
	var res Node
	var err error
	if levels[0] == e.level(n) {
		lo := e.pushref(e.doquant(e.low(n), e.high(cube), levels[1:], combine))
		hi := e.pushref(e.doquant(e.high(n), e.high(cube), levels[1:], combine))
		res = e.pushref(e.apply(lo, hi, combine))
		e.popref(3)
	} else {
		lo := e.pushref(e.doquant(e.low(n), cube, levels, combine))
		hi := e.pushref(e.doquant(e.high(n), cube, levels, combine))
		res, err = e.makenode(e.level(n), lo, hi)
		e.popref(2)
		if err != nil {
			return e.seterror(ErrResource, "quant: %v", err)
		}
	}
	return e.setcache(k, res)
}
