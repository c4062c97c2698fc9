// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"math/big"
	"sort"
)

// True returns the constant-true function.
func (e *Engine) True() Node { return bddtrue }

// False returns the constant-false function.
func (e *Engine) False() Node { return bddfalse }

// Const returns True if b is true, False otherwise.
func (e *Engine) Const(b bool) Node {
	if b {
		return bddtrue
	}
	return bddfalse
}

// Var returns the function that is true exactly when variable i is true.
func (e *Engine) Var(i int) Node {
	if i < 0 || i >= int(e.varnum) {
		e.seterror(ErrBadVar, "Var: variable index %d out of range [0,%d)", i, e.varnum)
		return bddfalse
	}
	return e.varset[i][0]
}

// NVar returns the function that is true exactly when variable i is false.
func (e *Engine) NVar(i int) Node {
	if i < 0 || i >= int(e.varnum) {
		e.seterror(ErrBadVar, "NVar: variable index %d out of range [0,%d)", i, e.varnum)
		return bddfalse
	}
	return e.varset[i][1]
}

// Cube builds the conjunction of Var(i) for every i in vars. The result is
// suitable as the second argument to Exist or Forall.
func (e *Engine) Cube(vars ...int) Node {
	if e.err != nil {
		return bddfalse
	}
	sorted := append([]int(nil), vars...)
	sort.Ints(sorted)
	res := bddtrue
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] < 0 || sorted[i] >= int(e.varnum) {
			return e.seterror(ErrBadVar, "Cube: variable index %d out of range [0,%d)", sorted[i], e.varnum)
		}
		if i < len(sorted)-1 && sorted[i] == sorted[i+1] {
			continue
		}
		n, err := e.makenode(int32(sorted[i]), bddfalse, res)
		if err != nil {
			return e.seterror(ErrResource, "Cube: %v", err)
		}
		res = n
	}
	return e.AddRef(res)
}

// IsTrue reports whether n is the constant-true function.
func (e *Engine) IsTrue(n Node) bool { return n == bddtrue }

// IsFalse reports whether n is the constant-false function.
func (e *Engine) IsFalse(n Node) bool { return n == bddfalse }

// retnode commits a genuine reference to n: every public operation that
// hands a Node to its caller routes the return value through here. The
// terminals are already pinned at construction and need no bookkeeping.
func (e *Engine) retnode(n Node) Node {
	if n < 2 {
		return n
	}
	if e.nodes[n].refcou < maxRefCount {
		e.nodes[n].refcou++
	}
	return n
}

// AddRef increments the reference count on n, obligating the caller to a
// matching Release. It returns n unchanged so calls can be chained.
func (e *Engine) AddRef(n Node) Node {
	if !e.checkptr(n) && n > 1 {
		e.seterror(ErrBadNode, "AddRef: node %d is not live", n)
		return n
	}
	return e.retnode(n)
}

// Release drops one reference to n. The underlying node is not reclaimed
// immediately; it becomes eligible for collection the next time the engine
// runs a garbage collection (triggered automatically, or forced with GC).
func (e *Engine) Release(n Node) {
	if n < 2 || !e.checkptr(n) {
		return
	}
	if e.nodes[n].refcou > 0 && e.nodes[n].refcou < maxRefCount {
		e.nodes[n].refcou--
	}
}

// PickOneCube walks n to a single satisfying total assignment of every
// declared variable, following the low branch whenever it is not the
// constant-false child (the high branch otherwise) and defaulting every
// variable n's BDD does not mention to false. It fails on the constant-false function, which has no
// satisfying assignment.
func (e *Engine) PickOneCube(n Node) ([]bool, error) {
	if n == bddfalse {
		return nil, newError(ErrEmptyFunction, "PickOneCube: function is constant false")
	}
	assign := make([]bool, e.varnum)
	cur := n
	for cur != bddtrue {
		lvl := e.level(cur)
		if e.low(cur) != bddfalse {
			cur = e.low(cur)
		} else {
			assign[lvl] = true
			cur = e.high(cur)
		}
	}
	return assign, nil
}

// Satcount returns the number of satisfying total assignments of n over all
// Varnum declared variables. Both terminals carry level Varnum, which is
// what lets satcountrec's gap arithmetic treat them uniformly with internal
// nodes.
func (e *Engine) Satcount(n Node) *big.Int {
	c := e.satcountrec(n)
	return c.Lsh(c, uint(e.level(n)))
}

func (e *Engine) satcountrec(n Node) *big.Int {
	if n == bddfalse {
		return big.NewInt(0)
	}
	if n == bddtrue {
		return big.NewInt(1)
	}
	lo := e.satcountrec(e.low(n))
	lo.Lsh(lo, uint(e.level(e.low(n))-e.level(n)-1))
	hi := e.satcountrec(e.high(n))
	hi.Lsh(hi, uint(e.level(e.high(n))-e.level(n)-1))
	return lo.Add(lo, hi)
}

// Stats reports a snapshot of the engine's node-table and cache usage,
// useful for sizing Nodesize/Cachesize on a repeat run.
type Stats struct {
	Varnum     int
	NodeTable  int
	NodesInUse int
	FreeNodes  int
	Produced   int
	CacheSize  int
}

// Stats returns a snapshot of the engine's current resource usage.
func (e *Engine) Stats() Stats {
	return Stats{
		Varnum:     int(e.varnum),
		NodeTable:  len(e.nodes),
		NodesInUse: len(e.nodes) - e.freen,
		FreeNodes:  e.freen,
		Produced:   e.produced,
		CacheSize:  len(e.opcache),
	}
}
