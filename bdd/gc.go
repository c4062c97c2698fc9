// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "math"

// markset is a side-set of node indices visited during the current mark phase;
// we keep it separate from node.level so we never have to steal bits from a
// legitimate variable index.
type markset map[Node]bool

// initref resets the stack of nodes rooted for the duration of a recursive
// operation so intermediate results cannot be swept mid-computation.
func (e *Engine) initref() {
	e.refstack = e.refstack[:0]
}

// pushref roots n until the matching popref, and returns n unchanged so
// calls can be chained: low := e.pushref(e.not(e.low(n))).
func (e *Engine) pushref(n Node) Node {
	e.refstack = append(e.refstack, n)
	return n
}

// popref drops the last count roots pushed by pushref.
func (e *Engine) popref(count int) {
	e.refstack = e.refstack[:len(e.refstack)-count]
}

// gc runs a mark-sweep collection rooted at every node with a positive
// reference count plus whatever is currently on the refstack, then rebuilds
// the free list from the unmarked slots.
func (e *Engine) gc() {
	seen := make(markset, len(e.nodes)/4+1)
	for _, r := range e.refstack {
		e.markrec(r, seen)
	}
	for n := range e.nodes {
		if e.nodes[n].refcou > 0 {
			e.markrec(Node(n), seen)
		}
	}
	e.freeh = 0
	e.freen = 0
	for n := len(e.nodes) - 1; n > 1; n-- {
		if seen[Node(n)] {
			continue
		}
		if e.nodes[n].low == -1 {
			// already free
			e.nodes[n].high = e.freeh
			e.freeh = Node(n)
			e.freen++
			continue
		}
		delete(e.unique, key{e.nodes[n].level, e.nodes[n].low, e.nodes[n].high})
		e.nodes[n].low = -1
		e.nodes[n].high = e.freeh
		e.freeh = Node(n)
		e.freen++
	}
	e.opcache = make(map[opkey]Node, len(e.opcache))
}

func (e *Engine) markrec(n Node, seen markset) {
	if n < 2 || seen[n] || e.nodes[n].low == -1 {
		return
	}
	seen[n] = true
	e.markrec(e.nodes[n].low, seen)
	e.markrec(e.nodes[n].high, seen)
}

// resize doubles the node table (capped by Maxnodeincrease/Maxnodesize),
// chaining the new slots into the free list.
func (e *Engine) resize() error {
	old := len(e.nodes)
	if e.cfg.maxnodesize > 0 && old >= e.cfg.maxnodesize {
		return newError(ErrResource, "node table at maximum capacity (%d)", e.cfg.maxnodesize)
	}
	next := old
	if old > (math.MaxInt32 >> 1) {
		next = math.MaxInt32 - 1
	} else {
		next = old << 1
	}
	if e.cfg.maxnodeincrease > 0 && next > old+e.cfg.maxnodeincrease {
		next = old + e.cfg.maxnodeincrease
	}
	if e.cfg.maxnodesize > 0 && next > e.cfg.maxnodesize {
		next = e.cfg.maxnodesize
	}
	if next <= old {
		return newError(ErrResource, "unable to grow node table past %d slots", old)
	}
	grown := make([]node, next)
	copy(grown, e.nodes)
	for n := old; n < next; n++ {
		grown[n] = node{low: -1, high: Node(n + 1)}
	}
	grown[next-1].high = e.freeh
	e.nodes = grown
	e.freeh = Node(old)
	e.freen += next - old
	if e.cfg.cacheratio > 0 {
		e.opcache = make(map[opkey]Node, (next*e.cfg.cacheratio)/100)
	}
	return nil
}

// GC forces an immediate mark-sweep collection. Callers do not need to call
// this directly; it runs automatically when the node table runs low.
func (e *Engine) GC() {
	e.gc()
}
