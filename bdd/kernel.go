// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// _MAXVAR bounds the number of variables an Engine can hold; levels are
// stored in an int32 and we reserve no marking bits here (unlike the
// array-based unique tables this package's ancestor also supported, we mark
// visited nodes with a side-set during GC instead of stealing bits from
// level).
const _MAXVAR = 1<<20 - 1

// Engine is a process-local ROBDD package: a canonical, reference-counted
// node table shared by every Node it produces. The zero value is not usable;
// construct one with New.
type Engine struct {
	varnum int32          // number of declared Boolean variables
	varset [][2]Node      // varset[i] = {Ithvar(i), NIthvar(i)}
	nodes  []node         // node table; slots 0 and 1 are the terminals
	unique map[key]Node   // unique table: (level,low,high) -> node index
	freeh  Node           // head of the free-slot list (0 if none, chained through .high)
	freen  int            // number of free slots
	produced int          // total nodes ever created (debug/Stats only)

	opcache map[opkey]Node // memoized apply/not/ite/exist/forall results

	refstack []Node // nodes rooted for the duration of a recursive operation

	cfg config
	err *Error
}

// New creates an Engine over varnum Boolean variables [0..varnum). Options
// tune the initial and maximum size of the node table and operation cache;
// see Nodesize, Cachesize, Cacheratio, Maxnodesize, Maxnodeincrease and
// Minfreenodes.
func New(varnum int, opts ...Option) (*Engine, error) {
	if varnum < 1 || varnum > _MAXVAR {
		return nil, newError(ErrBadVar, "bad number of variables (%d)", varnum)
	}
	cfg := config{
		nodesize:        2*varnum + 2,
		cachesize:       defaultCachesize,
		minfreenodes:    defaultMinfreenodes,
		maxnodeincrease: defaultMaxnodeincrease,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.nodesize < 2*varnum+2 {
		cfg.nodesize = 2*varnum + 2
	}

	e := &Engine{
		varnum:  int32(varnum),
		varset:  make([][2]Node, varnum),
		opcache: make(map[opkey]Node, cfg.cachesize),
		cfg:     cfg,
	}
	e.initTable(cfg.nodesize)

	for i := int32(0); i < e.varnum; i++ {
		lo, _ := e.makenode(i, bddfalse, bddtrue)
		hi, _ := e.makenode(i, bddtrue, bddfalse)
		e.nodes[lo].refcou = maxRefCount
		e.nodes[hi].refcou = maxRefCount
		e.varset[i] = [2]Node{lo, hi}
	}
	return e, nil
}

// initTable (re)allocates the node table with room for size slots, chaining
// the unused slots into the free list through their high field.
func (e *Engine) initTable(size int) {
	e.nodes = make([]node, size)
	for i := range e.nodes {
		e.nodes[i] = node{low: -1, high: Node(i + 1)}
	}
	e.nodes[size-1].high = 0
	e.unique = make(map[key]Node, size)
	e.nodes[bddfalse] = node{level: e.varnum, low: bddfalse, high: bddfalse, refcou: maxRefCount}
	e.nodes[bddtrue] = node{level: e.varnum, low: bddtrue, high: bddtrue, refcou: maxRefCount}
	e.freeh = 2
	e.freen = size - 2
}

// Varnum returns the number of declared variables.
func (e *Engine) Varnum() int {
	return int(e.varnum)
}

// makenode returns the canonical node for (level,low,high), building one if
// it is not already in the unique table. Reduction rule: a node whose two
// children are equal collapses to that child.
func (e *Engine) makenode(level int32, low, high Node) (Node, error) {
	if low == high {
		return low, nil
	}
	k := key{level, low, high}
	if n, ok := e.unique[k]; ok {
		return n, nil
	}
	if e.freeh == 0 {
		e.gc()
		if (e.freen*100)/len(e.nodes) <= e.cfg.minfreenodes {
			if err := e.resize(); err != nil {
				return -1, err
			}
		}
		if e.freeh == 0 {
			return -1, newError(ErrResource, "node table exhausted")
		}
	}
	n := e.freeh
	e.freeh = e.nodes[n].high
	e.freen--
	e.nodes[n] = node{level: level, low: low, high: high, refcou: 0}
	e.unique[k] = n
	e.produced++
	return n, nil
}

func (e *Engine) level(n Node) int32 { return e.nodes[n].level }
func (e *Engine) low(n Node) Node    { return e.nodes[n].low }
func (e *Engine) high(n Node) Node   { return e.nodes[n].high }

// checkptr reports whether n is a live handle into this engine's table.
func (e *Engine) checkptr(n Node) bool {
	return n >= 0 && int(n) < len(e.nodes) && e.nodes[n].low != -1
}
