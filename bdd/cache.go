// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// opcache kind tags, so a single map can serve apply, not, ite and
// exist/forall without the keys of one operation colliding with another's.
// Replace does not use this cache; it memoizes within each call.
type opTag uint8

const (
	tagApply opTag = iota
	tagNot
	tagIte
	tagQuant
	tagAppex
	tagReplace
)

// opkey identifies a memoized (operation, operands) pair. Quantification
// stores the sub-cube of variables still to abstract in b, so that two
// quantifications over different variable sets never share an entry; ite
// stores its third operand in c.
type opkey struct {
	tag   opTag
	op    Operator
	a, b  Node
	c     int32
}

func (e *Engine) matchcache(k opkey) (Node, bool) {
	n, ok := e.opcache[k]
	return n, ok
}

func (e *Engine) setcache(k opkey, res Node) Node {
	e.opcache[k] = res
	return res
}
