// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Node is a reference to a vertex in the shared ROBDD node table. The zero
// value is the constant-false terminal; use Engine.False/Engine.True/
// Engine.Var etc. to obtain Nodes. Two Nodes are equal (in the Go == sense) if and only if they
// denote the same Boolean function.
type Node int

// bddfalse and bddtrue are the fixed indices of the two terminal nodes. They
// are never collected and their reference count saturates at maxRefCount.
const (
	bddfalse Node = 0
	bddtrue  Node = 1
)

// node is one vertex of the shared table: a decision on variable `level`,
// with a `low` (false) and `high` (true) branch, and a saturating external
// reference count.
type node struct {
	level  int32
	low    Node
	high   Node
	refcou int32
}

// maxRefCount is the ceiling at which we stop incrementing a node's
// reference count; the two terminals and every declared variable node are
// pinned there so they are never swept.
const maxRefCount int32 = 1<<30 - 1

// key is the (level, low, high) triplet used to find or insert a node in the
// unique table.
type key struct {
	level     int32
	low, high Node
}
