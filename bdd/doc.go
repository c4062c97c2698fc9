// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Reduced Ordered Binary Decision
Diagrams (ROBDD), a data structure used to efficiently represent Boolean
functions over a fixed set of variables or, equivalently, sets of Boolean
vectors with a fixed size.

Basics

An Engine has a fixed number of variables, Varnum, declared when it is created
with New, and each variable is represented by an (integer) index in the
interval [0..Varnum), called a level. Operations over the Engine return a
Node, an opaque handle to a vertex in the shared, canonical node table. Two
Nodes denote the same function if and only if they are the same handle
(pointer-identity, in the sense of Go's equality on the underlying int).

Reference counting

Unlike a garbage-collected host-language value, a Node does not survive on its
own: every Node obtained from an Engine method carries one unit of that node's
reference count, and the caller owns that unit exclusively. Dropping a handle
without calling Release leaks the node (it cannot be reclaimed by garbage
collection, but it can eventually be reclaimed once its count returns to zero
by some other Release or by GC). Making a second copy of a handle (storing the
same Node in two places) requires AddRef. This mirrors the ownership discipline
of CUDD-style C libraries; Go's garbage collector is not part of the
contract.

Implementation

The engine is a single hashmap-based unique table (no array-with-chaining
alternative, no build tags): a Go map from the triplet (level, low, high) to a
node index. An apply/not/ite/exist/forall result cache speeds up the
recursive algorithms; Replace memoizes within each call instead. When the
node table has no free slot left we run a mark-sweep collector rooted at
every node with a positive reference count, then resize the table if the
share of free slots after collection is at or below Minfreenodes.

The package is written in pure Go, without CGo or any other dependency.
*/
package bdd
