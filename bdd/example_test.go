// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd_test

import (
	"fmt"

	"github.com/dalzilio/symctl/bdd"
)

// Example_basic shows the basic usage of the package: create an Engine,
// combine a handful of variables and read off the satisfying count.
func Example_basic() {
	e, _ := bdd.New(6, bdd.Nodesize(10000), bdd.Cachesize(3000))
	// vars is the variable set {x2, x3, x5} to quantify over.
	vars := e.Cube(2, 3, 5)
	// n2 == x1 | !x3 | x4
	n2 := e.Or(e.Var(1), e.Or(e.NVar(3), e.Var(4)))
	// n3 == exists x2,x3,x5 . (n2 & x3)
	n3 := e.Exist(e.And(n2, e.Var(3)), vars)
	fmt.Printf("Number of sat. assignments: %s\n", e.Satcount(n3))
	// Output:
	// Number of sat. assignments: 48
}
