package sexpr

import (
	"testing"

	"github.com/dalzilio/symctl/bdd"
	"github.com/dalzilio/symctl/model"
)

func newSpace(t *testing.T, bits int) *model.StateSpace {
	t.Helper()
	e, err := bdd.New(2*bits+2, bdd.Nodesize(2000), bdd.Cachesize(2000))
	if err != nil {
		t.Fatalf("bdd.New: %v", err)
	}
	sp, err := model.NewStateSpace(e, bits)
	if err != nil {
		t.Fatalf("NewStateSpace: %v", err)
	}
	return sp
}

func TestParseSystemModTwoCounter(t *testing.T) {
	src := `
; mod-2 counter, one bit
(system 1
  (var 0)
  (xor (var from 0) (var to 0))
  (properties
    (not (EX (var 0)))
    (AG (or (var 0) (EX (var 0))))))
`
	sys, err := ParseSystem(src)
	if err != nil {
		t.Fatalf("ParseSystem: %v", err)
	}
	if sys.NBits != 1 {
		t.Fatalf("NBits = %d, want 1", sys.NBits)
	}
	if len(sys.Properties) != 2 {
		t.Fatalf("len(Properties) = %d, want 2", len(sys.Properties))
	}
	if len(sys.Fairness) != 0 {
		t.Fatalf("len(Fairness) = %d, want 0", len(sys.Fairness))
	}

	space := newSpace(t, sys.NBits)
	init, err := BuildPredicate(space, sys.Init)
	if err != nil {
		t.Fatalf("BuildPredicate(init): %v", err)
	}
	if !init.IsURepr() {
		t.Errorf("init predicate should be u-form")
	}

	tuv, err := BuildTransRelation(space.Engine(), sys.NBits, sys.Trans)
	if err != nil {
		t.Fatalf("BuildTransRelation: %v", err)
	}
	tr, err := model.NewTransition(space, tuv)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}

	agProp, err := BuildFormula(tr, sys.Properties[1])
	if err != nil {
		t.Fatalf("BuildFormula: %v", err)
	}
	if !agProp.IsTrue() {
		t.Errorf("AG(v0 or EX(v0)) should be the constant-true predicate")
	}
}

func TestParseSystemWithFairness(t *testing.T) {
	src := `(system 1
  (var 0)
  (or (and (not (var from 0)) (not (var to 0))) (and (var from 0) (var to 0)))
  (properties (EG true))
  ((var 0)))`
	sys, err := ParseSystem(src)
	if err != nil {
		t.Fatalf("ParseSystem: %v", err)
	}
	if len(sys.Fairness) != 1 {
		t.Fatalf("len(Fairness) = %d, want 1", len(sys.Fairness))
	}

	space := newSpace(t, sys.NBits)
	tuv, err := BuildTransRelation(space.Engine(), sys.NBits, sys.Trans)
	if err != nil {
		t.Fatalf("BuildTransRelation: %v", err)
	}
	tr, err := model.NewTransition(space, tuv)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}
	if err := BuildFairnessList(tr, sys.Fairness); err != nil {
		t.Fatalf("BuildFairnessList: %v", err)
	}
	if len(tr.Fairness()) != 1 {
		t.Fatalf("len(tr.Fairness()) = %d, want 1", len(tr.Fairness()))
	}
}

func TestFairCTLFormulaOperators(t *testing.T) {
	src := `(system 1
  (var 0)
  (or (and (not (var from 0)) (not (var to 0))) (and (var from 0) (var to 0)))
  (properties (EG_fair true) (AF_fair (var 0)))
  ((var 0)))`
	sys, err := ParseSystem(src)
	if err != nil {
		t.Fatalf("ParseSystem: %v", err)
	}
	space := newSpace(t, sys.NBits)
	tuv, err := BuildTransRelation(space.Engine(), sys.NBits, sys.Trans)
	if err != nil {
		t.Fatalf("BuildTransRelation: %v", err)
	}
	tr, err := model.NewTransition(space, tuv)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}
	if err := BuildFairnessList(tr, sys.Fairness); err != nil {
		t.Fatalf("BuildFairnessList: %v", err)
	}
	for _, prop := range sys.Properties {
		if _, err := BuildFormula(tr, prop); err != nil {
			t.Errorf("BuildFormula(%v): %v", prop, err)
		}
	}
}

func TestFairCTLWithoutFairnessIsEmptyFairnessError(t *testing.T) {
	src := `(system 1 (var 0) (xor (var from 0) (var to 0)) (properties (EG_fair true)))`
	sys, err := ParseSystem(src)
	if err != nil {
		t.Fatalf("ParseSystem: %v", err)
	}
	space := newSpace(t, sys.NBits)
	tuv, err := BuildTransRelation(space.Engine(), sys.NBits, sys.Trans)
	if err != nil {
		t.Fatalf("BuildTransRelation: %v", err)
	}
	tr, err := model.NewTransition(space, tuv)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}
	if _, err := BuildFormula(tr, sys.Properties[0]); err == nil {
		t.Errorf("BuildFormula(EG_fair) with no fairness list should fail")
	}
}

func TestOutOfRangeVarIsParseError(t *testing.T) {
	src := `(system 2 (var 5) (xor (var from 0) (var to 0)) (properties (EF true)))`
	sys, err := ParseSystem(src)
	if err != nil {
		t.Fatalf("ParseSystem: %v", err)
	}
	space := newSpace(t, sys.NBits)
	if _, err := BuildPredicate(space, sys.Init); err == nil {
		t.Errorf("BuildPredicate should reject out-of-range variable index 5")
	} else if serr, ok := err.(*Error); !ok || serr.Kind != ErrRange {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

func TestArityErrors(t *testing.T) {
	cases := []string{
		`(and (var 0))`,
		`(var 0 1)`,
		`(not (var 0) (var 1))`,
	}
	space := newSpace(t, 2)
	for _, src := range cases {
		forms, err := ParseAll(src)
		if err != nil {
			t.Fatalf("ParseAll(%q): %v", src, err)
		}
		if _, err := BuildPredicate(space, forms[0]); err == nil {
			t.Errorf("BuildPredicate(%q) should fail with an arity error", src)
		}
	}
}

func TestUnbalancedParensIsSyntaxError(t *testing.T) {
	if _, err := ParseAll("(system 1 (var 0)"); err == nil {
		t.Errorf("unterminated list should fail to parse")
	}
}
