package sexpr

import (
	"github.com/dalzilio/symctl/bdd"
	"github.com/dalzilio/symctl/model"
)

// BuildPredicate lowers an initial-predicate-grammar expression (§6):
//
//	true | false | (and p p …) | (or p p …) | (xor p p …) | (not p) | (var <i>)
//
// into a u-form model.Predicate over space. The same grammar and builder
// serve both the system's init predicate and each entry of its fairness
// list.
func BuildPredicate(space *model.StateSpace, v Value) (*model.Predicate, error) {
	switch {
	case v.IsSymbol("true"):
		return model.TrueP(space), nil
	case v.IsSymbol("false"):
		return model.FalseP(space), nil
	case v.Type == ValList && len(v.List) > 0:
		head := v.List[0]
		args := v.List[1:]
		switch {
		case head.IsSymbol("var"):
			if len(args) != 1 {
				return nil, newError(ErrArity, v.String(), "var takes exactly one argument, got %d", len(args))
			}
			i, err := varIndex(args[0], space.Bits())
			if err != nil {
				return nil, err
			}
			return model.VarP(space, i)
		case head.IsSymbol("not"):
			if len(args) != 1 {
				return nil, newError(ErrArity, v.String(), "not takes exactly one argument, got %d", len(args))
			}
			p, err := BuildPredicate(space, args[0])
			if err != nil {
				return nil, err
			}
			return model.Not(p), nil
		case head.IsSymbol("and"), head.IsSymbol("or"), head.IsSymbol("xor"):
			ps, err := buildPredicateList(space, v, head.Symbol, args)
			if err != nil {
				return nil, err
			}
			switch head.Symbol {
			case "and":
				return model.AndN(space, ps...)
			case "or":
				return model.OrN(space, ps...)
			default:
				return model.XorN(ps...)
			}
		}
		return nil, newError(ErrSymbol, v.String(), "unknown predicate function %q", head.String())
	}
	return nil, newError(ErrSyntax, v.String(), "expected true, false, or a predicate form")
}

func buildPredicateList(space *model.StateSpace, whole Value, op string, args []Value) ([]*model.Predicate, error) {
	if len(args) < 2 {
		return nil, newError(ErrArity, whole.String(), "%s takes at least two arguments, got %d", op, len(args))
	}
	ps := make([]*model.Predicate, len(args))
	for i, a := range args {
		p, err := BuildPredicate(space, a)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

func varIndex(v Value, nbits int) (int, error) {
	if v.Type != ValNumber {
		return 0, newError(ErrInteger, v.String(), "expected a variable index")
	}
	if v.Number < 0 || v.Number >= nbits {
		return 0, newError(ErrRange, v.String(), "variable index %d out of range [0,%d)", v.Number, nbits)
	}
	return v.Number, nil
}

// BuildTransRelation lowers a transition expression (§6): the same
// boolean-connective grammar as BuildPredicate, but with leaves
// (var from|to <i>) referring directly to the u-copy (from) or v-copy (to)
// of state bit i, into the raw u->v relation BDD expected by
// model.NewTransition.
func BuildTransRelation(e *bdd.Engine, nbits int, v Value) (bdd.Node, error) {
	n, err := buildTransNode(e, nbits, v)
	if err != nil {
		return 0, err
	}
	if err := e.Error(); err != nil {
		return 0, err
	}
	return n, nil
}

func buildTransNode(e *bdd.Engine, nbits int, v Value) (bdd.Node, error) {
	switch {
	case v.IsSymbol("true"):
		return e.True(), nil
	case v.IsSymbol("false"):
		return e.False(), nil
	case v.Type == ValList && len(v.List) > 0:
		head := v.List[0]
		args := v.List[1:]
		switch {
		case head.IsSymbol("var"):
			if len(args) != 2 {
				return 0, newError(ErrArity, v.String(), "var takes exactly two arguments (from|to, index), got %d", len(args))
			}
			toVar, err := fromOrTo(args[0])
			if err != nil {
				return 0, err
			}
			i, err := varIndex(args[1], nbits)
			if err != nil {
				return 0, err
			}
			if toVar {
				return e.Var(2*i + 1), nil
			}
			return e.Var(2 * i), nil
		case head.IsSymbol("not"):
			if len(args) != 1 {
				return 0, newError(ErrArity, v.String(), "not takes exactly one argument, got %d", len(args))
			}
			n, err := buildTransNode(e, nbits, args[0])
			if err != nil {
				return 0, err
			}
			return e.Not(n), nil
		case head.IsSymbol("and"), head.IsSymbol("or"), head.IsSymbol("xor"):
			if len(args) < 2 {
				return 0, newError(ErrArity, v.String(), "%s takes at least two arguments, got %d", head.Symbol, len(args))
			}
			nodes := make([]bdd.Node, len(args))
			for i, a := range args {
				n, err := buildTransNode(e, nbits, a)
				if err != nil {
					return 0, err
				}
				nodes[i] = n
			}
			switch head.Symbol {
			case "and":
				return e.AndN(nodes...), nil
			case "or":
				return e.OrN(nodes...), nil
			default:
				return e.XorN(nodes...), nil
			}
		}
		return 0, newError(ErrSymbol, v.String(), "unknown transition function %q", head.String())
	}
	return 0, newError(ErrSyntax, v.String(), "expected true, false, or a transition form")
}

// fromOrTo reports whether the from|to literal in a (var from|to <i>) form
// refers to the v-copy ("to") of the variable, per the resolution of the
// source's to_var ambiguity: to_var=true means the literal is the v-copy.
func fromOrTo(v Value) (bool, error) {
	switch {
	case v.IsSymbol("from"):
		return false, nil
	case v.IsSymbol("to"):
		return true, nil
	default:
		return false, newError(ErrSymbol, v.String(), "expected 'from' or 'to'")
	}
}

// BuildFormula lowers a CTL formula (§6): the boolean connectives of
// BuildPredicate, unary EX EF EG AX AF AG, binary EU ER AU AR, and their
// fairness-qualified counterparts (EX_fair ... AR_fair, routed through
// tr's fair-CTL evaluators), into the model.Predicate denoting its
// satisfying state set under tr.
func BuildFormula(tr *model.Transition, v Value) (*model.Predicate, error) {
	space := tr.StateSpace()
	switch {
	case v.IsSymbol("true"):
		return model.TrueP(space), nil
	case v.IsSymbol("false"):
		return model.FalseP(space), nil
	case v.Type == ValList && len(v.List) > 0:
		head := v.List[0]
		args := v.List[1:]
		if head.Type != ValSymbol {
			return nil, newError(ErrSymbol, v.String(), "expected an operator symbol")
		}
		switch head.Symbol {
		case "var":
			if len(args) != 1 {
				return nil, newError(ErrArity, v.String(), "var takes exactly one argument, got %d", len(args))
			}
			i, err := varIndex(args[0], space.Bits())
			if err != nil {
				return nil, err
			}
			return model.VarP(space, i)
		case "not":
			return unaryBoolOp(tr, v, args, model.Not)
		case "and", "or", "xor":
			return nAryBoolOp(tr, v, head.Symbol, args)
		case "EX":
			return unaryCTLOp(tr, v, args, tr.EX)
		case "EF":
			return unaryCTLOp(tr, v, args, tr.EF)
		case "EG":
			return unaryCTLOp(tr, v, args, tr.EG)
		case "AX":
			return unaryCTLOp(tr, v, args, tr.AX)
		case "AF":
			return unaryCTLOp(tr, v, args, tr.AF)
		case "AG":
			return unaryCTLOp(tr, v, args, tr.AG)
		case "EU":
			return binaryCTLOp(tr, v, args, tr.EU)
		case "ER":
			return binaryCTLOp(tr, v, args, tr.ER)
		case "AU":
			return binaryCTLOp(tr, v, args, tr.AU)
		case "AR":
			return binaryCTLOp(tr, v, args, tr.AR)
		case "EX_fair":
			return unaryCTLOp(tr, v, args, tr.EXFair)
		case "EF_fair":
			return unaryCTLOp(tr, v, args, tr.EFFair)
		case "EG_fair":
			return unaryCTLOp(tr, v, args, tr.EGFair)
		case "AX_fair":
			return unaryCTLOp(tr, v, args, tr.AXFair)
		case "AF_fair":
			return unaryCTLOp(tr, v, args, tr.AFFair)
		case "AG_fair":
			return unaryCTLOp(tr, v, args, tr.AGFair)
		case "EU_fair":
			return binaryCTLOp(tr, v, args, tr.EUFair)
		case "ER_fair":
			return binaryCTLOp(tr, v, args, tr.ERFair)
		case "AU_fair":
			return binaryCTLOp(tr, v, args, tr.AUFair)
		case "AR_fair":
			return binaryCTLOp(tr, v, args, tr.ARFair)
		}
		return nil, newError(ErrSymbol, v.String(), "unknown formula operator %q", head.Symbol)
	}
	return nil, newError(ErrSyntax, v.String(), "expected true, false, or a formula form")
}

func unaryBoolOp(tr *model.Transition, whole Value, args []Value, op func(*model.Predicate) *model.Predicate) (*model.Predicate, error) {
	if len(args) != 1 {
		return nil, newError(ErrArity, whole.String(), "unary operator takes exactly one argument, got %d", len(args))
	}
	p, err := BuildFormula(tr, args[0])
	if err != nil {
		return nil, err
	}
	return op(p), nil
}

func nAryBoolOp(tr *model.Transition, whole Value, op string, args []Value) (*model.Predicate, error) {
	if len(args) < 2 {
		return nil, newError(ErrArity, whole.String(), "%s takes at least two arguments, got %d", op, len(args))
	}
	ps := make([]*model.Predicate, len(args))
	for i, a := range args {
		p, err := BuildFormula(tr, a)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	switch op {
	case "and":
		return model.AndN(tr.StateSpace(), ps...)
	case "or":
		return model.OrN(tr.StateSpace(), ps...)
	default:
		return model.XorN(ps...)
	}
}

func unaryCTLOp(tr *model.Transition, whole Value, args []Value, op func(*model.Predicate) (*model.Predicate, error)) (*model.Predicate, error) {
	if len(args) != 1 {
		return nil, newError(ErrArity, whole.String(), "unary temporal operator takes exactly one argument, got %d", len(args))
	}
	p, err := BuildFormula(tr, args[0])
	if err != nil {
		return nil, err
	}
	return op(p)
}

func binaryCTLOp(tr *model.Transition, whole Value, args []Value, op func(*model.Predicate, *model.Predicate) (*model.Predicate, error)) (*model.Predicate, error) {
	if len(args) != 2 {
		return nil, newError(ErrArity, whole.String(), "binary temporal operator takes exactly two arguments, got %d", len(args))
	}
	f, err := BuildFormula(tr, args[0])
	if err != nil {
		return nil, err
	}
	g, err := BuildFormula(tr, args[1])
	if err != nil {
		return nil, err
	}
	return op(f, g)
}

// BuildFairnessList lowers the optional fairness list of a System into
// model.Predicates and attaches them to tr.
func BuildFairnessList(tr *model.Transition, exprs []Value) error {
	space := tr.StateSpace()
	for _, e := range exprs {
		p, err := BuildPredicate(space, e)
		if err != nil {
			return err
		}
		if err := tr.AddFairness(p); err != nil {
			return err
		}
	}
	return nil
}
