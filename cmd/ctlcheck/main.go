// Command ctlcheck evaluates the CTL properties of a specification file
// (§6) against its transition system and reports, for each property,
// whether it holds on every initial state — printing a witness path for a
// satisfied existential property and a counterexample for a falsified
// universal one.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dalzilio/symctl/bdd"
	"github.com/dalzilio/symctl/model"
	"github.com/dalzilio/symctl/sexpr"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ctlcheck", flag.ContinueOnError)
	dotDir := fs.String("dot", "", "directory to dump a DOT file per evaluated property")
	fairnessRequired := fs.Bool("fairness-required", false, "fail fast if a property needs fairness the spec does not declare")
	nodesize := fs.Int("nodesize", 0, "initial BDD node-table size (0: engine default)")
	cachesize := fs.Int("cachesize", 0, "initial BDD operation-cache size (0: engine default)")
	showStats := fs.Bool("stats", false, "print engine statistics after checking all properties")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ctlcheck [flags] <spec-file>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	specPath := fs.Arg(0)

	content, err := os.ReadFile(specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	sys, err := sexpr.ParseSystem(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: parse error: %v\n", err)
		return 1
	}

	var opts []bdd.Option
	if *nodesize > 0 {
		opts = append(opts, bdd.Nodesize(*nodesize))
	}
	if *cachesize > 0 {
		opts = append(opts, bdd.Cachesize(*cachesize))
	}
	engine, err := bdd.New(2*sys.NBits+2, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	space, err := model.NewStateSpace(engine, sys.NBits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	init, err := sexpr.BuildPredicate(space, sys.Init)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	tuv, err := sexpr.BuildTransRelation(engine, sys.NBits, sys.Trans)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}
	tr, err := model.NewTransition(space, tuv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	if err := sexpr.BuildFairnessList(tr, sys.Fairness); err != nil {
		fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
		return 1
	}

	if *fairnessRequired && len(tr.Fairness()) == 0 {
		for i, prop := range sys.Properties {
			if needsFairness(prop) {
				fmt.Fprintf(os.Stderr, "ctlcheck: property %d uses a fairness-dependent operator but no fairness list was declared\n", i)
				return 1
			}
		}
	}

	if *dotDir != "" {
		if err := os.MkdirAll(*dotDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "ctlcheck: %v\n", err)
			return 1
		}
	}

	failed := false
	for i, prop := range sys.Properties {
		start := time.Now()
		result, err := sexpr.BuildFormula(tr, prop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ctlcheck: property %d: %v\n", i, err)
			return 1
		}
		elapsed := time.Since(start)

		holds, err := model.Implies(init, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ctlcheck: property %d: %v\n", i, err)
			return 1
		}

		status := "unsat"
		if holds {
			status = "sat"
		}
		fmt.Printf("Property %d is %s (%v)\n", i, status, elapsed.Round(time.Microsecond))
		if !holds {
			failed = true
		}

		if err := printPathIfAny(tr, init, prop, result, holds); err != nil {
			fmt.Fprintf(os.Stderr, "ctlcheck: property %d: %v\n", i, err)
			return 1
		}

		if *dotDir != "" {
			dotPath := filepath.Join(*dotDir, fmt.Sprintf("prop%d.dot", i))
			if err := dumpDOT(engine, result.GetBDD(), dotPath); err != nil {
				fmt.Fprintf(os.Stderr, "ctlcheck: property %d: %v\n", i, err)
				return 1
			}
		}
	}

	if *showStats {
		s := engine.Stats()
		fmt.Printf("Engine stats: varnum=%d table=%d inuse=%d free=%d produced=%d cache=%d\n",
			s.Varnum, s.NodeTable, s.NodesInUse, s.FreeNodes, s.Produced, s.CacheSize)
	}

	if failed {
		return 1
	}
	return 0
}

func dumpDOT(e *bdd.Engine, n bdd.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.DumpDOT(f, n)
}

var fairOperators = map[string]bool{
	"EX_fair": true, "EF_fair": true, "EG_fair": true,
	"AX_fair": true, "AF_fair": true, "AG_fair": true,
	"EU_fair": true, "ER_fair": true, "AU_fair": true, "AR_fair": true,
}

// needsFairness reports whether a formula tree uses a fairness-qualified
// temporal operator anywhere in its nesting.
func needsFairness(v sexpr.Value) bool {
	if v.Type != sexpr.ValList || len(v.List) == 0 {
		return false
	}
	if fairOperators[v.List[0].Symbol] {
		return true
	}
	for _, arg := range v.List[1:] {
		if needsFairness(arg) {
			return true
		}
	}
	return false
}

// printPathIfAny emits a witness for a satisfied existential property
// (top operator EF/EG/EU/ER) or a counterexample for a falsified universal
// one (top operator AF/AG/AU/AR), per §6's output contract.
func printPathIfAny(tr *model.Transition, init *model.Predicate, prop sexpr.Value, result *model.Predicate, holds bool) error {
	op, args := topOperator(prop)
	path, err := pathFor(tr, init, op, args, holds)
	if err != nil {
		return err
	}
	if path == nil {
		return nil
	}
	return path.Print(os.Stdout)
}

func topOperator(v sexpr.Value) (string, []sexpr.Value) {
	if v.Type != sexpr.ValList || len(v.List) == 0 {
		return "", nil
	}
	head := v.List[0]
	return head.Symbol, v.List[1:]
}

func pathFor(tr *model.Transition, init *model.Predicate, op string, args []sexpr.Value, holds bool) (*model.Path, error) {
	formula := func(v sexpr.Value) (*model.Predicate, error) { return sexpr.BuildFormula(tr, v) }

	switch {
	case holds && op == "EF" && len(args) == 1:
		f, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		return tr.EFWitness(init, f)
	case holds && op == "EG" && len(args) == 1:
		f, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		return tr.EGWitness(init, f)
	case holds && op == "EU" && len(args) == 2:
		f, g, err := formulaPair(tr, args)
		if err != nil {
			return nil, err
		}
		return tr.EUWitness(init, f, g)
	case holds && op == "ER" && len(args) == 2:
		f, g, err := formulaPair(tr, args)
		if err != nil {
			return nil, err
		}
		return tr.ERWitness(init, f, g)
	case !holds && op == "AF" && len(args) == 1:
		f, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		return tr.AFCounterexample(init, f)
	case !holds && op == "AG" && len(args) == 1:
		f, err := formula(args[0])
		if err != nil {
			return nil, err
		}
		return tr.AGCounterexample(init, f)
	case !holds && op == "AU" && len(args) == 2:
		f, g, err := formulaPair(tr, args)
		if err != nil {
			return nil, err
		}
		return tr.AUCounterexample(init, f, g)
	case !holds && op == "AR" && len(args) == 2:
		f, g, err := formulaPair(tr, args)
		if err != nil {
			return nil, err
		}
		return tr.ARCounterexample(init, f, g)
	}
	return nil, nil
}

func formulaPair(tr *model.Transition, args []sexpr.Value) (*model.Predicate, *model.Predicate, error) {
	f, err := sexpr.BuildFormula(tr, args[0])
	if err != nil {
		return nil, nil, err
	}
	g, err := sexpr.BuildFormula(tr, args[1])
	if err != nil {
		return nil, nil, err
	}
	return f, g, nil
}
