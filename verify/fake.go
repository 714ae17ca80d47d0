package verify

import (
	"context"

	"github.com/dekarrin/ltlc/ltl"
)

// Fake is an in-memory Strategy used by contract-level tests so they don't
// need an installed model checker. It decides tautology/emptiness the slow
// but dependency-free way: brute-force enumeration of every Bool valuation
// of vars (truth-table evaluation), which is exact for the boolean fragment
// and conservative (reports Bounded) whenever any declared var is non-Bool,
// since a bounded truth table can't speak for an unbounded numeric domain.
type Fake struct{}

var _ Strategy = Fake{}

func (Fake) Tautology(_ context.Context, f ltl.Formula, vars []Var) (Result, error) {
	return evaluateAll(f, vars, true)
}

func (Fake) Emptiness(_ context.Context, f ltl.Formula, vars []Var) (Result, error) {
	res, err := evaluateAll(f, vars, false)
	return res, err
}

// evaluateAll enumerates every assignment of vars' boolean literals and asks
// whether f holds in every one (wantAll=true, tautology) or in at least one
// (wantAll=false, emptiness/satisfiability).
func evaluateAll(f ltl.Formula, vars []Var, wantAll bool) (Result, error) {
	boolVars := make([]string, 0, len(vars))
	hasNonBool := false
	for _, v := range vars {
		if v.Type.Kind == 0 {
			boolVars = append(boolVars, v.Name)
		} else {
			hasNonBool = true
		}
	}

	total := 1 << len(boolVars)
	for mask := 0; mask < total; mask++ {
		assign := make(map[string]bool, len(boolVars))
		for i, name := range boolVars {
			assign[name] = mask&(1<<i) != 0
		}
		val, ok := evalFormula(f, assign)
		if !ok {
			return Result{Bounded: true}, nil
		}
		if wantAll && !val {
			return Result{Holds: false, Bounded: hasNonBool}, nil
		}
		if !wantAll && val {
			return Result{Holds: true, Bounded: hasNonBool}, nil
		}
	}

	if wantAll {
		return Result{Holds: true, Bounded: hasNonBool}, nil
	}
	return Result{Holds: false, Bounded: hasNonBool}, nil
}

// evalFormula evaluates a propositional (non-temporal, non-arithmetic)
// formula under a single static assignment. Temporal operators are treated
// as their single-step propositional projection (Globally/Eventually/Next
// collapse to their operand, Until/Release/WeakUntil are unsupported); this
// is only ever exact for the stateless boolean fragment the Fake strategy is
// meant for, and the second return value is false when it isn't.
func evalFormula(f ltl.Formula, assign map[string]bool) (bool, bool) {
	switch n := f.(type) {
	case ltl.TrueFormula:
		return true, true
	case ltl.FalseFormula:
		return false, true
	case *ltl.LiteralFormula:
		v, ok := assign[n.UniqueName()]
		return v, ok
	case *ltl.UnaryFormula:
		switch n.Op {
		case ltl.Not:
			v, ok := evalFormula(n.Operand(), assign)
			return !v, ok
		case ltl.Globally, ltl.Eventually, ltl.Next:
			return evalFormula(n.Operand(), assign)
		}
		return false, false
	case *ltl.BinaryFormula:
		l, lok := evalFormula(n.Left(), assign)
		r, rok := evalFormula(n.Right(), assign)
		if !lok || !rok {
			return false, false
		}
		switch n.Op {
		case ltl.And:
			return l && r, true
		case ltl.Or:
			return l || r, true
		case ltl.Implies:
			return !l || r, true
		case ltl.Iff:
			return l == r, true
		}
		return false, false
	default:
		return false, false
	}
}
