// Package verify reduces contract queries to LTL tautology/emptiness checks
// over an external symbolic model checker, following the same
// subprocess-as-opaque-tool idiom the pack uses for external tool
// invocation (command construction, CombinedOutput, typed error wrapping).
package verify

import (
	"context"

	"github.com/dekarrin/ltlc/internal/util"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/typelattice"
)

// BoundK is the canonical bounded-model-checking horizon used by every
// query. It is a tunable constant of the module, not a per-call parameter,
// and is the value the nuXmv command script passes as "-k".
const BoundK = 20

// Var names one free literal a query's formula references, along with the
// type it should be declared as in the rendered module.
type Var struct {
	Name string
	Type typelattice.Type
}

// Result is the verdict of a single tautology or emptiness query.
type Result struct {
	// Holds is true when the formula was found to be a tautology (for a
	// Tautology query) or non-empty (for an Emptiness query).
	Holds bool

	// Bounded is true when Holds was only established up to BoundK steps
	// (the checker neither found a counterexample nor proved the property
	// unconditionally within the bound).
	Bounded bool

	// Trace is non-nil when the checker returned a counterexample. For a
	// Tautology query that comes with Holds false; NuxmvStrategy.Emptiness
	// checks ¬f, so its counterexample is a witness for f and comes with
	// Holds true.
	Trace *Trace

	// Raw is the checker's captured stdout+stderr, kept for diagnostics.
	Raw string
}

// Strategy reduces a query to one invocation of an external verification
// backend. Tautology checks whether f holds on every trace (given vars'
// declared types); Emptiness checks whether some trace satisfies f. ctx
// governs the backend's subprocess, the library's one genuine suspension
// point; cancelling it should abort an in-flight checker invocation.
type Strategy interface {
	Tautology(ctx context.Context, f ltl.Formula, vars []Var) (Result, error)
	Emptiness(ctx context.Context, f ltl.Formula, vars []Var) (Result, error)
}

// VarsFromLiterals builds the Var list a Strategy call needs from a
// formula's free literals, deduplicated by unique name (as required by
// C10's "collect every free literal, deduplicate by unique name" step).
func VarsFromLiterals(lits map[string]*ltl.LiteralFormula) []Var {
	seen := util.NewStringSet()
	var out []Var
	for _, lit := range lits {
		name := lit.UniqueName()
		if seen.Has(name) {
			continue
		}
		seen.Add(name)
		out = append(out, Var{Name: name, Type: lit.Type()})
	}
	return out
}

// Emptiness is a free function wrapping the "emptiness of F" reduction: F is
// non-empty iff ¬F is not a tautology.
func Emptiness(ctx context.Context, s Strategy, f ltl.Formula, vars []Var) (Result, error) {
	return s.Emptiness(ctx, f, vars)
}
