package verify

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/typelattice"
)

// renderModule renders a self-contained SMV module named name: one VAR
// declaration (FROZENVAR for a Frozen type) per entry of vars (left
// otherwise unconstrained, so every
// valuation the declared type admits is a legal run), followed by a single
// LTLSPEC line holding spec rendered in the Nusmv dialect.
//
// Leaving every variable unconstrained is what makes an LTLSPEC check here
// equivalent to a tautology query: nuXmv reports "is true" exactly when spec
// holds across every run the module can produce, which for a module with no
// ASSIGN/TRANS restrictions is every valuation sequence the variable types
// admit.
func renderModule(name string, vars []Var, spec ltl.Formula) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MODULE %s()\n", name)
	for _, v := range vars {
		decl := "VAR"
		if v.Type.Frozen {
			decl = "FROZENVAR"
		}
		fmt.Fprintf(&b, "    %s %s : %s;\n", decl, v.Name, smvTypeOf(v.Type))
	}
	b.WriteString("LTLSPEC (\n    ")
	b.WriteString(ltl.Print(spec, ltl.NusmvSymbolSet(), ltl.IgnorePrecedence()))
	b.WriteString("\n);\n")
	return b.String()
}

func smvTypeOf(t typelattice.Type) string {
	switch t.Kind {
	case typelattice.Bool:
		return "boolean"
	case typelattice.Float:
		return "real"
	default:
		lo, hi := -(1 << 20), 1<<20
		if t.Lower != nil {
			lo = *t.Lower
		}
		if t.Upper != nil {
			hi = *t.Upper
		}
		return fmt.Sprintf("%d..%d", lo, hi)
	}
}

// mathsatCommandScript renders the fixed nuXmv "-source" script: enable
// cone-of-influence reduction and the MathSAT-backed bounded engine, build
// the simplified property, and run the BMC check out to BoundK.
func mathsatCommandScript() string {
	return fmt.Sprintf(
		"set on_failure_script_quits\nset cone_of_influence\ngo_msat\nbuild_simplified_property -n 0\nmsat_check_ltlspec_bmc -n 1 -k %d\nquit\n",
		BoundK,
	)
}
