package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
)

// Trace is a counter-example lifted from a model checker's bounded-run
// output: a sequence of states, each a valuation of every variable the
// query declared.
type Trace struct {
	// States holds one map per time step, name -> textual value exactly as
	// the checker printed it ("TRUE", "FALSE", an integer, or a real).
	States []map[string]string

	// LoopStart is the zero-based index the "-- Loop starts here" marker
	// points at, or -1 if the trace isn't a lasso.
	LoopStart int
}

// ParseTrace scans a raw nuXmv counterexample ("Trace Type: Counterexample",
// then repeating "-> State: i.j <-" blocks of "name = value" lines,
// optionally preceded by a "-- Loop starts here" marker before the lasso
// state). nuXmv only reprints variables that changed since the previous
// state, so each new state is seeded from the one before it.
func ParseTrace(raw string) *Trace {
	lines := strings.Split(raw, "\n")
	tr := &Trace{LoopStart: -1}
	var cur map[string]string
	loopPending := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "-- Loop starts here"):
			loopPending = true
		case strings.HasPrefix(line, "-> State:"):
			prev := cur
			cur = make(map[string]string)
			if prev != nil {
				for k, v := range prev {
					cur[k] = v
				}
			}
			tr.States = append(tr.States, cur)
			if loopPending {
				tr.LoopStart = len(tr.States) - 1
				loopPending = false
			}
		case cur != nil && strings.Contains(line, "="):
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			name := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			cur[name] = val
		}
	}

	if len(tr.States) == 0 {
		return nil
	}
	return tr
}

// ValuationAt returns the value name held at step i as a Go value (bool,
// int, or float64, or the raw text when it is none of these), or nil if i
// is out of range or name is undeclared at that step.
func (t *Trace) ValuationAt(i int, name string) any {
	if t == nil || i < 0 || i >= len(t.States) {
		return nil
	}
	raw, ok := t.States[i][name]
	if !ok {
		return nil
	}
	switch raw {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// Len reports the number of states the trace records.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.States)
}

// ToFormula walks the trace and produces a single formula: a conjunction of
// the per-state valuation conjunctions, each wrapped in i copies of Next
// (X^i) for its step index. If the trace is a lasso and maxHorizon is
// greater than its natural length, the loop body is unrolled (its X-depth
// repeated) until maxHorizon steps are covered. vars names each variable and
// its type; each state's conjunction allocates fresh literals from reg,
// with the variable's name as base name. These literals are not merged with
// the literals of the query formula.
func (t *Trace) ToFormula(reg *attribute.Registry, ctx any, vars []Var, maxHorizon int) ltl.Formula {
	if t == nil || len(t.States) == 0 {
		return ltl.TrueFormula{}
	}

	steps := t.expandedStateOrder(maxHorizon)

	var whole ltl.Formula
	for i, stateIdx := range steps {
		conj := t.stateConjunction(reg, ctx, vars, stateIdx)
		wrapped := wrapNext(conj, i)
		if whole == nil {
			whole = wrapped
		} else {
			whole = ltl.NewBinary(ltl.And, whole, wrapped, false)
		}
	}
	return whole
}

// expandedStateOrder returns the sequence of state indices to visit,
// unrolling the lasso body (LoopStart..len(States)-1) repeatedly until
// maxHorizon steps are produced. With no lasso, or maxHorizon <= the trace's
// own length, it is just 0..len(States)-1.
func (t *Trace) expandedStateOrder(maxHorizon int) []int {
	n := len(t.States)
	if maxHorizon <= 0 || maxHorizon <= n || t.LoopStart < 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	out := make([]int, 0, maxHorizon)
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	for len(out) < maxHorizon {
		for i := t.LoopStart; i < n && len(out) < maxHorizon; i++ {
			out = append(out, i)
		}
	}
	return out
}

func (t *Trace) stateConjunction(reg *attribute.Registry, ctx any, vars []Var, stateIdx int) ltl.Formula {
	var conj ltl.Formula
	for _, v := range vars {
		val := t.ValuationAt(stateIdx, v.Name)
		if val == nil {
			continue
		}
		lit := ltl.NewLiteral(reg, ctx, v.Name, v.Type)
		eq := ltl.NewBinary(ltl.Equality, lit, valuationFormula(val), false)
		if conj == nil {
			conj = eq
		} else {
			conj = ltl.NewBinary(ltl.And, conj, eq, false)
		}
	}
	if conj == nil {
		return ltl.TrueFormula{}
	}
	return conj
}

func valuationFormula(val any) ltl.Formula {
	switch x := val.(type) {
	case bool:
		if x {
			return ltl.TrueFormula{}
		}
		return ltl.FalseFormula{}
	case int:
		return ltl.IntConstant(x)
	case float64:
		return ltl.FloatConstant(x)
	default:
		return ltl.TrueFormula{}
	}
}

func wrapNext(f ltl.Formula, depth int) ltl.Formula {
	for i := 0; i < depth; i++ {
		f = ltl.NewUnary(ltl.Next, f)
	}
	return f
}

// ToModule produces an SMV module named name modelling the trace directly:
// an integer "state" counter, an INIT clause pinning state=1 and every
// variable to its first valuation, one TRANS per state transition guarding
// the next valuation and advancing state, and one closing TRANS on the
// final state: a jump back to LoopStart's state for a lasso, otherwise a
// self-loop.
func (t *Trace) ToModule(name string, vars []Var) string {
	if t == nil || len(t.States) == 0 {
		return fmt.Sprintf("MODULE %s()\n", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MODULE %s()\n", name)
	b.WriteString("    VAR state : 1..")
	fmt.Fprintf(&b, "%d;\n", len(t.States))
	for _, v := range vars {
		fmt.Fprintf(&b, "    VAR %s : %s;\n", v.Name, smvTypeOf(v.Type))
	}

	b.WriteString("    INIT\n        state = 1")
	for _, v := range vars {
		if val, ok := t.States[0][v.Name]; ok {
			fmt.Fprintf(&b, " & %s = %s", v.Name, val)
		}
	}
	b.WriteString(";\n")

	for i := 0; i < len(t.States)-1; i++ {
		next := i + 1
		fmt.Fprintf(&b, "    TRANS\n        state = %d ->", i+1)
		for _, v := range vars {
			if val, ok := t.States[next][v.Name]; ok {
				fmt.Fprintf(&b, " next(%s) = %s &", v.Name, val)
			}
		}
		fmt.Fprintf(&b, " next(state) = %d;\n", next+1)
	}

	last := len(t.States)
	loopTarget := last
	if t.LoopStart >= 0 {
		loopTarget = t.LoopStart + 1
	}
	fmt.Fprintf(&b, "    TRANS\n        state = %d -> next(state) = %d;\n", last, loopTarget)

	return b.String()
}
