package verify

import (
	"context"
	"strings"
	"testing"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/typelattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Fake_Tautology_ExcludedMiddle(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewBool())
	f := ltl.NewBinary(ltl.Or, a, ltl.NewUnary(ltl.Not, a), true)

	res, err := Fake{}.Tautology(context.Background(), f, []Var{{Name: a.UniqueName(), Type: typelattice.NewBool()}})
	require.NoError(t, err)
	assert.True(t, res.Holds)
}

func Test_Fake_Tautology_FailsOnContingentFormula(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewBool())

	res, err := Fake{}.Tautology(context.Background(), a, []Var{{Name: a.UniqueName(), Type: typelattice.NewBool()}})
	require.NoError(t, err)
	assert.False(t, res.Holds)
}

func Test_Fake_Emptiness_SatisfiableFormula(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewBool())

	res, err := Fake{}.Emptiness(context.Background(), a, []Var{{Name: a.UniqueName(), Type: typelattice.NewBool()}})
	require.NoError(t, err)
	assert.True(t, res.Holds)
}

func Test_Fake_Emptiness_UnsatisfiableFormula(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewBool())
	f := ltl.NewBinary(ltl.And, a, ltl.NewUnary(ltl.Not, a), true)

	res, err := Fake{}.Emptiness(context.Background(), f, []Var{{Name: a.UniqueName(), Type: typelattice.NewBool()}})
	require.NoError(t, err)
	assert.False(t, res.Holds)
}

func Test_RenderModule_DeclaresVarsAndSpec(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewBool())

	out := renderModule("main", []Var{{Name: a.UniqueName(), Type: typelattice.NewBool()}}, a)
	assert.Contains(t, out, "MODULE main()")
	assert.Contains(t, out, "VAR a_0 : boolean;")
	assert.Contains(t, out, "LTLSPEC (")
}

func Test_RenderModule_FrozenUsesFrozenvar(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.FrozenBool())

	out := renderModule("main", []Var{{Name: a.UniqueName(), Type: typelattice.FrozenBool()}}, a)
	assert.Contains(t, out, "FROZENVAR a_0 : boolean;")
}

func Test_Classify_IsTrueSuffix_Holds(t *testing.T) {
	res, err := classify("-- specification ... is true\n", nil)
	require.NoError(t, err)
	assert.True(t, res.Holds)
	assert.False(t, res.Bounded)
}

func Test_Classify_BoundedTerminationMessage_HoldsBounded(t *testing.T) {
	res, err := classify("some output\n-- terminating with bound 20.\n", nil)
	require.NoError(t, err)
	assert.True(t, res.Holds)
	assert.True(t, res.Bounded)
}

func Test_Classify_CounterexampleOutput_Fails(t *testing.T) {
	raw := "-- specification ... is false\nTrace Type: Counterexample\n-> State: 1.1 <-\n  a_0 = TRUE\n"
	res, err := classify(raw, nil)
	require.NoError(t, err)
	assert.False(t, res.Holds)
	require.NotNil(t, res.Trace)
	assert.Equal(t, 1, res.Trace.Len())
}

func Test_ParseTrace_LassoMarksLoopStart(t *testing.T) {
	raw := strings.Join([]string{
		"Trace Type: Counterexample",
		"-> State: 1.1 <-",
		"  a_0 = TRUE",
		"  b_0 = FALSE",
		"-- Loop starts here",
		"-> State: 1.2 <-",
		"  b_0 = TRUE",
	}, "\n")

	tr := ParseTrace(raw)
	require.NotNil(t, tr)
	require.Equal(t, 2, tr.Len())
	assert.Equal(t, 1, tr.LoopStart)
	assert.Equal(t, true, tr.ValuationAt(1, "a_0"))
	assert.Equal(t, true, tr.ValuationAt(1, "b_0"))
}

func Test_Trace_ToFormula_WrapsEachStateInNext(t *testing.T) {
	raw := strings.Join([]string{
		"Trace Type: Counterexample",
		"-> State: 1.1 <-",
		"  a_0 = TRUE",
		"-> State: 1.2 <-",
		"  a_0 = FALSE",
	}, "\n")
	tr := ParseTrace(raw)
	require.NotNil(t, tr)

	reg := attribute.NewRegistry()
	f := tr.ToFormula(reg, "t", []Var{{Name: "a_0", Type: typelattice.NewBool()}}, 0)
	require.NotNil(t, f)

	bin, ok := f.(*ltl.BinaryFormula)
	require.True(t, ok)
	assert.Equal(t, ltl.And, bin.Op)

	_, ok = bin.Right().(*ltl.UnaryFormula)
	require.True(t, ok, "second state's conjunction should be wrapped in one Next")
}

func Test_Trace_ToModule_RendersInitAndTrans(t *testing.T) {
	raw := strings.Join([]string{
		"Trace Type: Counterexample",
		"-> State: 1.1 <-",
		"  a_0 = TRUE",
		"-> State: 1.2 <-",
		"  a_0 = FALSE",
	}, "\n")
	tr := ParseTrace(raw)
	require.NotNil(t, tr)

	out := tr.ToModule("cex", []Var{{Name: "a_0", Type: typelattice.NewBool()}})
	assert.Contains(t, out, "MODULE cex()")
	assert.Contains(t, out, "INIT")
	assert.Contains(t, out, "state = 1 & a_0 = TRUE")
	assert.Contains(t, out, "TRANS")
}

func Test_Ltl3ba_RejectsNonBooleanVars(t *testing.T) {
	reg := attribute.NewRegistry()
	a := ltl.NewLiteral(reg, "t", "a", typelattice.NewInt(nil, nil))

	_, err := (&Ltl3baStrategy{}).Tautology(context.Background(), a, []Var{{Name: a.UniqueName(), Type: typelattice.NewInt(nil, nil)}})
	assert.Error(t, err)
}

func Test_PostProcess_AppendsPortsAsModuleParams(t *testing.T) {
	raw := "MODULE ltl2smv_1()\nVAR\n  x : boolean;\n"
	out := postProcess(raw, nil, []string{"a_0", "b_0"})
	assert.Contains(t, out, "MODULE ltl2smv_1(a_0, b_0)")
}

func Test_PostProcess_InsertsExtraVarsBeforeVarBlock(t *testing.T) {
	raw := "MODULE ltl2smv_1()\nVAR\n  x : boolean;\n"
	out := postProcess(raw, []Var{{Name: "y_0", Type: typelattice.NewBool()}}, nil)
	idxExtra := strings.Index(out, "VAR y_0")
	idxOwn := strings.Index(out, "VAR\n")
	require.NotEqual(t, -1, idxExtra)
	require.NotEqual(t, -1, idxOwn)
	assert.Less(t, idxExtra, idxOwn)
}
