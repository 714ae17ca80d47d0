package contract

import (
	"context"
	"testing"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/port"
	"github.com/dekarrin/ltlc/typelattice"
	"github.com/dekarrin/ltlc/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContract(t *testing.T, reg *attribute.Registry, name string, inputs, outputs []PortSpec, a, g string, saturated bool) *Contract {
	t.Helper()
	c, err := New(name, inputs, outputs, a, g, ltl.BaseSymbolSet(), "ctx", reg, saturated, true)
	require.NoError(t, err)
	return c
}

func Test_New_BuildsPortsFromSource(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg,
		"C",
		[]PortSpec{{Name: "a"}},
		[]PortSpec{{Name: "b"}},
		"a", "a -> b", true,
	)

	p, ok := c.Port("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.BaseName())
	q, ok := c.Port("b")
	require.True(t, ok)
	assert.Equal(t, "b", q.BaseName())
}

func Test_New_UnsaturatedGuaranteeIsRewritten(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, nil, "a", "a", false)

	bin, ok := c.G.(*ltl.BinaryFormula)
	require.True(t, ok)
	assert.Equal(t, ltl.Or, bin.Op)
	_, isNot := bin.Left().(*ltl.UnaryFormula)
	assert.True(t, isNot)
}

func Test_New_OverlappingInputOutput_Errors(t *testing.T) {
	reg := attribute.NewRegistry()
	_, err := New("C", []PortSpec{{Name: "a"}}, []PortSpec{{Name: "a"}}, "a", "a", ltl.BaseSymbolSet(), "ctx", reg, true, true)
	assert.Error(t, err)
}

func Test_New_InferPorts_AllLiteralsDeclared_Succeeds(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}, {Name: "b"}}, nil, "a & b", "a & b", true)

	p, _ := c.Port("a")
	q, _ := c.Port("b")
	assert.NotNil(t, p)
	assert.NotNil(t, q)
}

func Test_New_InferPorts_NoMatchingPort_Errors(t *testing.T) {
	reg := attribute.NewRegistry()
	_, err := New("C", []PortSpec{{Name: "a"}}, nil, "a & b", "a & b", ltl.BaseSymbolSet(), "ctx", reg, true, true)
	assert.Error(t, err)
}

func Test_BoundedIntPortSpec_DeclaresIntType(t *testing.T) {
	reg := attribute.NewRegistry()
	lo, hi := 0, 10
	c := newContract(t, reg, "C", []PortSpec{{Name: "x", Lower: &lo, Upper: &hi}}, nil, "x > 0", "x > 0", true)

	p, ok := c.Port("x")
	require.True(t, ok)
	assert.Equal(t, typelattice.Int, p.Type().Kind)
}

func Test_Copy_ProducesDisjointLiteralIdentities(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, []PortSpec{{Name: "b"}}, "a", "a -> b", true)

	cp, err := c.Copy()
	require.NoError(t, err)

	origPort, _ := c.Port("a")
	copyPort, _ := cp.Port("a")
	assert.NotEqual(t, origPort.Literal().UniqueName(), copyPort.Literal().UniqueName())
	assert.Equal(t, "a", copyPort.BaseName())
}

func Test_Copy_PreservesInternalLiteralSharing(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, []PortSpec{{Name: "b"}}, "a", "a -> b", true)

	// simulate internal sharing: port "a" and the literal in G both resolve
	// to the same identity already, by construction (infer_ports bound them).
	cp, err := c.Copy()
	require.NoError(t, err)

	// Copy reparses the printed unique names, so the copy's literals are
	// keyed by the original literal's unique name, not by "a".
	key := mustPort(t, c, "a").Literal().UniqueName()
	aLit := ltl.GetLiteralItems(cp.A)[key]
	gLits := ltl.GetLiteralItems(cp.G)
	var gLit *ltl.LiteralFormula
	for base, l := range gLits {
		if base == key {
			gLit = l
		}
	}
	require.NotNil(t, aLit)
	require.NotNil(t, gLit)
	assert.Equal(t, aLit.UniqueName(), gLit.Attribute().Resolve().UniqueName())
}

func Test_Compose_ConjoinsAssumptionsAndGuarantees(t *testing.T) {
	reg := attribute.NewRegistry()
	c1 := newContract(t, reg, "C1", []PortSpec{{Name: "a"}}, []PortSpec{{Name: "b"}}, "a", "a -> b", true)
	c2 := newContract(t, reg, "C2", []PortSpec{{Name: "b"}}, []PortSpec{{Name: "c"}}, "b", "b -> c", true)

	mapping := NewCompositionMapping(c1, c2)
	require.NoError(t, mapping.Connect(mustPort(t, c1, "b"), mustPort(t, c2, "b")))

	composed, err := Compose("C1xC2", []*Contract{c1, c2}, mapping, "ctx", reg)
	require.NoError(t, err)

	_, hasA := composed.Port("a")
	_, hasC := composed.Port("c")
	assert.True(t, hasA)
	assert.True(t, hasC)
	assert.Len(t, composed.Origin(), 2)
}

func Test_Compose_TwoOutputsSameName_IsPortConnectionError(t *testing.T) {
	reg := attribute.NewRegistry()
	c1 := newContract(t, reg, "C1", nil, []PortSpec{{Name: "out"}}, "TRUE", "out", true)
	c2 := newContract(t, reg, "C2", nil, []PortSpec{{Name: "out"}}, "TRUE", "out", true)

	mapping := NewCompositionMapping(c1, c2)
	require.NoError(t, mapping.Connect(mustPort(t, c1, "out"), mustPort(t, c2, "out")))

	_, err := Compose("bad", []*Contract{c1, c2}, mapping, "ctx", reg)
	assert.Error(t, err)
}

func Test_Compose_UnresolvedBaseNameCollision_IsPortMappingError(t *testing.T) {
	reg := attribute.NewRegistry()
	c1 := newContract(t, reg, "C1", []PortSpec{{Name: "x"}}, nil, "x", "x", true)
	c2 := newContract(t, reg, "C2", nil, []PortSpec{{Name: "x"}}, "TRUE", "x", true)

	mapping := NewCompositionMapping(c1, c2)
	_, err := Compose("bad", []*Contract{c1, c2}, mapping, "ctx", reg)
	assert.Error(t, err)
}

func Test_ConnectToPort_RequiresOwnership(t *testing.T) {
	reg := attribute.NewRegistry()
	c1 := newContract(t, reg, "C1", []PortSpec{{Name: "a"}}, nil, "a", "a", true)
	c2 := newContract(t, reg, "C2", []PortSpec{{Name: "x"}}, nil, "x", "x", true)

	pa, _ := c1.Port("a")
	px, _ := c2.Port("x")

	assert.Error(t, c2.ConnectToPort(pa, px))
}

func Test_IsCompatible_SatisfiableAssumption(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, nil, "a", "a", true)

	ok, err := c.IsCompatible(context.Background(), verify.Fake{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_IsConsistent_UnsatisfiableConjunction(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, nil, "a", "! a", true)

	ok, err := c.IsConsistent(context.Background(), verify.Fake{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_IsRefinement_SelfRefinesItself(t *testing.T) {
	reg := attribute.NewRegistry()
	c := newContract(t, reg, "C", []PortSpec{{Name: "a"}}, []PortSpec{{Name: "b"}}, "a", "a -> b", true)

	ok, err := c.IsRefinement(context.Background(), c, verify.Fake{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func mustPort(t *testing.T, c *Contract, base string) *port.Port {
	t.Helper()
	p, ok := c.Port(base)
	require.True(t, ok)
	return p
}
