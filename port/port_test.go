package port

import (
	"testing"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/typelattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_AllocatesLiteralWhenNoneGiven(t *testing.T) {
	reg := attribute.NewRegistry()
	p := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	assert.Equal(t, "x", p.Literal().BaseName())
}

func Test_IsConnectedTo_SharedLiteral(t *testing.T) {
	reg := attribute.NewRegistry()
	p1 := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	p2 := New(reg, "ctx", "x", typelattice.NewBool(), nil)

	assert.False(t, p1.IsConnectedTo(p2), "distinct allocations are not connected until merged")

	require.NoError(t, p1.Merge(p2))
	assert.True(t, p1.IsConnectedTo(p2))
}

func Test_Merge_NarrowsToTighterType(t *testing.T) {
	reg := attribute.NewRegistry()
	lo, hi := 0, 10
	p1 := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	p2 := New(reg, "ctx", "y", typelattice.NewInt(&lo, &hi), nil)

	require.NoError(t, p1.Merge(p2))
	assert.Equal(t, typelattice.Bool, p1.Type().Kind)
	assert.Equal(t, typelattice.Bool, p2.Type().Kind)
}

func Test_Merge_IncomparableTypes_Errors(t *testing.T) {
	reg := attribute.NewRegistry()
	p1 := New(reg, "ctx", "x", typelattice.FrozenBool(), nil)
	p2 := New(reg, "ctx", "y", typelattice.NewBool(), nil)

	assert.Error(t, p1.Merge(p2))
}

func Test_Merge_AlreadyConnected_IsNoOp(t *testing.T) {
	reg := attribute.NewRegistry()
	p1 := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	p2 := New(reg, "ctx", "y", typelattice.NewBool(), nil)
	require.NoError(t, p1.Merge(p2))

	assert.NoError(t, p1.Merge(p2))
}

func Test_Update_RebindsToSurvivor(t *testing.T) {
	reg := attribute.NewRegistry()
	p := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	before := p.Literal().Attribute()

	other := reg.New("ctx", "x", "")
	before.Merge(other)

	assert.Same(t, other, p.Literal().Attribute())
}

func Test_SetContract_OnceOnly(t *testing.T) {
	reg := attribute.NewRegistry()
	p := New(reg, "ctx", "x", typelattice.NewBool(), nil)

	require.NoError(t, p.SetContract("contractA"))
	assert.Error(t, p.SetContract("contractB"))
}

func Test_Reinitialize_DecouplesIdentity(t *testing.T) {
	reg := attribute.NewRegistry()
	p := New(reg, "ctx", "x", typelattice.NewBool(), nil)
	before := p.Literal().Attribute()

	require.NoError(t, p.Reinitialize(nil))

	assert.NotEqual(t, before.UniqueName(), p.Literal().Attribute().UniqueName())
	assert.Same(t, before.Resolve(), p.Literal().Attribute().Resolve())
}
