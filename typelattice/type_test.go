package typelattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LessEq_Lattice(t *testing.T) {
	assert.True(t, NewBool().LessEq(NewInt(nil, nil)))
	assert.True(t, NewInt(nil, nil).LessEq(NewFloat()))
	assert.True(t, NewBool().LessEq(NewFloat()))
	assert.False(t, NewFloat().LessEq(NewBool()))
	assert.True(t, NewBool().LessEq(NewBool()))
}

func Test_Comparable(t *testing.T) {
	assert.True(t, NewBool().Comparable(NewInt(nil, nil)))
	assert.True(t, NewInt(nil, nil).Comparable(NewBool()))
}

func Test_Frozen_ComparesOnlyToItself(t *testing.T) {
	assert.False(t, FrozenBool().Comparable(NewBool()))
	assert.False(t, NewBool().Comparable(FrozenBool()))
	assert.True(t, FrozenBool().Comparable(FrozenBool()))
	assert.True(t, FrozenBool().Equal(FrozenBool()))
	assert.False(t, FrozenBool().Equal(NewBool()))
}

func Test_Narrower(t *testing.T) {
	n, err := Narrower(NewBool(), NewInt(nil, nil))
	assert.NoError(t, err)
	assert.Equal(t, Bool, n.Kind)

	_, err = Narrower(FrozenBool(), NewInt(nil, nil))
	assert.Error(t, err)
}

func Test_Int_Bounds_Equal(t *testing.T) {
	lo, hi := 0, 10
	a := NewInt(&lo, &hi)
	b := NewInt(&lo, &hi)
	assert.True(t, a.Equal(b))

	hi2 := 11
	c := NewInt(&lo, &hi2)
	assert.False(t, a.Equal(c))
}
