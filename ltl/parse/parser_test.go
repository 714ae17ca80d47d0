package parse

import (
	"strings"
	"testing"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	ltllex "github.com/dekarrin/ltlc/ltl/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ltl.Formula {
	t.Helper()
	lx, err := ltllex.New(ltl.BaseSymbolSet())
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader(src))
	require.NoError(t, err)

	f, err := New(stream, attribute.NewRegistry(), "test").Parse()
	require.NoError(t, err)
	return f
}

func Test_Parse_Literal(t *testing.T) {
	f := parse(t, "a")
	lit, ok := f.(*ltl.LiteralFormula)
	require.True(t, ok)
	assert.Equal(t, "a", lit.BaseName())
}

func Test_Parse_BooleanPrecedence_AndOrLeftAssociative(t *testing.T) {
	f := parse(t, "a & b | c")
	assert.Equal(t, "a_0 & b_0 | c_0", ltl.Print(f, ltl.BaseSymbolSet()))
}

func Test_Parse_ParenGroupOverridesPrecedence(t *testing.T) {
	f := parse(t, "a & (b | c)")
	assert.Equal(t, "a_0 & (b_0 | c_0)", ltl.Print(f, ltl.BaseSymbolSet()))
}

func Test_Parse_PrefixTemporalOperator(t *testing.T) {
	f := parse(t, "G (a & b)")
	u, ok := f.(*ltl.UnaryFormula)
	require.True(t, ok)
	assert.Equal(t, ltl.Globally, u.Op)
}

func Test_Parse_ArithmeticComparison(t *testing.T) {
	f := parse(t, "a + b > 3")
	assert.Equal(t, "a_0 + b_0 > 3", ltl.Print(f, ltl.BaseSymbolSet()))
}

func Test_Parse_UnaryMinusOnConstant(t *testing.T) {
	f := parse(t, "a > -3")
	bin, ok := f.(*ltl.BinaryFormula)
	require.True(t, ok)
	c, ok := bin.Right().(ltl.ConstantFormula)
	require.True(t, ok)
	assert.Equal(t, -3, c.IntVal)
}

func Test_Parse_SameBaseLiteralsShareIdentity(t *testing.T) {
	f := parse(t, "a & a")
	bin := f.(*ltl.BinaryFormula)
	assert.Len(t, bin.LocalLiterals(), 1)
}

func Test_Parse_UnmatchedParen_IsParseError(t *testing.T) {
	lx, err := ltllex.New(ltl.BaseSymbolSet())
	require.NoError(t, err)
	stream, err := lx.Lex(strings.NewReader("(a & b"))
	require.NoError(t, err)

	_, err = New(stream, attribute.NewRegistry(), "test").Parse()
	assert.Error(t, err)
}

func Test_Parse_Release_NotImplemented(t *testing.T) {
	lx, err := ltllex.New(ltl.BaseSymbolSet())
	require.NoError(t, err)
	stream, err := lx.Lex(strings.NewReader("a V b"))
	require.NoError(t, err)

	_, err = New(stream, attribute.NewRegistry(), "test").Parse()
	assert.Error(t, err)
}
