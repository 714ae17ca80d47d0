// Package parse implements a hand-written precedence-climbing parser for
// the LTL surface grammar, producing ltl.Formula trees. It is grounded on
// the teacher's own hand-written Pratt parser in internal/tunascript
// (operators.go's nud/led methods, parser.go's parseExpression loop) rather
// than on ictiobus's generated LALR/SDTS pipeline: this grammar is small,
// fixed, and written once, so there is nothing for a grammar compiler to
// generate that isn't more simply hand-written directly.
package parse

import (
	"strconv"
	"strings"

	"github.com/dekarrin/ictiobus/types"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	ltllex "github.com/dekarrin/ltlc/ltl/lex"
	"github.com/dekarrin/ltlc/ltlcerr"
	"github.com/dekarrin/ltlc/typelattice"
)

// bindingPower gives each token class its left binding power: how strongly
// it pulls a following parseExpr loop to keep consuming on its left. It is
// derived directly from the precedence table in ltl/precedence.go, scaled
// up so every level has room for prefix operators between them.
var bindingPower = map[string]int{
	ltllex.TCImplication: 10,
	ltllex.TCIff:         10,
	ltllex.TCAnd:         20,
	ltllex.TCOr:          20,
	ltllex.TCUntil:       30,
	ltllex.TCRelease:     30,
	ltllex.TCWeakUntil:   30,
	ltllex.TCGe:          50,
	ltllex.TCGeq:         50,
	ltllex.TCLe:          50,
	ltllex.TCLeq:         50,
	ltllex.TCEquality:    50,
	ltllex.TCAdd:         60,
	ltllex.TCSub:         60,
	ltllex.TCMul:         70,
	ltllex.TCDiv:         70,
}

const prefixBindingPower = 80 // NOT, NEXT, unary minus

// temporalPrefixBindingPower is the right binding power of GLOBALLY and
// EVENTUALLY: between UNTIL (30) and the comparisons (50), their level in
// the precedence table, so "G a > b" parses as G (a > b).
const temporalPrefixBindingPower = 40

// Parser turns a token stream into an ltl.Formula, allocating every Literal
// it constructs from reg, scoped to ctx.
type Parser struct {
	stream types.TokenStream
	reg    *attribute.Registry
	ctx    any
}

// New wraps stream as a Parser. Every literal parsed from it will be scoped
// to ctx in reg, so a contract can route every formula it parses from its
// own source text into one shared literal namespace.
func New(stream types.TokenStream, reg *attribute.Registry, ctx any) *Parser {
	return &Parser{stream: stream, reg: reg, ctx: ctx}
}

// Parse consumes the entire stream and returns the formula it denotes. It is
// an error for input to remain once the expression completes.
func (p *Parser) Parse() (ltl.Formula, error) {
	f, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.stream.HasNext() {
		next := p.stream.Peek()
		if next.Class().ID() != types.TokenEndOfText.ID() {
			return nil, ltlcerr.Parsef(next.Lexeme(), "unexpected trailing input starting at %q", next.Lexeme())
		}
	}
	return f, nil
}

func (p *Parser) parseExpr(rbp int) (ltl.Formula, error) {
	if !p.stream.HasNext() {
		return nil, ltlcerr.Parsef("", "unexpected end of input")
	}
	tok := p.stream.Next()

	left, err := p.nud(tok)
	if err != nil {
		return nil, err
	}

	for p.stream.HasNext() && rbp < lbp(p.stream.Peek()) {
		tok = p.stream.Next()
		left, err = p.led(tok, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func lbp(t types.Token) int {
	return bindingPower[t.Class().ID()]
}

// nud is the null-denotation handler: what a token means when it opens a
// construct (a literal, a constant, a prefix operator, or a parenthesised
// group).
func (p *Parser) nud(tok types.Token) (ltl.Formula, error) {
	switch tok.Class().ID() {
	case ltllex.TCTrue:
		return ltl.TrueFormula{}, nil
	case ltllex.TCFalse:
		return ltl.FalseFormula{}, nil
	case ltllex.TCConstant:
		return parseConstant(tok.Lexeme())
	case ltllex.TCLiteral:
		return ltl.NewLiteral(p.reg, p.ctx, tok.Lexeme(), typelattice.NewBool()), nil
	case ltllex.TCSub:
		operand, err := p.parseExpr(prefixBindingPower)
		if err != nil {
			return nil, err
		}
		c, ok := operand.(ltl.ConstantFormula)
		if !ok {
			return nil, ltlcerr.Parsef(tok.Lexeme(), "unary '-' may only apply to a constant, got %T", operand)
		}
		if c.IsFloat {
			return ltl.FloatConstant(-c.FloatVal), nil
		}
		return ltl.IntConstant(-c.IntVal), nil
	case ltllex.TCNot:
		operand, err := p.parseExpr(prefixBindingPower)
		if err != nil {
			return nil, err
		}
		return ltl.NewUnary(ltl.Not, operand), nil
	case ltllex.TCNext:
		operand, err := p.parseExpr(prefixBindingPower)
		if err != nil {
			return nil, err
		}
		return ltl.NewUnary(ltl.Next, operand), nil
	case ltllex.TCGlobally:
		operand, err := p.parseExpr(temporalPrefixBindingPower)
		if err != nil {
			return nil, err
		}
		return ltl.NewUnary(ltl.Globally, operand), nil
	case ltllex.TCEventually:
		operand, err := p.parseExpr(temporalPrefixBindingPower)
		if err != nil {
			return nil, err
		}
		return ltl.NewUnary(ltl.Eventually, operand), nil
	case ltllex.TCLParen:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if !p.stream.HasNext() || p.stream.Next().Class().ID() != ltllex.TCRParen {
			return nil, ltlcerr.Parsef(tok.Lexeme(), "unmatched '('; expected ')'")
		}
		return inner, nil
	default:
		return nil, ltlcerr.Parsef(tok.Lexeme(), "unexpected %s; cannot start an expression", tok.Class().ID())
	}
}

// led is the left-denotation handler: what a token means when it continues
// a construct already begun, given the left-hand side parsed so far.
func (p *Parser) led(tok types.Token, left ltl.Formula) (ltl.Formula, error) {
	op, ok := binaryOp(tok.Class().ID())
	if !ok {
		return nil, ltlcerr.Parsef(tok.Lexeme(), "%s is not implemented as a binary connective", tok.Class().ID())
	}

	right, err := p.parseExpr(lbp(tok))
	if err != nil {
		return nil, err
	}
	return ltl.NewBinary(op, left, right, true), nil
}

func binaryOp(classID string) (ltl.Op, bool) {
	switch classID {
	case ltllex.TCAnd:
		return ltl.And, true
	case ltllex.TCOr:
		return ltl.Or, true
	case ltllex.TCImplication:
		return ltl.Implies, true
	case ltllex.TCIff:
		return ltl.Iff, true
	case ltllex.TCUntil:
		return ltl.Until, true
	case ltllex.TCAdd:
		return ltl.Add, true
	case ltllex.TCSub:
		return ltl.Sub, true
	case ltllex.TCMul:
		return ltl.Mul, true
	case ltllex.TCDiv:
		return ltl.Div, true
	case ltllex.TCGe:
		return ltl.Ge, true
	case ltllex.TCGeq:
		return ltl.Geq, true
	case ltllex.TCLe:
		return ltl.Le, true
	case ltllex.TCLeq:
		return ltl.Leq, true
	case ltllex.TCEquality:
		return ltl.Equality, true
	default:
		// TCRelease and TCWeakUntil are recognised by the lexer (the spec
		// requires them to be syntactically recognised) but have no led
		// handler: the core does not implement Release or WeakUntil parsing.
		return 0, false
	}
}

func parseConstant(lexeme string) (ltl.Formula, error) {
	if strings.Contains(lexeme, ".") {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, ltlcerr.Parsef(lexeme, "malformed real constant %q", lexeme)
		}
		return ltl.FloatConstant(v), nil
	}
	v, err := strconv.Atoi(lexeme)
	if err != nil {
		return nil, ltlcerr.Parsef(lexeme, "malformed integer constant %q", lexeme)
	}
	return ltl.IntConstant(v), nil
}
