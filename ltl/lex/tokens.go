// Package lex builds an ictiobus lexer for the LTL surface grammar,
// parameterised over one of ltl's symbol sets. It only reaches for
// ictiobus's lex subpackage (regex-driven token classes and patterns), not
// the generated LALR/SDTS machinery the rest of ictiobus provides — there is
// exactly one grammar here, hand-written once, so a generated parser
// pipeline has nothing to generate from.
package lex

import (
	"github.com/dekarrin/ictiobus/lex"
)

// Token class IDs, mirroring the fetoken.TC* naming the teacher's generated
// frontends use, minus the generation.
const (
	TCAnd         = "and"
	TCOr          = "or"
	TCNot         = "not"
	TCImplication = "implication"
	TCIff         = "iff"
	TCEquality    = "equality"
	TCGlobally    = "globally"
	TCEventually  = "eventually"
	TCNext        = "next"
	TCUntil       = "until"
	TCRelease     = "release"
	TCWeakUntil   = "weak_until"
	TCLParen      = "lparen"
	TCRParen      = "rparen"
	TCTrue        = "true"
	TCFalse       = "false"
	TCGe          = "ge"
	TCGeq         = "geq"
	TCLe          = "le"
	TCLeq         = "leq"
	TCAdd         = "add"
	TCSub         = "sub"
	TCMul         = "mul"
	TCDiv         = "div"
	TCLiteral     = "literal"
	TCConstant    = "constant"
)

var classes = []string{
	TCAnd, TCOr, TCNot, TCImplication, TCIff, TCEquality,
	TCGlobally, TCEventually, TCNext, TCUntil, TCRelease, TCWeakUntil,
	TCLParen, TCRParen, TCTrue, TCFalse,
	TCGe, TCGeq, TCLe, TCLeq, TCAdd, TCSub, TCMul, TCDiv,
	TCLiteral, TCConstant,
}

func tokenClass(id string) lex.TokenClass {
	return lex.NewTokenClass(id, id)
}
