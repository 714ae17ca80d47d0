package lex

import (
	"regexp"

	"github.com/dekarrin/ictiobus"
	"github.com/dekarrin/ictiobus/lex"

	"github.com/dekarrin/ltlc/ltl"
)

// glyphPattern is a symbol kind paired with the token class it lexes as.
// Order matters: entries earlier in the list are registered first, and (per
// the grounding in tunascript's generated lexer) the convention is to list a
// glyph before any other glyph that is a textual prefix of it, so the
// longer match is tried first.
type glyphPattern struct {
	kind  ltl.OpKind
	class string
}

var glyphOrder = []glyphPattern{
	{ltl.KindDoubleImplication, TCIff},
	{ltl.KindImplication, TCImplication},
	{ltl.KindLeq, TCLeq},
	{ltl.KindLe, TCLe},
	{ltl.KindGeq, TCGeq},
	{ltl.KindGe, TCGe},
	{ltl.KindAnd, TCAnd},
	{ltl.KindOr, TCOr},
	{ltl.KindNot, TCNot},
	{ltl.KindEquality, TCEquality},
	{ltl.KindAdd, TCAdd},
	{ltl.KindSub, TCSub},
	{ltl.KindMul, TCMul},
	{ltl.KindDiv, TCDiv},
	{ltl.KindGlobally, TCGlobally},
	{ltl.KindEventually, TCEventually},
	{ltl.KindNext, TCNext},
	{ltl.KindUntil, TCUntil},
	{ltl.KindRelease, TCRelease},
	{ltl.KindWeakUntil, TCWeakUntil},
	{ltl.KindLParen, TCLParen},
	{ltl.KindRParen, TCRParen},
	{ltl.KindTrue, TCTrue},
	{ltl.KindFalse, TCFalse},
}

// New builds an ictiobus Lexer that recognizes set's glyphs as keywords,
// `[a-z_][a-zA-Z0-9_]*` as TCLiteral, decimal (optionally fractional)
// digit sequences as TCConstant, `#`-to-end-of-line as a comment, and
// whitespace, all discarded except the keywords/literal/constant classes.
func New(set ltl.SymbolSet) (lex.Lexer, error) {
	lx := ictiobus.NewLexer()

	for _, id := range classes {
		lx.RegisterClass(tokenClass(id), "")
	}

	for _, gp := range glyphOrder {
		sym := set.Symbol(gp.kind)
		if sym == "" {
			continue
		}
		if err := lx.AddPattern(regexp.QuoteMeta(sym), lex.LexAs(gp.class), "", 0); err != nil {
			return nil, err
		}
	}

	if err := lx.AddPattern(`[a-z_][a-zA-Z0-9_]*`, lex.LexAs(TCLiteral), "", 0); err != nil {
		return nil, err
	}
	if err := lx.AddPattern(`\d+(?:\.\d+)?`, lex.LexAs(TCConstant), "", 0); err != nil {
		return nil, err
	}
	if err := lx.AddPattern(`#[^\n]*`, lex.Discard(), "", 0); err != nil {
		return nil, err
	}
	if err := lx.AddPattern(`\s+`, lex.Discard(), "", 0); err != nil {
		return nil, err
	}

	return lx, nil
}
