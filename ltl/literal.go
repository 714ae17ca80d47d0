package ltl

import (
	"fmt"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/typelattice"
)

// LiteralFormula is a formula leaf carrying a unique attribute and a type.
// It is itself an attribute.Observer: when its attribute merges into
// another, a LiteralFormula updates in place to track the survivor, so every
// holder of a *LiteralFormula pointer automatically sees the current
// identity without needing to walk Attribute.Resolve chains.
type LiteralFormula struct {
	attr *attribute.Attribute
	typ  typelattice.Type
}

// NewLiteral allocates a fresh attribute from reg scoped to (ctx, base) and
// wraps it as a LiteralFormula of type t.
func NewLiteral(reg *attribute.Registry, ctx any, base string, t typelattice.Type) *LiteralFormula {
	l := &LiteralFormula{typ: t}
	l.attr = reg.New(ctx, base, "")
	l.attr.Attach(l)
	return l
}

// WrapAttribute builds a LiteralFormula around an attribute that already
// exists (used by the port layer, which shares literal identity with the
// formulas that reference the same port).
func WrapAttribute(attr *attribute.Attribute, t typelattice.Type) *LiteralFormula {
	l := &LiteralFormula{attr: attr, typ: t}
	attr.Attach(l)
	return l
}

// BaseName returns the literal's current base name (post any merges).
func (l *LiteralFormula) BaseName() string { return l.attr.Base() }

// UniqueName returns the literal's current unique name (post any merges).
func (l *LiteralFormula) UniqueName() string { return l.attr.UniqueName() }

// Attribute returns the literal's underlying attribute.
func (l *LiteralFormula) Attribute() *attribute.Attribute { return l.attr }

// Type returns the literal's type.
func (l *LiteralFormula) Type() typelattice.Type { return l.typ }

func (LiteralFormula) isFormula() {}

func (l *LiteralFormula) LocalLiterals() map[string]*LiteralFormula {
	return map[string]*LiteralFormula{l.BaseName(): l}
}

func (LiteralFormula) Children() []Formula { return nil }

func (l *LiteralFormula) String() string {
	return fmt.Sprintf("[LITERAL %s %s]", l.UniqueName(), l.typ)
}

// Update implements attribute.Observer: the literal simply migrates to track
// the attribute that survived the merge.
func (l *LiteralFormula) Update(old, new *attribute.Attribute) {
	if l.attr != old {
		return
	}
	l.attr = new
	old.Detach(l)
	new.Attach(l)
}
