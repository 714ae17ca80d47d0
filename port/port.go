// Package port implements the named, typed handle a contract exposes for
// each of its inputs and outputs. A Port wraps a literal and tracks it
// through merges the same way a Formula node does, via the attribute
// observer protocol; a contract's input/output maps, not the Port itself,
// decide whether a given port counts as an input or an output.
package port

import (
	"fmt"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/ltlcerr"
	"github.com/dekarrin/ltlc/typelattice"
)

// Port is a (base name, type, literal, owning contract) tuple.
type Port struct {
	base    string
	typ     typelattice.Type
	literal *ltl.LiteralFormula
	reg     *attribute.Registry
	ctx     any

	contract any
}

// New builds a Port named base with type t, scoped to (reg, ctx). If lit is
// nil, a fresh literal is allocated; otherwise the Port wraps lit directly
// (the case where a port is bound to a literal a formula already
// references). Either way the Port attaches itself as an observer of the
// literal's attribute.
func New(reg *attribute.Registry, ctx any, base string, t typelattice.Type, lit *ltl.LiteralFormula) *Port {
	if lit == nil {
		lit = ltl.NewLiteral(reg, ctx, base, t)
	}
	p := &Port{base: base, typ: t, literal: lit, reg: reg, ctx: ctx}
	lit.Attribute().Attach(p)
	return p
}

// BaseName returns the port's base name.
func (p *Port) BaseName() string { return p.base }

// Type returns the port's current type.
func (p *Port) Type() typelattice.Type { return p.typ }

// Literal returns the literal this port currently wraps.
func (p *Port) Literal() *ltl.LiteralFormula { return p.literal }

// Contract returns the contract this port has been assigned to, or nil.
func (p *Port) Contract() any { return p.contract }

// SetContract assigns p to c. Setting a contract a second time with a
// non-nil c when one is already assigned is an error; the literal Port
// spec invariant is "assigned at most once".
func (p *Port) SetContract(c any) error {
	if p.contract != nil && c != nil {
		return ltlcerr.PortDeclaration(fmt.Sprintf("port %q is already assigned to a contract", p.base), p.base)
	}
	p.contract = c
	return nil
}

// Update implements attribute.Observer: when p's literal's attribute merges
// into another, p rebinds to wrap the surviving literal.
func (p *Port) Update(old, new *attribute.Attribute) {
	if p.literal.Attribute() != old {
		return
	}
	new.Attach(p)
	old.Detach(p)
	p.literal = ltl.WrapAttribute(new, p.typ)
}

// IsConnectedTo reports whether p and other currently share the same
// literal identity (their literals' unique names are equal once merges are
// resolved).
func (p *Port) IsConnectedTo(other *Port) bool {
	return p.literal.Attribute().Resolve() == other.literal.Attribute().Resolve()
}

// Merge connects p to other: it requires the two ports' types to be
// Comparable, merges their literals if they are not already the same one,
// and narrows both sides to the narrower of the two types. Merging two
// ports that already share a literal is a no-op.
func (p *Port) Merge(other *Port) error {
	if p.IsConnectedTo(other) {
		return nil
	}
	if !p.typ.Comparable(other.typ) {
		return ltlcerr.PortConnection(p.base, other.base)
	}

	other.literal.Attribute().Merge(p.literal.Attribute())

	narrow, err := typelattice.Narrower(p.typ, other.typ)
	if err != nil {
		return ltlcerr.PortConnection(p.base, other.base)
	}
	p.typ = narrow
	other.typ = narrow
	return nil
}

// Reinitialize allocates a fresh literal with p's base name and type and
// merges the current literal into it, decoupling p's identity from whatever
// it was previously connected to. If contract is non-nil, p is also rebound
// to it (subject to the set-once rule).
func (p *Port) Reinitialize(contract any) error {
	fresh := ltl.NewLiteral(p.reg, p.ctx, p.base, p.typ)
	p.literal.Attribute().Merge(fresh.Attribute())
	if contract != nil {
		return p.SetContract(contract)
	}
	return nil
}
