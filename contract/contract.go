// Package contract implements the Assume/Guarantee contract: a named pair
// of LTL formulas (A, G) plus the typed input/output ports they share
// literals with. Construction, copying, and composition are the Go
// rendering of the teacher's attribute-grammar-flavoured tree-building
// style (internal/ictiobus/trans): build bottom-up, merge identities
// through a shared registry, never mutate in place where a fresh allocation
// keeps two trees independently safe to hand to different callers.
package contract

import (
	"context"
	"strings"

	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/internal/util"
	"github.com/dekarrin/ltlc/ltl"
	ltllex "github.com/dekarrin/ltlc/ltl/lex"
	"github.com/dekarrin/ltlc/ltl/parse"
	"github.com/dekarrin/ltlc/ltlcerr"
	"github.com/dekarrin/ltlc/port"
	"github.com/dekarrin/ltlc/typelattice"
	"github.com/dekarrin/ltlc/verify"
)

// PortSpec describes one port to declare at construction time: either a
// bare Bool name, a bounded-Int (name, lower, upper) triple, or an
// already-built port to adopt directly.
type PortSpec struct {
	Name  string
	Lower *int
	Upper *int
	Port  *port.Port
}

// Type resolves the declared type of a PortSpec: the adopted port's type if
// one was given, a bounded Int if bounds were given, else Bool.
func (s PortSpec) Type() typelattice.Type {
	if s.Port != nil {
		return s.Port.Type()
	}
	if s.Lower != nil || s.Upper != nil {
		return typelattice.NewInt(s.Lower, s.Upper)
	}
	return typelattice.NewBool()
}

// Contract is an Assume/Guarantee pair over a set of typed ports.
type Contract struct {
	nameAttr *attribute.Attribute
	reg      *attribute.Registry
	ctx      any
	set      ltl.SymbolSet

	A, G ltl.Formula

	inputs  map[string]*port.Port
	outputs map[string]*port.Port

	// origin maps a constituent contract's unique name to itself, populated
	// only for contracts produced by Compose.
	origin map[string]*Contract
}

// Name returns the contract's current base name.
func (c *Contract) Name() string { return c.nameAttr.Base() }

// UniqueName returns the contract's unique name, used as an origin-map key
// by Compose.
func (c *Contract) UniqueName() string { return c.nameAttr.UniqueName() }

// Assumption returns A.
func (c *Contract) Assumption() ltl.Formula { return c.A }

// Guarantee returns G.
func (c *Contract) Guarantee() ltl.Formula { return c.G }

// Port returns the port named base, whether input or output, and whether
// one exists.
func (c *Contract) Port(base string) (*port.Port, bool) {
	if p, ok := c.inputs[base]; ok {
		return p, true
	}
	p, ok := c.outputs[base]
	return p, ok
}

// Inputs returns the contract's input ports keyed by base name. Callers
// must not mutate the returned map.
func (c *Contract) Inputs() map[string]*port.Port { return c.inputs }

// Outputs returns the contract's output ports keyed by base name. Callers
// must not mutate the returned map.
func (c *Contract) Outputs() map[string]*port.Port { return c.outputs }

// PortNames returns every declared port's base name.
func (c *Contract) PortNames() []string {
	names := make([]string, 0, len(c.inputs)+len(c.outputs))
	for n := range c.inputs {
		names = append(names, n)
	}
	for n := range c.outputs {
		names = append(names, n)
	}
	return names
}

// PortsByLiteral returns the reverse view of the contract's ports: a
// literal's current unique name to every port currently sharing it (a
// unique name may map to more than one port once ports have merged).
func (c *Contract) PortsByLiteral() map[string][]*port.Port {
	out := make(map[string][]*port.Port)
	add := func(m map[string]*port.Port) {
		for _, p := range m {
			u := p.Literal().UniqueName()
			out[u] = append(out[u], p)
		}
	}
	add(c.inputs)
	add(c.outputs)
	return out
}

// Literals returns the union of every literal referenced by A or G, keyed
// by base name (the formulae_dict view).
func (c *Contract) Literals() map[string]*ltl.LiteralFormula {
	out := ltl.GetLiteralItems(c.A)
	for k, v := range ltl.GetLiteralItems(c.G) {
		out[k] = v
	}
	return out
}

// LiteralsByUniqueName is the formulae_reverse_dict view: unique name to
// every *LiteralFormula currently sharing it.
func (c *Contract) LiteralsByUniqueName() map[string][]*ltl.LiteralFormula {
	out := make(map[string][]*ltl.LiteralFormula)
	for _, l := range c.Literals() {
		u := l.UniqueName()
		out[u] = append(out[u], l)
	}
	return out
}

// Origin returns the constituent contracts a Compose call merged, keyed by
// their unique names. Returns nil for a directly-constructed contract.
func (c *Contract) Origin() map[string]*Contract { return c.origin }

// New constructs a Contract following the seven-step algorithm: parse A/G
// if given as source text (equalising their literals when both were freshly
// parsed), saturate G unless saturated is true, normalise the port specs
// into typed maps bound to the formulas' own literals (or fresh ones), then
// reject input/output overlap and optionally infer unmapped literals onto
// same-named ports.
func New(name string, inputs, outputs []PortSpec, a, g any, set ltl.SymbolSet, ctx any, reg *attribute.Registry, saturated bool, inferPorts bool) (*Contract, error) {
	c := &Contract{
		reg: reg,
		ctx: ctx,
		set: set,
	}
	c.nameAttr = reg.New(ctx, name, "")

	aFormula, aParsed, err := resolveFormula(a, ctx, reg)
	if err != nil {
		return nil, err
	}
	gFormula, gParsed, err := resolveFormula(g, ctx, reg)
	if err != nil {
		return nil, err
	}
	if aParsed && gParsed {
		ltl.EqualiseLiterals(aFormula, gFormula)
	}
	c.A = aFormula
	c.G = gFormula

	if !saturated {
		c.G = ltl.NewBinary(ltl.Or, ltl.NewUnary(ltl.Not, c.A), c.G, false)
	}

	formulaLits := c.Literals()

	c.inputs, err = buildPorts(inputs, formulaLits, reg, ctx)
	if err != nil {
		return nil, err
	}
	c.outputs, err = buildPorts(outputs, formulaLits, reg, ctx)
	if err != nil {
		return nil, err
	}

	var overlap []string
	for n := range c.inputs {
		if _, ok := c.outputs[n]; ok {
			overlap = append(overlap, n)
		}
	}
	if len(overlap) > 0 {
		return nil, ltlcerr.PortDeclaration("port declared as both input and output", overlap...)
	}

	for _, p := range c.inputs {
		if err := p.SetContract(c); err != nil {
			return nil, err
		}
	}
	for _, p := range c.outputs {
		if err := p.SetContract(c); err != nil {
			return nil, err
		}
	}

	if inferPorts {
		if err := c.inferUnmappedLiterals(formulaLits); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func resolveFormula(v any, ctx any, reg *attribute.Registry) (ltl.Formula, bool, error) {
	switch x := v.(type) {
	case ltl.Formula:
		return x, false, nil
	case string:
		lx, err := ltllex.New(ltl.BaseSymbolSet())
		if err != nil {
			return nil, false, err
		}
		stream, err := lx.Lex(strings.NewReader(x))
		if err != nil {
			return nil, false, err
		}
		f, err := parse.New(stream, reg, ctx).Parse()
		if err != nil {
			return nil, false, err
		}
		return f, true, nil
	default:
		return ltl.TrueFormula{}, false, nil
	}
}

func buildPorts(specs []PortSpec, formulaLits map[string]*ltl.LiteralFormula, reg *attribute.Registry, ctx any) (map[string]*port.Port, error) {
	out := make(map[string]*port.Port, len(specs))
	for _, spec := range specs {
		if spec.Port != nil {
			out[spec.Name] = spec.Port
			continue
		}
		t := spec.Type()
		if lit, ok := formulaLits[spec.Name]; ok {
			out[spec.Name] = port.New(reg, ctx, spec.Name, t, lit)
		} else {
			out[spec.Name] = port.New(reg, ctx, spec.Name, t, nil)
		}
	}
	return out, nil
}

// inferUnmappedLiterals walks every literal referenced by A/G that no port
// covers yet (by unique name) and tries to merge it into the port sharing
// its base name; a literal with no same-named port is a port-mapping error.
func (c *Contract) inferUnmappedLiterals(formulaLits map[string]*ltl.LiteralFormula) error {
	covered := util.NewStringSet()
	for u := range c.PortsByLiteral() {
		covered.Add(u)
	}

	var unmatched []string
	for base, lit := range formulaLits {
		if covered.Has(lit.UniqueName()) {
			continue
		}
		p, ok := c.Port(base)
		if !ok {
			unmatched = append(unmatched, base)
			continue
		}
		lit.Attribute().Merge(p.Literal().Attribute())
	}
	if len(unmatched) > 0 {
		return ltlcerr.PortMapping(unmatched...)
	}
	return nil
}

// Copy pretty-prints A and G, reparses them in the same context (allocating
// fresh literal ordinals whose printed text is the old unique name),
// equalises the reparsed pair the same way construction would, then rebuilds
// every port bound to the corresponding fresh literal. Internal sharing
// (two ports bound to the same literal) survives automatically: both old
// unique names print as the same text, so the reparse's own base-name merge
// policy recombines them into one fresh literal, same as it would for any
// formula built from that text.
func (c *Contract) Copy() (*Contract, error) {
	strA := ltl.Print(c.A, ltl.BaseSymbolSet())
	strG := ltl.Print(c.G, ltl.BaseSymbolSet())

	newA, err := reparse(strA, c.ctx, c.reg)
	if err != nil {
		return nil, err
	}
	newG, err := reparse(strG, c.ctx, c.reg)
	if err != nil {
		return nil, err
	}
	ltl.EqualiseLiterals(newA, newG)

	newLits := ltl.GetLiteralItems(newA)
	for k, v := range ltl.GetLiteralItems(newG) {
		newLits[k] = v
	}

	nc := &Contract{
		reg: c.reg,
		ctx: c.ctx,
		set: c.set,
		A:   newA,
		G:   newG,
	}
	nc.nameAttr = c.reg.New(c.ctx, c.Name(), "")
	nc.inputs = rebuildPorts(c.inputs, newLits, c.reg, c.ctx)
	nc.outputs = rebuildPorts(c.outputs, newLits, c.reg, c.ctx)
	for _, p := range nc.inputs {
		_ = p.SetContract(nc)
	}
	for _, p := range nc.outputs {
		_ = p.SetContract(nc)
	}
	return nc, nil
}

func reparse(src string, ctx any, reg *attribute.Registry) (ltl.Formula, error) {
	lx, err := ltllex.New(ltl.BaseSymbolSet())
	if err != nil {
		return nil, err
	}
	stream, err := lx.Lex(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return parse.New(stream, reg, ctx).Parse()
}

func rebuildPorts(orig map[string]*port.Port, newLits map[string]*ltl.LiteralFormula, reg *attribute.Registry, ctx any) map[string]*port.Port {
	out := make(map[string]*port.Port, len(orig))
	for base, p := range orig {
		oldUnique := p.Literal().UniqueName()
		lit, ok := newLits[oldUnique]
		if !ok {
			lit = ltl.NewLiteral(reg, ctx, base, p.Type())
		}
		out[base] = port.New(reg, ctx, base, p.Type(), lit)
	}
	return out
}

// ConnectToPort requires p to belong to c, then merges q into it. Unlike
// composition, a direct connect call may join two output ports.
func (c *Contract) ConnectToPort(p, q *port.Port) error {
	if p.Contract() != any(c) {
		return ltlcerr.PortConnection(p.BaseName(), q.BaseName())
	}
	return p.Merge(q)
}

// IsCompatible reports whether A is non-empty (satisfiable).
func (c *Contract) IsCompatible(ctx context.Context, strat verify.Strategy) (bool, error) {
	vars := verify.VarsFromLiterals(ltl.GetLiteralItems(c.A))
	res, err := strat.Emptiness(ctx, c.A, vars)
	if err != nil {
		return false, err
	}
	return res.Holds, nil
}

// IsConsistent reports whether A ∧ G is non-empty.
func (c *Contract) IsConsistent(ctx context.Context, strat verify.Strategy) (bool, error) {
	conj := ltl.NewBinary(ltl.And, c.A, c.G, false)
	vars := verify.VarsFromLiterals(ltl.GetLiteralItems(conj))
	res, err := strat.Emptiness(ctx, conj, vars)
	if err != nil {
		return false, err
	}
	return res.Holds, nil
}

// IsRefinement checks C ⊑ other: (A' -> A) ∧ (G -> G') is a tautology,
// where A'/G' belong to other. Runs against copies of both contracts (per
// GetMappingCopies) so the query never disturbs either contract's literal
// identities.
func (c *Contract) IsRefinement(ctx context.Context, other *Contract, strat verify.Strategy) (bool, error) {
	selfCopy, otherCopy, err := GetMappingCopies(c, other)
	if err != nil {
		return false, err
	}
	f := ltl.NewBinary(
		ltl.And,
		ltl.NewBinary(ltl.Implies, otherCopy.A, selfCopy.A, false),
		ltl.NewBinary(ltl.Implies, selfCopy.G, otherCopy.G, false),
		false,
	)
	return tautology(ctx, strat, f)
}

// IsApproximation checks C ⪯ other: (A' -> A) ∧ (G' -> G) is a tautology
// (the guarantee direction is reversed relative to IsRefinement).
func (c *Contract) IsApproximation(ctx context.Context, other *Contract, strat verify.Strategy) (bool, error) {
	selfCopy, otherCopy, err := GetMappingCopies(c, other)
	if err != nil {
		return false, err
	}
	f := ltl.NewBinary(
		ltl.And,
		ltl.NewBinary(ltl.Implies, otherCopy.A, selfCopy.A, false),
		ltl.NewBinary(ltl.Implies, otherCopy.G, selfCopy.G, false),
		false,
	)
	return tautology(ctx, strat, f)
}

func tautology(ctx context.Context, strat verify.Strategy, f ltl.Formula) (bool, error) {
	vars := verify.VarsFromLiterals(ltl.GetLiteralItems(f))
	res, err := strat.Tautology(ctx, f, vars)
	if err != nil {
		return false, err
	}
	return res.Holds, nil
}
