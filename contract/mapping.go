package contract

import (
	"github.com/dekarrin/ltlc/attribute"
	"github.com/dekarrin/ltlc/ltl"
	"github.com/dekarrin/ltlc/ltlcerr"
	"github.com/dekarrin/ltlc/port"
)

// CompositionMapping resolves how the ports of a set of constituent
// contracts combine into the ports of their composition: a bucket of
// "new_name -> {Port}" plus the reverse lookup, built incrementally via
// Add/Connect before DefineComposedContractPorts is called to freeze it.
type CompositionMapping struct {
	contracts []*Contract
	buckets   map[string][]*port.Port
	reverse   map[*port.Port]string
}

// NewCompositionMapping starts a mapping over the given constituents.
func NewCompositionMapping(contracts ...*Contract) *CompositionMapping {
	return &CompositionMapping{
		contracts: contracts,
		buckets:   make(map[string][]*port.Port),
		reverse:   make(map[*port.Port]string),
	}
}

// Add attaches port to the newName bucket, after validating it belongs to
// one of the mapping's constituent contracts.
func (m *CompositionMapping) Add(p *port.Port, newName string) error {
	if !m.belongsToConstituent(p) {
		return ltlcerr.PortMapping(newName)
	}
	if existing, ok := m.reverse[p]; ok && existing == newName {
		return nil
	}
	m.buckets[newName] = append(m.buckets[newName], p)
	m.reverse[p] = newName
	return nil
}

// Connect is Add called twice with a shared new name (p's base name by
// default), identifying p and q as the same composed port.
func (m *CompositionMapping) Connect(p, q *port.Port, newName ...string) error {
	name := p.BaseName()
	if len(newName) > 0 && newName[0] != "" {
		name = newName[0]
	}
	if err := m.Add(p, name); err != nil {
		return err
	}
	return m.Add(q, name)
}

func (m *CompositionMapping) belongsToConstituent(p *port.Port) bool {
	for _, c := range m.contracts {
		if _, ok := c.inputs[p.BaseName()]; ok && c.inputs[p.BaseName()] == p {
			return true
		}
		if _, ok := c.outputs[p.BaseName()]; ok && c.outputs[p.BaseName()] == p {
			return true
		}
	}
	return false
}

// FindConflicts computes every base name shared by more than one
// constituent contract, discounts ports already placed in a bucket by
// Add/Connect, resolves the case where exactly one port in a group is still
// unmapped (attaching it to its own base name, provided that name is not
// already claimed by a different bucket), and returns the base-name groups
// that remain unresolved after that.
func (m *CompositionMapping) FindConflicts() map[string][]*port.Port {
	byBase := make(map[string][]*port.Port)
	for _, c := range m.contracts {
		for base, p := range c.inputs {
			byBase[base] = append(byBase[base], p)
		}
		for base, p := range c.outputs {
			byBase[base] = append(byBase[base], p)
		}
	}

	conflicts := make(map[string][]*port.Port)
	for base, group := range byBase {
		if len(group) < 2 {
			continue
		}
		var unmapped []*port.Port
		for _, p := range group {
			if _, ok := m.reverse[p]; !ok {
				unmapped = append(unmapped, p)
			}
		}
		if len(unmapped) == 0 {
			continue
		}
		if len(unmapped) == 1 {
			if _, claimed := m.buckets[base]; !claimed {
				_ = m.Add(unmapped[0], base)
				continue
			}
		}
		conflicts[base] = unmapped
	}
	return conflicts
}

// DefineComposedContractPorts freezes the mapping: any conflict left by
// FindConflicts is a port-mapping error. Each remaining bucket with more
// than one output port is a port-connection error; otherwise every port in
// a bucket is merged into one survivor, classified input (every port in the
// bucket is an input) or output (otherwise). Every constituent port the
// mapping never touched is emitted under its own base name and
// classification, except an untouched input already connected to an output
// of the same composition (a feedback loop), which is skipped.
func (m *CompositionMapping) DefineComposedContractPorts() (map[string]*port.Port, map[string]*port.Port, error) {
	if conflicts := m.FindConflicts(); len(conflicts) > 0 {
		names := make([]string, 0, len(conflicts))
		for n := range conflicts {
			names = append(names, n)
		}
		return nil, nil, ltlcerr.PortMapping(names...)
	}

	inputs := make(map[string]*port.Port)
	outputs := make(map[string]*port.Port)
	touched := make(map[*port.Port]bool)

	for newName, bucket := range m.buckets {
		outCount := 0
		for _, p := range bucket {
			if m.isOutput(p) {
				outCount++
			}
		}
		if outCount > 1 {
			return nil, nil, ltlcerr.PortConnection(newName)
		}

		survivor := bucket[0]
		for _, p := range bucket[1:] {
			if err := survivor.Merge(p); err != nil {
				return nil, nil, err
			}
		}
		for _, p := range bucket {
			touched[p] = true
		}

		if outCount == 0 {
			inputs[newName] = survivor
		} else {
			outputs[newName] = survivor
		}
	}

	for _, c := range m.contracts {
		for base, p := range c.inputs {
			if touched[p] {
				continue
			}
			if m.isFeedbackInput(p) {
				continue
			}
			inputs[base] = p
		}
		for base, p := range c.outputs {
			if touched[p] {
				continue
			}
			outputs[base] = p
		}
	}

	return inputs, outputs, nil
}

func (m *CompositionMapping) isOutput(p *port.Port) bool {
	for _, c := range m.contracts {
		if c.outputs[p.BaseName()] == p {
			return true
		}
	}
	return false
}

// isFeedbackInput reports whether an untouched input p is already wired
// (via a prior direct connect_to_port call) to an output of any of the
// mapping's constituents, its own contract included.
func (m *CompositionMapping) isFeedbackInput(p *port.Port) bool {
	for _, c := range m.contracts {
		for _, q := range c.outputs {
			if q == p {
				continue
			}
			if p.IsConnectedTo(q) {
				return true
			}
		}
	}
	return false
}

// Compose builds the composition of contracts under mapping: resolves the
// composed port maps via mapping, conjoins every constituent's A and G with
// merge_literals=false, then re-saturates both A and G symmetrically
// (G = ¬A' ∨ G', A = A' ∨ ¬G'). The result's Origin maps each constituent's
// unique name to itself.
func Compose(name string, contracts []*Contract, mapping *CompositionMapping, ctx any, reg *attribute.Registry) (*Contract, error) {
	inputs, outputs, err := mapping.DefineComposedContractPorts()
	if err != nil {
		return nil, err
	}

	var aPrime, gPrime ltl.Formula
	for _, c := range contracts {
		if aPrime == nil {
			aPrime = c.A
		} else {
			aPrime = ltl.NewBinary(ltl.And, aPrime, c.A, false)
		}
		if gPrime == nil {
			gPrime = c.G
		} else {
			gPrime = ltl.NewBinary(ltl.And, gPrime, c.G, false)
		}
	}

	nc := &Contract{
		reg:     reg,
		ctx:     ctx,
		set:     contracts[0].set,
		G:       ltl.NewBinary(ltl.Or, ltl.NewUnary(ltl.Not, aPrime), gPrime, false),
		A:       ltl.NewBinary(ltl.Or, aPrime, ltl.NewUnary(ltl.Not, gPrime), false),
		inputs:  inputs,
		outputs: outputs,
		origin:  make(map[string]*Contract, len(contracts)),
	}
	nc.nameAttr = reg.New(ctx, name, "")

	for _, c := range contracts {
		nc.origin[c.UniqueName()] = c
		for _, p := range c.inputs {
			_ = p.SetContract(nc)
		}
		for _, p := range c.outputs {
			_ = p.SetContract(nc)
		}
	}

	return nc, nil
}

// PortPair identifies port A of one contract with port B of another, for a
// RefinementMapping/ApproximationMapping.
type PortPair struct {
	A, B *port.Port
}

// RefinementMapping stores the set of port pairs a refinement query
// identifies across two contracts.
type RefinementMapping struct {
	Pairs []PortPair
}

// NewRefinementMapping builds a RefinementMapping over the given pairs.
func NewRefinementMapping(pairs ...PortPair) *RefinementMapping {
	return &RefinementMapping{Pairs: pairs}
}

// ApproximationMapping is the approximation-query analogue of
// RefinementMapping; the pairing mechanics are identical, only the formula
// IsApproximation builds from the copies differs.
type ApproximationMapping struct {
	RefinementMapping
}

// NewApproximationMapping builds an ApproximationMapping over the given
// pairs.
func NewApproximationMapping(pairs ...PortPair) *ApproximationMapping {
	return &ApproximationMapping{RefinementMapping{Pairs: pairs}}
}

// GetMappingCopies deep-copies self and other, then translates pairs (or,
// if none are given, every pair of same-base-name ports the two contracts
// share) onto the copies by merging each pair's literals — the only safe
// way to run a refinement/approximation query, since evaluating it treats
// the paired ports as referring to the same literal and must not disturb
// either original contract's identities.
func GetMappingCopies(self, other *Contract, pairs ...PortPair) (*Contract, *Contract, error) {
	selfCopy, err := self.Copy()
	if err != nil {
		return nil, nil, err
	}
	otherCopy, err := other.Copy()
	if err != nil {
		return nil, nil, err
	}

	if len(pairs) == 0 {
		pairs = defaultPortPairing(self, other)
	}

	for _, pr := range pairs {
		pa, ok1 := selfCopy.Port(pr.A.BaseName())
		pb, ok2 := otherCopy.Port(pr.B.BaseName())
		if !ok1 || !ok2 {
			continue
		}
		if pa.IsConnectedTo(pb) {
			continue
		}
		if err := pa.Merge(pb); err != nil {
			return nil, nil, err
		}
	}

	return selfCopy, otherCopy, nil
}

// defaultPortPairing pairs every port base name self and other have in
// common, the identification a refinement/approximation query makes when
// the caller supplies no explicit mapping.
func defaultPortPairing(self, other *Contract) []PortPair {
	var pairs []PortPair
	for base, pa := range self.inputs {
		if pb, ok := other.Port(base); ok {
			pairs = append(pairs, PortPair{A: pa, B: pb})
		}
	}
	for base, pa := range self.outputs {
		if pb, ok := other.Port(base); ok {
			pairs = append(pairs, PortPair{A: pa, B: pb})
		}
	}
	return pairs
}
