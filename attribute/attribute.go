// Package attribute implements the process-wide unique-name generator and
// the observer protocol that every shared literal name in the ltlc module is
// built on. An Attribute is the unit of identity that Literals, Ports, and
// Formula literal tables all observe; merging two attributes is the only way
// those three layers stay in sync with each other.
package attribute

import (
	"fmt"
	"sort"
)

// Observer is notified when the Attribute it is attached to is merged into
// another. Update is called exactly once per merge, with the attribute that
// was merged (old) and the attribute it now resolves to (new).
type Observer interface {
	Update(old, new *Attribute)
}

// Attribute is a unique name: a (base, context, ordinal) triple. Attributes
// are reference types; two Attributes are the same logical entity iff they
// are the same pointer, or one has merged (directly or transitively) into
// the other.
type Attribute struct {
	base    string
	context any
	ordinal int

	state     *Attribute
	observers map[Observer]struct{}
}

// Base returns the base name this attribute was allocated from.
func (a *Attribute) Base() string { return a.base }

// Context returns the context this attribute was scoped to.
func (a *Attribute) Context() any { return a.context }

// Ordinal returns this attribute's ordinal, as assigned at creation. Note
// that Ordinal does not resolve merges; call Resolve first if you want the
// surviving attribute's ordinal.
func (a *Attribute) Ordinal() int { return a.ordinal }

// UniqueName renders the canonical "{base}_{ordinal}" form of this
// attribute's own identity (not the survivor's, if it has merged).
func (a *Attribute) UniqueName() string {
	return fmt.Sprintf("%s_%d", a.base, a.ordinal)
}

func (a *Attribute) String() string { return a.UniqueName() }

// Merged reports whether this attribute has been merged into another.
func (a *Attribute) Merged() bool { return a.state != nil }

// Resolve walks the merge chain to the final surviving attribute. It returns
// a itself if a has never been merged. Resolve never returns nil.
func (a *Attribute) Resolve() *Attribute {
	cur := a
	for cur.state != nil {
		cur = cur.state
	}
	return cur
}

// Attach registers o as an observer of a. It is legal to attach the same
// observer more than once in distinct Attributes, but attaching an observer
// already attached to a is a no-op.
func (a *Attribute) Attach(o Observer) {
	if a.observers == nil {
		a.observers = make(map[Observer]struct{})
	}
	a.observers[o] = struct{}{}
}

// Detach removes o from a's observer set. It panics if o was not attached;
// per the spec, an absent-observer detach indicates a caller bug, not a
// recoverable condition.
func (a *Attribute) Detach(o Observer) {
	if _, ok := a.observers[o]; !ok {
		panic(fmt.Sprintf("attribute: Detach called with an observer not attached to %s", a.UniqueName()))
	}
	delete(a.observers, o)
}

// notify calls Update(a, to) on a snapshot of a's current observer set. The
// snapshot is taken before any call is made, so an observer that attaches or
// detaches (from a or from any other attribute) during notification cannot
// corrupt this iteration, and re-entrant merges triggered by one observer's
// Update are free to run to completion before the next observer in the
// snapshot is visited.
func (a *Attribute) notify(to *Attribute) {
	snapshot := make([]Observer, 0, len(a.observers))
	for o := range a.observers {
		snapshot = append(snapshot, o)
	}
	for _, o := range snapshot {
		o.Update(a, to)
	}
}

// Merge merges a into into: a's state becomes into, and every observer
// attached to a is notified exactly once. Merge is idempotent when called
// again on a pair that has already merged (the second call is a no-op,
// tolerating re-entrant merge graphs per the spec's notification-snapshot
// design note).
//
// Merging is not reversible: after Merge returns, a no longer participates in
// further name generation, and any code that still calls a.UniqueName()
// continues to see a's own pre-merge name (Resolve must be used to reach the
// survivor).
func (a *Attribute) Merge(into *Attribute) {
	if a.state == into {
		return
	}
	if a == into {
		return
	}
	a.state = into
	a.notify(into)
}

// registryKey identifies one registrant of a (context, base) counter.
type registryKey struct {
	context  any
	identity string
}

type counter struct {
	next     int
	assigned map[registryKey]*Attribute
}

// Registry is a generator of unique Attributes. Each Attribute records a
// (context, base) pair; ordinals are counted per base name. The zero value
// is not usable; construct one with NewRegistry.
//
// A Registry is not safe for concurrent use without external
// synchronization, per the module's single-threaded concurrency model.
type Registry struct {
	counters map[string]*counter
}

// NewRegistry returns a fresh, empty Registry. Most callers should use
// Default unless they specifically need isolation (such as in tests, or when
// embedding multiple independent verification sessions in one process).
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*counter)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide default Registry.
func Default() *Registry { return defaultRegistry }

// New allocates a fresh Attribute scoped to (ctx, base). Ordinals come from
// one counter per base name, shared by every context: the first Attribute
// ever allocated for base on this registry receives ordinal 0, and each
// later allocation for that base, in any context, advances it by one.
// identity, when non-empty, names a specific registrant within (ctx, base):
// calling New again with the same ctx, base and identity returns the very
// same Attribute (the "optionally reset" rebinding case in the spec),
// rather than minting a new one.
func (r *Registry) New(ctx any, base string, identity string) *Attribute {
	c, ok := r.counters[base]
	if !ok {
		c = &counter{assigned: make(map[registryKey]*Attribute)}
		r.counters[base] = c
	}

	if identity != "" {
		key := registryKey{context: ctx, identity: identity}
		if attr, ok := c.assigned[key]; ok {
			return attr
		}
		attr := &Attribute{base: base, context: ctx, ordinal: c.next}
		c.next++
		c.assigned[key] = attr
		return attr
	}

	attr := &Attribute{base: base, context: ctx, ordinal: c.next}
	c.next++
	return attr
}

// Bases returns the set of base names this registry has ever allocated an
// attribute for, sorted, for diagnostic/debug use.
func (r *Registry) Bases() []string {
	bases := make([]string, 0, len(r.counters))
	for b := range r.counters {
		bases = append(bases, b)
	}
	sort.Strings(bases)
	return bases
}
