// Package typelattice implements the tiny subtype lattice used to tag LTL
// literals: Bool ⊑ Int ⊑ Float, plus Frozen variants used for state-frozen
// model-checker variables. The lattice is used only to decide whether two
// connected ports/literals have comparable types, and if so which of the two
// is retained.
package typelattice

import "fmt"

// Kind is the base sort of a Type, ignoring bounds and frozenness.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// rank gives the Bool ⊑ Int ⊑ Float ordering a comparable integer.
func (k Kind) rank() int { return int(k) }

// Type is a point in the Bool ⊑ Int ⊑ Float lattice. Int may additionally
// carry bounds; any Kind may be Frozen, which denotes a state-frozen
// variable for the model checker. Frozen types compare equal only to
// themselves, never to their non-frozen counterpart.
type Type struct {
	Kind   Kind
	Frozen bool

	// Lower and Upper are only meaningful when Kind == Int. Either or both
	// may be nil, meaning unbounded in that direction.
	Lower *int
	Upper *int
}

// NewBool returns the unbounded, non-frozen Bool type.
func NewBool() Type { return Type{Kind: Bool} }

// NewFloat returns the unbounded, non-frozen Float type.
func NewFloat() Type { return Type{Kind: Float} }

// NewInt returns an Int type, optionally bounded. Pass nil for an unbounded
// side.
func NewInt(lower, upper *int) Type {
	return Type{Kind: Int, Lower: lower, Upper: upper}
}

// FrozenBool returns the Frozen Bool type.
func FrozenBool() Type { t := NewBool(); t.Frozen = true; return t }

// FrozenInt returns a Frozen Int type with the given bounds.
func FrozenInt(lower, upper *int) Type {
	t := NewInt(lower, upper)
	t.Frozen = true
	return t
}

func (t Type) String() string {
	s := t.Kind.String()
	if t.Kind == Int && (t.Lower != nil || t.Upper != nil) {
		lo, hi := "-inf", "+inf"
		if t.Lower != nil {
			lo = fmt.Sprintf("%d", *t.Lower)
		}
		if t.Upper != nil {
			hi = fmt.Sprintf("%d", *t.Upper)
		}
		s = fmt.Sprintf("%s[%s,%s]", s, lo, hi)
	}
	if t.Frozen {
		s = "Frozen" + s
	}
	return s
}

// Equal reports whether t and o denote the same type, including bounds and
// frozenness. Bounds are compared by value, not pointer identity.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Frozen != o.Frozen {
		return false
	}
	return intPtrEqual(t.Lower, o.Lower) && intPtrEqual(t.Upper, o.Upper)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LessEq reports whether t ⊑ o in the Bool ⊑ Int ⊑ Float lattice. A Frozen
// type is never ⊑ a non-Frozen type, and is ⊑ another Frozen type only of
// the same Kind (frozen variables compare equal only to themselves, never
// merely "narrower").
func (t Type) LessEq(o Type) bool {
	if t.Frozen != o.Frozen {
		return false
	}
	if t.Frozen {
		return t.Kind == o.Kind
	}
	return t.Kind.rank() <= o.Kind.rank()
}

// Comparable reports whether t and o are related by ⊑ in either direction,
// which is the only requirement placed on two types before they may be
// connected or merged.
func (t Type) Comparable(o Type) bool {
	return t.LessEq(o) || o.LessEq(t)
}

// Narrower returns whichever of a, b is ⊑-smaller. It returns an error if a
// and b are not Comparable.
func Narrower(a, b Type) (Type, error) {
	if !a.Comparable(b) {
		return Type{}, fmt.Errorf("typelattice: %s and %s are not comparable", a, b)
	}
	if a.LessEq(b) {
		return a, nil
	}
	return b, nil
}
