package ltl

// Assoc is the associativity direction of an operator, used by the printer
// to decide on which side parentheses become necessary at equal precedence.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// precedence levels, weakest to strongest, per the spec's table. Iff is not
// named in the spec's table explicitly (only DOUBLE_IMPLICATION appears in
// the symbol-kind list); it is placed alongside Implies at the weakest level,
// the natural reading of "implication-family" connectives.
const (
	precImplication = iota
	precBoolean     // AND, OR
	precTemporalBin // UNTIL, RELEASE, WEAK_UNTIL
	precTemporalUn  // GLOBALLY, EVENTUALLY
	precComparison  // GE, GEQ, LE, LEQ, EQUALITY
	precAdditive    // ADD, SUB
	precMultiplic   // MUL, DIV
	precUnary       // NOT, NEXT
)

// infPrecedence represents "+infinity": an operand with no operator in the
// table (a literal, constant, true/false, or a group already rendered) never
// needs parenthesization on precedence grounds alone.
const infPrecedence = 1 << 30

func binPrecedence(op Op) (level int, assoc Assoc) {
	switch op {
	case Implies, Iff:
		return precImplication, AssocLeft
	case And, Or:
		return precBoolean, AssocLeft
	case Until, Release, WeakUntil:
		return precTemporalBin, AssocLeft
	case Ge, Geq, Le, Leq, Equality:
		return precComparison, AssocLeft
	case Add, Sub:
		return precAdditive, AssocLeft
	case Mul, Div:
		return precMultiplic, AssocLeft
	default:
		return infPrecedence, AssocLeft
	}
}

func unaryPrecedence(op UnaryOp) (level int, assoc Assoc) {
	switch op {
	case Globally, Eventually:
		return precTemporalUn, AssocRight
	case Not, Next:
		return precUnary, AssocRight
	default:
		return infPrecedence, AssocRight
	}
}

// outermostPrecedence returns the precedence index of f's outermost
// operator, or infPrecedence if f has none (literal/constant/true/false).
func outermostPrecedence(f Formula) int {
	switch n := f.(type) {
	case *BinaryFormula:
		level, _ := binPrecedence(n.Op)
		return level
	case *UnaryFormula:
		level, _ := unaryPrecedence(n.Op)
		return level
	default:
		return infPrecedence
	}
}
