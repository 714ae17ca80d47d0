package ltl

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// PrintOptions controls Print's rendering. The zero value is the default:
// precedence-minimal parenthesization, unique names.
type PrintOptions struct {
	// IgnorePrecedence fully parenthesises every binary and unary operand
	// unconditionally, the form model checkers with strict parsers require.
	IgnorePrecedence bool

	// WithBaseNames prints a literal's base name instead of its unique
	// name. Intended for user-facing diagnostics only: the result is not
	// guaranteed to parse back to an equivalent tree when two literals
	// share a base name but not an identity.
	WithBaseNames bool
}

// PrintOption mutates a PrintOptions in place; Print applies them in order.
type PrintOption func(*PrintOptions)

// IgnorePrecedence returns a PrintOption that turns on full
// parenthesisation.
func IgnorePrecedence() PrintOption {
	return func(o *PrintOptions) { o.IgnorePrecedence = true }
}

// WithBaseNames returns a PrintOption that prints literals by base name.
func WithBaseNames() PrintOption {
	return func(o *PrintOptions) { o.WithBaseNames = true }
}

// Print renders f as text in the dialect of set.
func Print(f Formula, set SymbolSet, opts ...PrintOption) string {
	var o PrintOptions
	for _, opt := range opts {
		opt(&o)
	}
	return printNode(f, set, o)
}

// Diagnostic renders f in the Base dialect and wraps it to width columns,
// for error messages and log lines where a single long formula line would
// otherwise blow out the terminal.
func Diagnostic(f Formula, width int) string {
	s := Print(f, BaseSymbolSet(), WithBaseNames())
	return rosed.Edit(s).Wrap(width).String()
}

func printNode(f Formula, set SymbolSet, o PrintOptions) string {
	switch n := f.(type) {
	case TrueFormula:
		return set.Symbol(KindTrue)
	case FalseFormula:
		return set.Symbol(KindFalse)
	case ConstantFormula:
		if n.IsFloat {
			return fmt.Sprintf("%v", n.FloatVal)
		}
		return fmt.Sprintf("%v", n.IntVal)
	case *LiteralFormula:
		if o.WithBaseNames {
			return n.BaseName()
		}
		return n.UniqueName()
	case *UnaryFormula:
		return printUnary(n, set, o)
	case *BinaryFormula:
		return printBinary(n, set, o)
	default:
		return fmt.Sprintf("<?unknown formula %T?>", f)
	}
}

func printUnary(n *UnaryFormula, set SymbolSet, o PrintOptions) string {
	sym := set.Symbol(unarySymbol(n.Op))
	operand := printNode(n.operand, set, o)

	level, _ := unaryPrecedence(n.Op)
	needParens := o.IgnorePrecedence || outermostPrecedence(n.operand) < level
	if needParens {
		operand = parenthesize(set, operand)
	}
	return sym + " " + operand
}

func printBinary(n *BinaryFormula, set SymbolSet, o PrintOptions) string {
	sym := set.Symbol(opSymbol(n.Op))
	left := printNode(n.left, set, o)
	right := printNode(n.right, set, o)

	level, assoc := binPrecedence(n.Op)
	iL := outermostPrecedence(n.left)
	iR := outermostPrecedence(n.right)

	var parenLeft, parenRight bool
	if o.IgnorePrecedence {
		parenLeft, parenRight = true, true
	} else if assoc == AssocLeft {
		parenLeft = iL < level
		parenRight = iR <= level
	} else {
		parenLeft = iL <= level
		parenRight = iR < level
	}

	if parenLeft {
		left = parenthesize(set, left)
	}
	if parenRight {
		right = parenthesize(set, right)
	}
	return left + " " + sym + " " + right
}

func parenthesize(set SymbolSet, s string) string {
	var b strings.Builder
	b.WriteString(set.Symbol(KindLParen))
	b.WriteString(s)
	b.WriteString(set.Symbol(KindRParen))
	return b.String()
}
