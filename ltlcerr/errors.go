// Package ltlcerr defines the typed error surface of the ltlc module. Every
// recoverable failure the library raises is one of the kinds below; each
// carries enough context (the offending name, token, or group) to let a
// caller re-run the triggering operation without inspecting library
// internals.
package ltlcerr

import (
	"fmt"

	"github.com/dekarrin/ltlc/internal/util"
)

// ParseError is raised when source text handed to the lexer/parser is
// malformed. Tok is the text of the offending token.
type ParseError struct {
	Tok string
	msg string
}

func (e *ParseError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("parse error: unexpected token %q", e.Tok)
}

// Parse returns a new ParseError for the given offending token text.
func Parse(tok string) error {
	return &ParseError{Tok: tok}
}

// Parsef returns a new ParseError with a formatted message, for cases (such
// as reserved-but-unimplemented productions) where a generic "unexpected
// token" message would be misleading.
func Parsef(tok string, format string, a ...interface{}) error {
	return &ParseError{Tok: tok, msg: fmt.Sprintf(format, a...)}
}

// PortDeclarationError is raised when a contract's port declarations are
// contradictory: the same base name declared as both input and output, or a
// port assigned to a contract a second time. Names holds every offending base
// name.
type PortDeclarationError struct {
	Names []string
	msg   string
}

func (e *PortDeclarationError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("port declaration error: %s", util.MakeTextList(e.Names))
}

// PortDeclaration returns a new PortDeclarationError for the given offending
// names and message.
func PortDeclaration(msg string, names ...string) error {
	return &PortDeclarationError{Names: names, msg: msg}
}

// PortMappingError is raised when a literal appearing in a contract's
// formulas has no matching declared port, or when a composition mapping
// leaves a base-name collision unresolved. Names holds the unmatched base
// name(s).
type PortMappingError struct {
	Names []string
	msg   string
}

func (e *PortMappingError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("port mapping error: unbound name(s) %s", util.MakeTextList(e.Names))
}

// PortMapping returns a new PortMappingError for the given unmatched names.
func PortMapping(names ...string) error {
	return &PortMappingError{Names: names}
}

// PortMappingf returns a new PortMappingError with a formatted message.
func PortMappingf(names []string, format string, a ...interface{}) error {
	return &PortMappingError{Names: names, msg: fmt.Sprintf(format, a...)}
}

// PortConnectionError is raised when a composition mapping would merge two
// output ports under a single new name. Port.Merge also returns it for two
// ports of incomparable types, and Contract.ConnectToPort for a port the
// contract does not own. Group holds the base names of the ports involved.
type PortConnectionError struct {
	Group []string
	msg   string
}

func (e *PortConnectionError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("port connection error: cannot merge outputs %s under one name", util.MakeTextList(e.Group))
}

// PortConnection returns a new PortConnectionError for the given group of
// conflicting port base names.
func PortConnection(group ...string) error {
	return &PortConnectionError{Group: group}
}

// AttributeStateError indicates a programmer bug: an Attribute's merge state
// was read in a context where a resolved state was required but the
// attribute's internal bookkeeping was left half-initialized. It is not
// recoverable by re-running the triggering call with different arguments.
type AttributeStateError struct {
	msg string
}

func (e *AttributeStateError) Error() string {
	return e.msg
}

// AttributeState returns a new AttributeStateError with the given message.
func AttributeState(msg string) error {
	return &AttributeStateError{msg: msg}
}

// NotARefinementError describes a refinement query that came back false. No
// function in this module returns it: Contract.IsRefinement reports that
// outcome as a false result with a nil error.
type NotARefinementError struct {
	msg string
}

func (e *NotARefinementError) Error() string {
	if e.msg == "" {
		return "not a refinement"
	}
	return e.msg
}

// NotARefinement returns a new NotARefinementError, optionally wrapping a
// counter-example description.
func NotARefinement(detail string) error {
	return &NotARefinementError{msg: detail}
}

// NotAnApproximationError is the approximation-query analogue of
// NotARefinementError.
type NotAnApproximationError struct {
	msg string
}

func (e *NotAnApproximationError) Error() string {
	if e.msg == "" {
		return "not an approximation"
	}
	return e.msg
}

// NotAnApproximation returns a new NotAnApproximationError, optionally
// wrapping a counter-example description.
func NotAnApproximation(detail string) error {
	return &NotAnApproximationError{msg: detail}
}

// ModelCheckerError wraps a failure of the external model-checker process
// itself: a non-zero exit with output that doesn't match any recognized
// verdict shape, or an I/O failure launching it. It is always fatal to the
// query that triggered it.
type ModelCheckerError struct {
	Output string
	wrap   error
}

func (e *ModelCheckerError) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("model checker failed: %s (output: %s)", e.wrap.Error(), e.Output)
	}
	return fmt.Sprintf("model checker failed: unrecognized output: %s", e.Output)
}

func (e *ModelCheckerError) Unwrap() error {
	return e.wrap
}

// ModelChecker returns a new ModelCheckerError wrapping the given underlying
// error (which may be nil if the failure is purely about unparseable
// output) along with the raw captured output.
func ModelChecker(wrap error, output string) error {
	return &ModelCheckerError{Output: output, wrap: wrap}
}

// ConfigError is raised when the TOOLS/PATHS config file is missing,
// unreadable, malformed, or missing a required key. Path is the file that
// was being loaded when the failure occurred.
type ConfigError struct {
	Path string
	wrap error
	msg  string
}

func (e *ConfigError) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("config %q: %s", e.Path, e.wrap.Error())
	}
	return fmt.Sprintf("config %q: %s", e.Path, e.msg)
}

func (e *ConfigError) Unwrap() error {
	return e.wrap
}

// Config returns a new ConfigError for the given file path, wrapping the
// underlying error that caused the load to fail.
func Config(path string, wrap error) error {
	return &ConfigError{Path: path, wrap: wrap}
}

// Configf returns a new ConfigError for the given file path with a formatted
// message, for validation failures that have no underlying error to wrap
// (e.g. a required key left empty).
func Configf(path string, format string, a ...interface{}) error {
	return &ConfigError{Path: path, msg: fmt.Sprintf(format, a...)}
}
