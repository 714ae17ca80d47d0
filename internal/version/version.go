// Package version contains information on the current version of the
// program. It is split from the main package for easy use by anything
// wanting to report it without pulling in command-line parsing.
package version

// Current is the string representing the current version of ltlc.
const Current = "0.1.0"
