// Package util holds small text-formatting helpers shared by the error and
// verification packages.
package util

import "strings"

// MakeTextList joins items into a human-readable, Oxford-comma-separated
// list ("a", "a and b", "a, b, and c"). Used to render the offending name(s)
// in a typed error's message.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}
