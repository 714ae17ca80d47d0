package util

import (
	"sort"
	"strings"
)

// StringSet is a map[string]bool with methods for the name-deduplication
// bookkeeping the rest of the module needs: tracking which unique literal
// names, base names, or port names have already been seen without caring
// about insertion order.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from existing
// map[string]bool values.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k, v := range m {
			if v {
				s[k] = true
			}
		}
	}
	return s
}

// Add adds value to the set. If it is already present, no effect occurs.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	return s[value]
}

// Len returns the number of elements in the set.
func (s StringSet) Len() int {
	return len(s)
}

// Elements returns the set's members as a slice, sorted for deterministic
// output (error messages listing offending names must not vary run to run).
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	sort.Strings(elems)
	return elems
}

// String renders the set as a sorted, comma-joined list.
func (s StringSet) String() string {
	return strings.Join(s.Elements(), ", ")
}
