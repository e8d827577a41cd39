// Package skills provides the canonical skill token set used by the matching
// engine. Two skills count as the same skill iff their canonical forms are
// equal.
package skills

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Set is a set of canonical skill tokens.
type Set map[string]struct{}

// Canonical converts one raw skill into its canonical token: Unicode NFKC
// normalization, case folding, surrounding whitespace trimmed and internal
// whitespace runs collapsed to a single space. Case folding is stricter than
// a plain lower-casing (it also equates forms like "ß" and "ss"). The second
// return value is false when nothing remains after normalization.
func Canonical(raw string) (string, bool) {
	tok := norm.NFKC.String(raw)
	// A cases.Caser is stateful, so build one per call instead of sharing.
	tok = cases.Fold().String(tok)
	tok = strings.Join(strings.Fields(tok), " ")
	if tok == "" {
		return "", false
	}
	return tok, true
}

// Normalize builds a Set from raw skill strings. Empty and whitespace-only
// entries are dropped, duplicates collapse to one member. Normalize is total:
// any input yields a valid (possibly empty) Set.
func Normalize(raw []string) Set {
	s := make(Set, len(raw))
	for _, r := range raw {
		tok, ok := Canonical(r)
		if !ok {
			continue
		}
		s[tok] = struct{}{}
	}
	return s
}

// Split normalizes one comma-separated skill cell, the storage and CSV
// representation of a skill list.
func Split(cell string) Set {
	return Normalize(strings.Split(cell, ","))
}

// Has reports whether the canonical form of tok is a member.
func (s Set) Has(tok string) bool {
	c, ok := Canonical(tok)
	if !ok {
		return false
	}
	_, ok = s[c]
	return ok
}

// Len returns the number of canonical tokens.
func (s Set) Len() int { return len(s) }

// Overlap counts tokens present in both sets, walking the smaller one.
func (s Set) Overlap(other Set) int {
	small, large := s, other
	if len(other) < len(s) {
		small, large = other, s
	}
	n := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			n++
		}
	}
	return n
}

// List returns the tokens in sorted order.
func (s Set) List() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// String renders the set as a sorted comma-joined list, the form persisted to
// the store.
func (s Set) String() string {
	return strings.Join(s.List(), ",")
}

// Equal reports whether both sets contain exactly the same tokens.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for tok := range s {
		if _, ok := other[tok]; !ok {
			return false
		}
	}
	return true
}
