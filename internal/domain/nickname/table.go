// Package nickname maps name variants onto their canonical name group and
// builds that mapping from a raw alias corpus.
package nickname

import (
	"fmt"
	"sort"
	"strings"
)

// Pair is one row of the lookup artifact.
type Pair struct {
	RawName   string
	NameGroup string
}

// Table is the immutable nickname lookup. Keys and values are lowercase
// ASCII letters only; no key ever reappears as a value, so lookups never
// need a second hop.
type Table struct {
	groups map[string]string
}

// NewTable builds a Table from pairs, verifying the invariants the builder
// guarantees. It returns ErrDataIntegrity when a pair violates them, so a
// hand-edited or truncated artifact cannot be loaded silently.
func NewTable(pairs []Pair) (*Table, error) {
	groups := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if !lowerAlpha(p.RawName) || !lowerAlpha(p.NameGroup) {
			return nil, fmt.Errorf("%w: pair %q -> %q is not lowercase a-z", ErrDataIntegrity, p.RawName, p.NameGroup)
		}
		if p.RawName == p.NameGroup {
			return nil, fmt.Errorf("%w: %q maps to itself", ErrDataIntegrity, p.RawName)
		}
		if prev, ok := groups[p.RawName]; ok && prev != p.NameGroup {
			return nil, fmt.Errorf("%w: %q maps to both %q and %q", ErrDataIntegrity, p.RawName, prev, p.NameGroup)
		}
		groups[p.RawName] = p.NameGroup
	}
	for raw, group := range groups {
		if _, ok := groups[group]; ok {
			return nil, fmt.Errorf("%w: group %q of %q is itself mapped", ErrDataIntegrity, group, raw)
		}
	}
	return &Table{groups: groups}, nil
}

// Lookup returns the canonical name group for name, or name itself when no
// mapping exists. Lookup is total; the empty string maps to itself.
func (t *Table) Lookup(name string) string {
	if group, ok := t.groups[name]; ok {
		return group
	}
	return name
}

// Len returns the number of mapped names.
func (t *Table) Len() int {
	return len(t.groups)
}

// Pairs returns the table rows sorted by raw name, the artifact order.
func (t *Table) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t.groups))
	for raw, group := range t.groups {
		pairs = append(pairs, Pair{RawName: raw, NameGroup: group})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].RawName < pairs[j].RawName })
	return pairs
}

func lowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < 'a' || r > 'z' }) == -1
}
