// Package counter augments sortedlist.SortedIntList with a tally of attempted
// insertions, once by delegation and once by embedding.
//
// Both variants count attempts, not successes: a rejected duplicate still
// advances TotalAdded, and removals never move it back.
package counter

import (
	"fmt"
	"strings"

	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

// Variant names a construction strategy.
type Variant string

const (
	// Delegation holds a private SortedIntList and forwards to it.
	Delegation Variant = "delegation"
	// Inheritance embeds a SortedIntList and overrides Add.
	Inheritance Variant = "inheritance"
)

// Variants lists every supported strategy.
var Variants = []Variant{Delegation, Inheritance}

// Counted is an IntegerList that also reports how many insertions were attempted.
type Counted interface {
	sortedlist.IntegerList

	// TotalAdded returns the number of attempted single-element insertions.
	TotalAdded() int

	Variant() Variant
}

// ParseVariant maps a config or flag value onto a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.TrimSpace(strings.ToLower(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("counter: unknown variant %q (want delegation or inheritance)", s)
}

// New returns an empty counted list built with strategy v.
func New(v Variant) (Counted, error) {
	switch v {
	case Delegation:
		return NewDelegation(), nil
	case Inheritance:
		return NewInheritance(), nil
	default:
		return nil, fmt.Errorf("counter: unknown variant %q", v)
	}
}

// Restore rebuilds a counted list from persisted contents and tally. The
// restored elements are not counted again.
func Restore(v Variant, values []int, total int) (Counted, error) {
	if total < 0 {
		return nil, fmt.Errorf("counter: restore: negative total %d", total)
	}
	var l Counted
	switch v {
	case Delegation:
		d := NewDelegation()
		for _, n := range values {
			d.delegate.Add(n)
		}
		d.totalAdded = total
		l = d
	case Inheritance:
		e := NewInheritance()
		for _, n := range values {
			e.SortedIntList.Add(n)
		}
		e.totalAdded = total
		l = e
	default:
		return nil, fmt.Errorf("counter: unknown variant %q", v)
	}
	if err := checkRestored(l, total); err != nil {
		return nil, err
	}
	return l, nil
}

// checkRestored enforces TotalAdded >= Size: every element present was added
// at least once.
func checkRestored(l Counted, total int) error {
	if total < l.Size() {
		return fmt.Errorf("counter: restore: total %d below size %d", total, l.Size())
	}
	return nil
}
