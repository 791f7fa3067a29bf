// Package sortedlist provides the IntegerList contract and SortedIntList, an
// ascending, duplicate-free collection of ints.
package sortedlist

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidIndex is returned by Get when the index lies outside [0, Size()).
var ErrInvalidIndex = errors.New("invalid index")

// IndexError reports an out-of-range Get. It unwraps to ErrInvalidIndex.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d not in [0, %d)", ErrInvalidIndex, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// IntegerList is a collection of ints.
type IntegerList interface {
	// Add inserts num and reports whether the contents changed.
	Add(num int) bool

	// AddAll inserts every element of list and reports whether the contents changed.
	AddAll(list IntegerList) bool

	// Get returns the element at index, or an *IndexError.
	Get(index int) (int, error)

	// Remove deletes num and reports whether it was present.
	Remove(num int) bool

	// RemoveAll deletes every element of list and reports whether anything was removed.
	RemoveAll(list IntegerList) bool

	Size() int
}

// Adder is the single-element insertion AddAll routes through.
type Adder interface {
	Add(num int) bool
}

// Compile-time proof that SortedIntList satisfies IntegerList.
var _ IntegerList = (*SortedIntList)(nil)

// SortedIntList keeps its elements in ascending order and rejects duplicates.
// It is not safe for concurrent use.
type SortedIntList struct {
	data []int
	self Adder
}

// New returns an empty list whose AddAll calls its own Add.
func New() *SortedIntList {
	l := &SortedIntList{}
	l.self = l
	return l
}

// NewDispatching returns an empty list whose AddAll calls self.Add once per
// element, in the argument's index order. Types embedding a SortedIntList pass
// themselves here so an overridden Add observes bulk insertions.
func NewDispatching(self Adder) *SortedIntList {
	return &SortedIntList{self: self}
}

func (l *SortedIntList) Add(num int) bool {
	i := sort.SearchInts(l.data, num)
	if i < len(l.data) && l.data[i] == num {
		return false
	}
	l.data = append(l.data, 0)
	copy(l.data[i+1:], l.data[i:])
	l.data[i] = num
	return true
}

func (l *SortedIntList) AddAll(list IntegerList) bool {
	adder := l.self
	if adder == nil {
		adder = l
	}
	changed := false
	for _, v := range Values(list) {
		if adder.Add(v) {
			changed = true
		}
	}
	return changed
}

func (l *SortedIntList) Get(index int) (int, error) {
	if index < 0 || index >= len(l.data) {
		return 0, &IndexError{Index: index, Size: len(l.data)}
	}
	return l.data[index], nil
}

func (l *SortedIntList) Remove(num int) bool {
	i := sort.SearchInts(l.data, num)
	if i == len(l.data) || l.data[i] != num {
		return false
	}
	l.data = append(l.data[:i], l.data[i+1:]...)
	return true
}

func (l *SortedIntList) RemoveAll(list IntegerList) bool {
	removed := false
	for _, v := range Values(list) {
		if l.Remove(v) {
			removed = true
		}
	}
	return removed
}

func (l *SortedIntList) Size() int { return len(l.data) }

func (l *SortedIntList) String() string { return Format(l) }

// Values copies the elements of list in index order. The copy is taken up
// front so callers may mutate list (or pass a list to its own bulk methods)
// while iterating.
//
// If Get fails before Size() elements have been read, Values returns the
// prefix read so far. Every bulk operation in this module, including the
// counted lists' tallies, goes through Values and so sees only that prefix.
func Values(list IntegerList) []int {
	if list == nil {
		return nil
	}
	n := list.Size()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := list.Get(i)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// Format renders list as "[a b c]".
func Format(list IntegerList) string {
	vals := Values(list)
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
