package counter

import "github.com/developingchet/counted-sortedlist/internal/sortedlist"

var _ Counted = (*InheritanceList)(nil)

// InheritanceList embeds a SortedIntList and overrides Add. Get, Remove,
// RemoveAll and Size are promoted from the embedded list unchanged.
//
// AddAll relies on the embedded list routing each bulk element through
// InheritanceList.Add; NewInheritance wires that with NewDispatching. A
// zero-value InheritanceList has no embedded list and must not be used.
type InheritanceList struct {
	*sortedlist.SortedIntList
	totalAdded int
}

// NewInheritance returns an empty InheritanceList.
func NewInheritance() *InheritanceList {
	l := &InheritanceList{}
	l.SortedIntList = sortedlist.NewDispatching(l)
	return l
}

func (l *InheritanceList) Add(num int) bool {
	l.totalAdded++
	return l.SortedIntList.Add(num)
}

func (l *InheritanceList) AddAll(list sortedlist.IntegerList) bool {
	return l.SortedIntList.AddAll(list)
}

func (l *InheritanceList) TotalAdded() int { return l.totalAdded }

func (l *InheritanceList) Variant() Variant { return Inheritance }
