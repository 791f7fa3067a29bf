package counter

import "github.com/developingchet/counted-sortedlist/internal/sortedlist"

var _ Counted = (*DelegationList)(nil)

// DelegationList holds a private SortedIntList and forwards every call to it.
// Only Add and AddAll touch the tally.
type DelegationList struct {
	delegate   *sortedlist.SortedIntList
	totalAdded int
}

// NewDelegation returns an empty DelegationList.
func NewDelegation() *DelegationList {
	return &DelegationList{delegate: sortedlist.New()}
}

func (l *DelegationList) Add(num int) bool {
	l.totalAdded++
	return l.delegate.Add(num)
}

// AddAll counts and forwards each element on its own. The delegate's AddAll
// is never used, so the tally does not depend on how it is implemented.
func (l *DelegationList) AddAll(list sortedlist.IntegerList) bool {
	changed := false
	for _, v := range sortedlist.Values(list) {
		l.totalAdded++
		if l.delegate.Add(v) {
			changed = true
		}
	}
	return changed
}

func (l *DelegationList) Get(index int) (int, error) { return l.delegate.Get(index) }

func (l *DelegationList) Remove(num int) bool { return l.delegate.Remove(num) }

func (l *DelegationList) RemoveAll(list sortedlist.IntegerList) bool {
	return l.delegate.RemoveAll(list)
}

func (l *DelegationList) Size() int { return l.delegate.Size() }

func (l *DelegationList) TotalAdded() int { return l.totalAdded }

func (l *DelegationList) Variant() Variant { return Delegation }

func (l *DelegationList) String() string { return l.delegate.String() }
