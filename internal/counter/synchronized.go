package counter

import (
	"sync"

	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

var _ Counted = (*SyncList)(nil)

// SyncList serialises every call to a Counted behind one mutex. The counted
// lists themselves provide no synchronisation.
type SyncList struct {
	mu    sync.Mutex
	inner Counted
}

// Synchronized wraps c for use from several goroutines. Wrapping a *SyncList
// returns it unchanged.
func Synchronized(c Counted) *SyncList {
	if s, ok := c.(*SyncList); ok {
		return s
	}
	return &SyncList{inner: c}
}

func (s *SyncList) Add(num int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Add(num)
}

// AddAll snapshots list before locking so s.AddAll(s) does not deadlock.
func (s *SyncList) AddAll(list sortedlist.IntegerList) bool {
	vals := sortedlist.Ints(sortedlist.Values(list)...)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.AddAll(vals)
}

func (s *SyncList) Get(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Get(index)
}

func (s *SyncList) Remove(num int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(num)
}

func (s *SyncList) RemoveAll(list sortedlist.IntegerList) bool {
	vals := sortedlist.Ints(sortedlist.Values(list)...)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.RemoveAll(vals)
}

func (s *SyncList) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Size()
}

func (s *SyncList) TotalAdded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.TotalAdded()
}

func (s *SyncList) Variant() Variant { return s.inner.Variant() }

// Snapshot returns the contents and tally read under a single lock.
func (s *SyncList) Snapshot() ([]int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedlist.Values(s.inner), s.inner.TotalAdded()
}
