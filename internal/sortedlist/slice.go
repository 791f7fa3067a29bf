package sortedlist

var _ IntegerList = (*IntSlice)(nil)

// IntSlice is an insertion-ordered IntegerList that keeps duplicates. It is
// the usual way to hand an ordered argument such as [3 1 2] to AddAll.
type IntSlice []int

// Ints returns an IntSlice holding nums in the given order.
func Ints(nums ...int) *IntSlice {
	s := IntSlice(append([]int(nil), nums...))
	return &s
}

func (s *IntSlice) Add(num int) bool {
	*s = append(*s, num)
	return true
}

func (s *IntSlice) AddAll(list IntegerList) bool {
	vals := Values(list)
	*s = append(*s, vals...)
	return len(vals) > 0
}

func (s *IntSlice) Get(index int) (int, error) {
	if index < 0 || index >= len(*s) {
		return 0, &IndexError{Index: index, Size: len(*s)}
	}
	return (*s)[index], nil
}

// Remove deletes the first occurrence of num.
func (s *IntSlice) Remove(num int) bool {
	for i, v := range *s {
		if v == num {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every occurrence of each element of list.
func (s *IntSlice) RemoveAll(list IntegerList) bool {
	drop := make(map[int]struct{})
	for _, v := range Values(list) {
		drop[v] = struct{}{}
	}
	kept := (*s)[:0]
	for _, v := range *s {
		if _, ok := drop[v]; !ok {
			kept = append(kept, v)
		}
	}
	removed := len(kept) != len(*s)
	*s = kept
	return removed
}

func (s *IntSlice) Size() int { return len(*s) }
