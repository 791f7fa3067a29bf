package ops

import (
	"fmt"
	"reflect"

	"github.com/developingchet/counted-sortedlist/internal/counter"
	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

// Outcome is the observable state of one variant after a run.
type Outcome struct {
	Variant    counter.Variant
	Results    []Result
	Values     []int
	TotalAdded int
}

// Comparison holds one Outcome per variant, in counter.Variants order.
type Comparison struct {
	Ops      []Op
	Outcomes []Outcome
}

// DivergenceError reports the first point where two variants disagree.
type DivergenceError struct {
	Step   int // -1 when the final state differs
	Detail string
}

func (e *DivergenceError) Error() string {
	if e.Step < 0 {
		return "variants diverge in final state: " + e.Detail
	}
	return fmt.Sprintf("variants diverge at step %d: %s", e.Step, e.Detail)
}

// Compare runs ops against a fresh list of every variant and checks they
// agree on each result, the final contents and the tally. The Comparison is
// returned even when an error is.
func Compare(ops []Op) (*Comparison, error) {
	cmp := &Comparison{Ops: ops}
	for _, v := range counter.Variants {
		l, err := counter.New(v)
		if err != nil {
			return nil, err
		}
		results := Run(l, ops)
		cmp.Outcomes = append(cmp.Outcomes, Outcome{
			Variant:    v,
			Results:    results,
			Values:     sortedlist.Values(l),
			TotalAdded: l.TotalAdded(),
		})
	}
	return cmp, cmp.check()
}

func (c *Comparison) check() error {
	base := c.Outcomes[0]
	for _, o := range c.Outcomes[1:] {
		for i := range base.Results {
			a, b := base.Results[i], o.Results[i]
			if a.Changed != b.Changed || a.Value != b.Value || !reflect.DeepEqual(a.Err, b.Err) {
				return &DivergenceError{Step: i, Detail: fmt.Sprintf("%s: %s=%+v %s=%+v", a.Op, base.Variant, a, o.Variant, b)}
			}
		}
		if !reflect.DeepEqual(base.Values, o.Values) {
			return &DivergenceError{Step: -1, Detail: fmt.Sprintf("contents %s=%v %s=%v", base.Variant, base.Values, o.Variant, o.Values)}
		}
		if base.TotalAdded != o.TotalAdded {
			return &DivergenceError{Step: -1, Detail: fmt.Sprintf("total_added %s=%d %s=%d", base.Variant, base.TotalAdded, o.Variant, o.TotalAdded)}
		}
	}
	return nil
}
