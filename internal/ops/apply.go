package ops

import (
	"github.com/developingchet/counted-sortedlist/internal/counter"
	"github.com/developingchet/counted-sortedlist/internal/metrics"
	"github.com/developingchet/counted-sortedlist/internal/sortedlist"
)

// Result is the outcome of applying one Op.
type Result struct {
	Op Op

	// Changed is the boolean returned by add/addall/remove/removeall.
	Changed bool

	// Value is the element for get, the size for size and the tally for total.
	Value int

	// Err is the list's own error, passed through unchanged.
	Err error
}

// Apply runs op against l and records metrics labelled with l's variant.
// add and remove with several arguments make one call per argument.
func Apply(l counter.Counted, op Op) Result {
	variant := string(l.Variant())
	beforeTotal := l.TotalAdded()
	beforeSize := l.Size()

	res := Result{Op: op}
	switch op.Kind {
	case KindAdd:
		for _, n := range op.Args {
			if l.Add(n) {
				res.Changed = true
			}
		}
	case KindAddAll:
		res.Changed = l.AddAll(sortedlist.Ints(op.Args...))
	case KindGet:
		if len(op.Args) != 1 {
			res.Err = &ParseError{Input: op.String(), Err: ErrBadArgument}
			break
		}
		res.Value, res.Err = l.Get(op.Args[0])
	case KindRemove:
		for _, n := range op.Args {
			if l.Remove(n) {
				res.Changed = true
			}
		}
	case KindRemoveAll:
		res.Changed = l.RemoveAll(sortedlist.Ints(op.Args...))
	case KindSize:
		res.Value = l.Size()
	case KindTotal:
		res.Value = l.TotalAdded()
	default:
		res.Err = &ParseError{Input: op.String(), Err: ErrUnknownOp}
	}

	afterSize := l.Size()
	metrics.OpsApplied.WithLabelValues(string(op.Kind)).Inc()
	if res.Err != nil {
		metrics.OpErrors.WithLabelValues(string(op.Kind)).Inc()
	}
	if d := l.TotalAdded() - beforeTotal; d > 0 {
		metrics.InsertAttempts.WithLabelValues(variant).Add(float64(d))
	}
	switch d := afterSize - beforeSize; {
	case d > 0:
		metrics.InsertsAbsorbed.WithLabelValues(variant).Add(float64(d))
	case d < 0:
		metrics.Removals.WithLabelValues(variant).Add(float64(-d))
	}
	metrics.ListSize.WithLabelValues(variant).Set(float64(afterSize))

	return res
}

// Run applies ops in order and returns one Result per op. A failing op does
// not stop the run.
func Run(l counter.Counted, ops []Op) []Result {
	out := make([]Result, 0, len(ops))
	for _, op := range ops {
		out = append(out, Apply(l, op))
	}
	return out
}
