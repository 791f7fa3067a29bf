// Package ops parses textual list operations and applies them to counted
// lists.
package ops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind names a list operation.
type Kind string

const (
	KindAdd       Kind = "add"
	KindAddAll    Kind = "addall"
	KindGet       Kind = "get"
	KindRemove    Kind = "remove"
	KindRemoveAll Kind = "removeall"
	KindSize      Kind = "size"
	KindTotal     Kind = "total"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrBadArgument = errors.New("bad argument")
)

// arity is the accepted argument count per kind; -1 means one or more,
// -2 means zero or more.
var arity = map[Kind]int{
	KindAdd:       -1,
	KindAddAll:    -2,
	KindGet:       1,
	KindRemove:    -1,
	KindRemoveAll: -2,
	KindSize:      0,
	KindTotal:     0,
}

// Op is one parsed operation.
type Op struct {
	Kind Kind
	Args []int
}

func (o Op) String() string {
	if len(o.Args) == 0 && (o.Kind == KindSize || o.Kind == KindTotal) {
		return string(o.Kind)
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = strconv.Itoa(a)
	}
	return string(o.Kind) + "=" + strings.Join(parts, ",")
}

// ParseError reports malformed op text.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads "kind" or "kind=a,b,c". Kind matching ignores case, dashes and
// underscores, so "add-all" and "ADD_ALL" both mean addall.
func Parse(s string) (Op, error) {
	name, rawArgs, hasArgs := strings.Cut(strings.TrimSpace(s), "=")
	kind := Kind(strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name))))
	want, ok := arity[kind]
	if !ok {
		return Op{}, &ParseError{Input: s, Err: fmt.Errorf("%w: %q", ErrUnknownOp, name)}
	}

	var args []int
	if hasArgs && strings.TrimSpace(rawArgs) != "" {
		for _, f := range strings.Split(rawArgs, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return Op{}, &ParseError{Input: s, Err: fmt.Errorf("%w: %q is not an integer", ErrBadArgument, f)}
			}
			args = append(args, n)
		}
	}

	switch {
	case want == -1 && len(args) == 0:
		return Op{}, &ParseError{Input: s, Err: fmt.Errorf("%w: %s needs at least one value", ErrBadArgument, kind)}
	case want >= 0 && len(args) != want:
		return Op{}, &ParseError{Input: s, Err: fmt.Errorf("%w: %s takes %d value(s), got %d", ErrBadArgument, kind, want, len(args))}
	}
	return Op{Kind: kind, Args: args}, nil
}

// ParseAll parses each element of in, stopping at the first error.
func ParseAll(in []string) ([]Op, error) {
	out := make([]Op, 0, len(in))
	for _, s := range in {
		op, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}
