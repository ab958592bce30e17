package rpc

import (
	"context"
	"fmt"
)

// Variant is one deployed signature of an operation's procedure. Shape lets
// older signatures drop arguments newer ones accept (e.g. driver assignment).
type Variant struct {
	Procedure string
	Shape     func(args []Arg) []Arg
}

// Chain tries procedure variants newest-first. A variant is skipped only when
// the remote reports undefined_function; any other outcome is final. This
// tolerates partial rollout of the remote procedure layer.
type Chain struct {
	Operation string
	Variants  []Variant

	// OnFallback is called with the missing procedure name before the next
	// variant is tried. Used for metrics; may be nil.
	OnFallback func(procedure string)
}

// Invoke runs the chain with the actor id as the leading positional argument.
func (c Chain) Invoke(ctx context.Context, inv Invoker, actorID string, args []Arg) ([]Row, error) {
	for _, v := range c.Variants {
		shaped := args
		if v.Shape != nil {
			shaped = v.Shape(args)
		}
		full := make([]Arg, 0, len(shaped)+1)
		full = append(full, Positional(actorID))
		full = append(full, shaped...)

		rows, err := inv.Invoke(ctx, v.Procedure, full)
		if IsUndefinedFunction(err) {
			if c.OnFallback != nil {
				c.OnFallback(v.Procedure)
			}
			continue
		}
		return rows, err
	}
	return nil, fmt.Errorf("%s: %w", c.Operation, ErrMissingProcedure)
}

// DropArgs returns a Shape that removes the named arguments.
func DropArgs(names ...string) func([]Arg) []Arg {
	dropped := make(map[string]struct{}, len(names))
	for _, n := range names {
		dropped[n] = struct{}{}
	}
	return func(args []Arg) []Arg {
		kept := make([]Arg, 0, len(args))
		for _, a := range args {
			if _, skip := dropped[a.Name]; skip {
				continue
			}
			kept = append(kept, a)
		}
		return kept
	}
}
