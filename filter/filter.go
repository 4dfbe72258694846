// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package filter matches pulses against boolean expressions.
//
// Expressions use the expr language (https://expr-lang.org) with the
// following variables:
//
//	from   name of the sending module ("button" for the button)
//	to     name of the receiving module
//	kind   kind of the receiving module (broadcaster, flipflop, conjunction, sink)
//	high   true for a high pulse
//	low    true for a low pulse
//	press  number of the current press, starting at 1
//
// For example:
//
//	to == "rx" && low
//	from in ["a", "b"] && high && press > 10
//
package filter

import (
	"github.com/db47h/pulsesim"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Env is the set of variables available to an expression.
//
type Env struct {
	From  string
	To    string
	Kind  string
	High  bool
	Press uint64
}

// NewEnv returns the Env for pulse p delivered in network n.
//
func NewEnv(n *pulsesim.Network, p pulsesim.Pulse) Env {
	return Env{
		From:  n.Name(p.From),
		To:    n.Name(p.To),
		Kind:  n.Kind(p.To).String(),
		High:  p.High,
		Press: n.Presses(),
	}
}

func (e *Env) vars() map[string]interface{} {
	return map[string]interface{}{
		"from":  e.From,
		"to":    e.To,
		"kind":  e.Kind,
		"high":  e.High,
		"low":   !e.High,
		"press": e.Press,
	}
}

// A Filter is a compiled expression.
//
type Filter struct {
	src  string
	prog *vm.Program
}

// Compile compiles src. The expression must evaluate to a boolean.
//
func Compile(src string) (*Filter, error) {
	var e Env
	prog, err := expr.Compile(src, expr.Env(e.vars()), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "compile filter %q", src)
	}
	return &Filter{src: src, prog: prog}, nil
}

// String returns the source of the expression.
//
func (f *Filter) String() string { return f.src }

// Match returns true if the expression evaluates to true for e.
//
func (f *Filter) Match(e Env) (bool, error) {
	v, err := expr.Run(f.prog, e.vars())
	if err != nil {
		return false, errors.Wrapf(err, "run filter %q", f.src)
	}
	return v.(bool), nil
}

// Trace presses the button once on n and calls fn for every delivered pulse
// matched by f. Evaluation stops at the first error, but the press always
// runs to completion.
//
func (f *Filter) Trace(n *pulsesim.Network, fn func(p pulsesim.Pulse)) (pulsesim.Tally, error) {
	var ferr error
	t, err := n.Trace(func(p pulsesim.Pulse) {
		if ferr != nil {
			return
		}
		ok, err := f.Match(NewEnv(n, p))
		if err != nil {
			ferr = err
			return
		}
		if ok {
			fn(p)
		}
	})
	if err != nil {
		return t, err
	}
	return t, ferr
}

// PressUntil presses the button on n until a delivered pulse matches f and
// returns the number of the press on which it happened. The press always runs
// to completion.
//
// It returns pulsesim.ErrLimitReached once limit presses have been made
// without a match. A limit of 0 means pulsesim.DefaultLimit.
//
func PressUntil(n *pulsesim.Network, f *Filter, limit uint64) (uint64, error) {
	if limit == 0 {
		limit = pulsesim.DefaultLimit
	}
	var hit bool
	for i := uint64(0); i < limit; i++ {
		if _, err := f.Trace(n, func(pulsesim.Pulse) { hit = true }); err != nil {
			return 0, errors.Wrapf(err, "press %d", n.Presses())
		}
		if hit {
			return n.Presses(), nil
		}
	}
	return 0, errors.Wrapf(pulsesim.ErrLimitReached, "filter %q after %d presses", f.src, limit)
}
