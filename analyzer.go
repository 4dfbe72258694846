// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"math/bits"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Feeders returns the modules feeding the conjunction that decides whether
// target receives a low pulse.
//
// If target is a conjunction, its inputs are returned. Otherwise target must
// have a single predecessor that is a conjunction, and the inputs of that
// conjunction are returned.
//
func (n *Network) Feeders(target ID) ([]ID, error) {
	conj := target
	if n.Kind(target) != Conjunction {
		ps := n.Predecessors(target)
		if len(ps) != 1 || n.Kind(ps[0]) != Conjunction {
			return nil, errors.Wrapf(ErrNoFeeders, "module %q has %d predecessors", n.Name(target), len(ps))
		}
		conj = ps[0]
	}
	fs := n.Inputs(conj)
	if len(fs) == 0 {
		return nil, errors.Wrapf(ErrNoFeeders, "conjunction %q has no inputs", n.Name(conj))
	}
	return fs, nil
}

// An Analyzer predicts the first press on which a target module receives a
// low pulse from a convergent conjunction, without simulating up to that
// press.
//
// The prediction is the least common multiple of the first press on which
// each feeder of the conjunction sends a high pulse. It is only correct if
// every feeder sends high exactly on multiples of its first hit and the
// feeders do not share state except through the conjunction. The second
// condition is checked (see AllowShared). The first one cannot be fully
// checked; Verify only confirms it for the second period of each feeder.
//
// The zero value is ready to use.
//
type Analyzer struct {
	// Limit is the maximum number of presses simulated per feeder.
	// 0 means DefaultLimit.
	Limit uint64
	// Workers is the number of goroutines used to search feeders. Each
	// feeder is then simulated on its own copy of the network. Values less
	// than 2 run a single simulation for all feeders.
	Workers int
	// Verify requests that each feeder's second high pulse be found at twice
	// its first hit.
	Verify bool
	// AllowShared disables the check that feeders have disjoint upstream
	// modules.
	AllowShared bool
	// Logger receives debug events. nil disables logging.
	Logger *zap.Logger
}

// Prediction is the result of Analyzer.Predict.
//
type Prediction struct {
	Target  ID
	Feeders []ID
	// Hits holds the first press on which each feeder sent a high pulse.
	Hits []uint64
	// Press is the predicted press on which the target gets a low pulse.
	Press uint64
}

func (a *Analyzer) log() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Predict predicts the first press on which target receives a low pulse.
// The simulations run on copies of n reset to their initial state; n is not
// modified.
//
func (a *Analyzer) Predict(n *Network, target ID) (*Prediction, error) {
	feeders, err := n.Feeders(target)
	if err != nil {
		return nil, err
	}
	if !a.AllowShared {
		if err = checkIndependent(n, feeders); err != nil {
			return nil, err
		}
	}
	hits, err := a.FirstHits(n, feeders)
	if err != nil {
		return nil, err
	}
	press, err := LCM(hits...)
	if err != nil {
		return nil, err
	}
	a.log().Debug("prediction",
		zap.String("target", n.Name(target)),
		zap.Uint64s("hits", hits),
		zap.Uint64("press", press))
	return &Prediction{Target: target, Feeders: feeders, Hits: hits, Press: press}, nil
}

// FirstHits returns the first press on which each of the given modules sends a
// high pulse, starting from the initial state of n. n is not modified.
//
func (a *Analyzer) FirstHits(n *Network, feeders []ID) ([]uint64, error) {
	limit := a.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	workers := a.Workers
	if workers > len(feeders) {
		workers = len(feeders)
	}
	if workers < 2 {
		c := n.Clone()
		c.Reset()
		return a.scan(c, feeders, limit)
	}

	hits := make([]uint64, len(feeders))
	errs := make([]error, len(feeders))
	size := len(feeders) / workers
	if size*workers < len(feeders) {
		size++
	}
	var wg sync.WaitGroup
	for start := 0; start < len(feeders); start += size {
		end := start + size
		if end > len(feeders) {
			end = len(feeders)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				c := n.Clone()
				c.Reset()
				h, err := a.scan(c, feeders[i:i+1], limit)
				if err != nil {
					errs[i] = err
					continue
				}
				hits[i] = h[0]
			}
		}(start, end)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return hits, nil
}

// scan presses the button on c until every feeder has sent a high pulse (and
// a second one if a.Verify is set).
//
func (a *Analyzer) scan(c *Network, feeders []ID, limit uint64) ([]uint64, error) {
	log := a.log()
	idx := make(map[ID]int, len(feeders))
	for i, f := range feeders {
		idx[f] = i
	}
	first := make([]uint64, len(feeders))
	second := make([]uint64, len(feeders))
	left := len(feeders)
	if a.Verify {
		left *= 2
	}

	pr := probe{emit: func(from ID, high bool) {
		if !high {
			return
		}
		i, ok := idx[from]
		if !ok {
			return
		}
		switch p := c.presses; {
		case first[i] == 0:
			first[i] = p
			left--
			log.Debug("first hit", zap.String("feeder", c.Name(from)), zap.Uint64("press", p))
		case a.Verify && second[i] == 0 && p != first[i]:
			second[i] = p
			left--
			log.Debug("second hit", zap.String("feeder", c.Name(from)), zap.Uint64("press", p))
		}
	}}

	for i := uint64(0); i < limit && left > 0; i++ {
		if _, err := c.propagate(&c.q, pr); err != nil {
			return nil, errors.Wrapf(err, "press %d", c.presses)
		}
	}

	if left > 0 {
		var missing []string
		for i, f := range feeders {
			if first[i] == 0 || a.Verify && second[i] == 0 {
				missing = append(missing, c.Name(f))
			}
		}
		return nil, errors.Wrapf(ErrLimitReached, "feeders %s after %d presses", strings.Join(missing, ", "), limit)
	}
	if a.Verify {
		for i, f := range feeders {
			if second[i] != 2*first[i] {
				return nil, errors.Wrapf(ErrAperiodic, "feeder %q: hits at presses %d and %d", c.Name(f), first[i], second[i])
			}
		}
	}
	return first, nil
}

// checkIndependent returns ErrDependentFeeders if a module can send pulses to
// more than one feeder without going through the broadcaster.
//
func checkIndependent(n *Network, feeders []ID) error {
	g := n.directed(true)
	owner := make(map[ID]ID)
	for _, f := range feeders {
		for _, id := range n.walk(g, f) {
			if o, ok := owner[id]; ok && o != f {
				return errors.Wrapf(ErrDependentFeeders, "%q and %q both depend on %q", n.Name(o), n.Name(f), n.Name(id))
			}
			owner[id] = f
		}
	}
	return nil
}

// LCM returns the least common multiple of vs. It returns 1 if vs is empty and
// 0 if any value is 0.
//
func LCM(vs ...uint64) (uint64, error) {
	l := uint64(1)
	for _, v := range vs {
		if v == 0 {
			return 0, nil
		}
		hi, lo := bits.Mul64(l/gcd(l, v), v)
		if hi != 0 {
			return 0, errors.Wrapf(ErrOverflow, "lcm(%d, %d)", l, v)
		}
		l = lo
	}
	return l, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
