// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultLimit is the number of presses after which FindFirstHigh and the
// Analyzer give up when no limit is given.
//
const DefaultLimit = 1 << 24

// Pulse is a pulse in flight from one module to another.
//
type Pulse struct {
	From ID
	To   ID
	High bool
}

func (p Pulse) String() string {
	return fmt.Sprintf("%d -%s-> %d", p.From, level(p.High), p.To)
}

func level(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

// Tally counts delivered pulses by level.
//
type Tally struct {
	Low  uint64
	High uint64
}

// Add adds the counts of o to t.
//
func (t *Tally) Add(o Tally) {
	t.Low += o.Low
	t.High += o.High
}

// Product returns Low * High.
//
func (t Tally) Product() uint64 { return t.Low * t.High }

func (t *Tally) count(high bool) {
	if high {
		t.High++
	} else {
		t.Low++
	}
}

// pending holds the pulses waiting for delivery during a press.
//
type pending interface {
	push(p Pulse)
	pop() (Pulse, bool)
	clear()
}

// fifo is a first-in first-out queue that reuses its buffer across presses.
//
type fifo struct {
	buf  []Pulse
	head int
}

func (q *fifo) push(p Pulse) { q.buf = append(q.buf, p) }

func (q *fifo) pop() (Pulse, bool) {
	if q.head == len(q.buf) {
		q.clear()
		return Pulse{}, false
	}
	p := q.buf[q.head]
	q.head++
	return p, true
}

func (q *fifo) clear() {
	q.buf = q.buf[:0]
	q.head = 0
}

// lifo delivers the most recent pulse first (depth-first). Networks do not
// behave correctly with it; it only exists to be compared against fifo.
//
type lifo struct {
	buf []Pulse
}

func (s *lifo) push(p Pulse) { s.buf = append(s.buf, p) }

func (s *lifo) pop() (Pulse, bool) {
	if len(s.buf) == 0 {
		return Pulse{}, false
	}
	p := s.buf[len(s.buf)-1]
	s.buf = s.buf[:len(s.buf)-1]
	return p, true
}

func (s *lifo) clear() { s.buf = s.buf[:0] }

// probe observes a press. deliver is called for every pulse before the
// destination handles it, emit for every module response, even if the module
// has no destinations.
//
type probe struct {
	deliver func(p Pulse)
	emit    func(from ID, high bool)
}

// Press presses the button once: a low pulse is sent to the broadcaster and
// pulses are delivered in the order they were sent until none is pending.
//
// The returned Tally counts every delivered pulse, including the initial
// pulse from the button.
//
// If an error is returned, the press was aborted and the network is left in
// an intermediate state.
//
func (n *Network) Press() (Tally, error) {
	return n.propagate(&n.q, probe{})
}

// PressN presses the button count times and returns the sum of all tallies.
//
func (n *Network) PressN(count int) (Tally, error) {
	var sum Tally
	for i := 0; i < count; i++ {
		t, err := n.Press()
		if err != nil {
			return sum, errors.Wrapf(err, "press %d", n.presses)
		}
		sum.Add(t)
	}
	return sum, nil
}

// Trace presses the button once and calls fn with every pulse, in delivery
// order.
//
func (n *Network) Trace(fn func(p Pulse)) (Tally, error) {
	return n.propagate(&n.q, probe{deliver: fn})
}

func (n *Network) propagate(q pending, pr probe) (Tally, error) {
	var t Tally
	n.presses++
	q.push(Pulse{From: Button, To: n.entry})
	for {
		p, ok := q.pop()
		if !ok {
			return t, nil
		}
		t.count(p.High)
		if pr.deliver != nil {
			pr.deliver(p)
		}
		m := &n.mods[p.To]
		out, emit, err := m.receive(p.High, p.From)
		if err != nil {
			q.clear()
			return t, err
		}
		if !emit {
			continue
		}
		if pr.emit != nil {
			pr.emit(p.To, out)
		}
		for _, d := range m.dests {
			q.push(Pulse{From: p.To, To: d, High: out})
		}
	}
}

// FindFirstHigh presses the button until module id responds with a high
// pulse and returns the value of the press counter at that point (1 for the
// first press of a new network).
//
// It returns ErrLimitReached once limit presses have been made without
// success. A limit of 0 means DefaultLimit.
//
func (n *Network) FindFirstHigh(id ID, limit uint64) (uint64, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	var hit bool
	pr := probe{emit: func(from ID, high bool) {
		if high && from == id {
			hit = true
		}
	}}
	for i := uint64(0); i < limit; i++ {
		if _, err := n.propagate(&n.q, pr); err != nil {
			return 0, errors.Wrapf(err, "press %d", n.presses)
		}
		if hit {
			return n.presses, nil
		}
	}
	return 0, errors.Wrapf(ErrLimitReached, "module %q after %d presses", n.Name(id), limit)
}
