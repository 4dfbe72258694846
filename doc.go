/*
Package pulsesim simulates networks of pulse modules.

A network is a directed graph of modules exchanging boolean pulses (low or
high). Three kinds of modules hold behavior:

	broadcaster  relays every pulse it receives to all its destinations.
	flip-flop    ignores high pulses. A low pulse toggles it and it sends its
	             new state (on = high).
	conjunction  remembers the last pulse received from each of its inputs and
	             sends low if all of them are high, high otherwise.

Modules that are referenced but never declared (like "rx" or "output") are
sinks: they receive pulses and never respond.

Pressing the button sends a single low pulse to the broadcaster. Pulses are
then delivered in the order they were sent until none is pending. Edges may
form loops; the simulation is deterministic for a given network.

	decls, err := decl.Parse(r)
	...
	n, err := pulsesim.Build(decls)
	...
	t, err := n.PressN(1000)
	fmt.Println(t.Product())

The Analyzer predicts when a conjunction fed by independent periodic loops
first sends a low pulse, without simulating every press.
*/
package pulsesim
