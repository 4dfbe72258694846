package pulsesim

// PressDepthFirst presses the button, delivering the most recently sent pulse
// first.
//
func (n *Network) PressDepthFirst() (Tally, error) {
	return n.propagate(&lifo{}, probe{})
}
