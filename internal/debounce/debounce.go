package debounce

// Edge is the outcome of feeding one raw sample into a Debouncer.
type Edge int

const (
	EdgeNone Edge = iota
	// EdgeRising is reported once when the debounced state flips from
	// inactive to active.
	EdgeRising
	// EdgeFalling is reported once when the debounced state flips from
	// active to inactive.
	EdgeFalling
)

// Debouncer filters a noisy binary signal: a state flip is accepted
// only after the configured number of consecutive samples all disagree
// with the current debounced state.
type Debouncer struct {
	state     bool
	count     int
	threshold int
}

func NewDebouncer(threshold int, initial bool) *Debouncer {
	if threshold < 1 {
		threshold = 1
	}
	return &Debouncer{
		state:     initial,
		threshold: threshold,
	}
}

// Update feeds one raw sample and reports the edge, if any, produced by
// it. A sample agreeing with the current state resets the streak.
func (d *Debouncer) Update(raw bool) Edge {
	if raw == d.state {
		d.count = 0
		return EdgeNone
	}

	d.count++
	if d.count < d.threshold {
		return EdgeNone
	}

	d.state = raw
	d.count = 0
	if raw {
		return EdgeRising
	}
	return EdgeFalling
}

// State returns the current debounced state.
func (d *Debouncer) State() bool {
	return d.state
}
