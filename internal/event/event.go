package event

// Kind discriminates the events flowing from the producer tasks to the
// controller.
type Kind int

const (
	// PlusPressed is a confirmed rising edge on the plus button.
	PlusPressed Kind = iota
	// MinusPressed is a confirmed rising edge on the minus button.
	MinusPressed
	// DummyLoadEnabled requests the dummy load output to follow the preset.
	DummyLoadEnabled
	// DummyLoadDisabled requests the dummy load output to be forced off.
	DummyLoadDisabled
	// LockoutChanged carries the debounced supply power verdict. Until a
	// LockoutChanged{LockedOut: false} arrives, the controller keeps all
	// loads disabled.
	LockoutChanged
)

type Event struct {
	Kind Kind
	// LockedOut is only meaningful for LockoutChanged events.
	LockedOut bool
}

func (e Event) String() string {
	switch e.Kind {
	case PlusPressed:
		return "PlusPressed"
	case MinusPressed:
		return "MinusPressed"
	case DummyLoadEnabled:
		return "DummyLoadEnabled"
	case DummyLoadDisabled:
		return "DummyLoadDisabled"
	case LockoutChanged:
		if e.LockedOut {
			return "LockoutChanged(locked out)"
		}
		return "LockoutChanged(released)"
	default:
		return "Unknown"
	}
}
