package power

// Level is the two-valued supply power classification derived from the
// USB Type-C CC lines.
type Level int

const (
	LevelInsufficient Level = iota
	LevelSufficient
)

func (l Level) String() string {
	if l == LevelSufficient {
		return "Sufficient"
	}
	return "Insufficient"
}

// Minimum voltage level that has to be present on a CC line for that
// line to be considered active.
const activeCcLineThresholdMillivolts = 200

// Advertisement band for 1.5A/3A supplies, from the USB Type-C Spec
// Release 2.0, table 4-36.
const (
	sufficientMinMillivolts = 700
	sufficientMaxMillivolts = 2040
)

// ClassifyPower derives the supply power verdict from the two CC line
// voltages. Exactly one line must be active; its voltage must fall into
// the 1.5A/3A advertisement band.
func ClassifyPower(cc1Millivolts int, cc2Millivolts int) Level {
	var activeMillivolts int
	if cc1Millivolts > activeCcLineThresholdMillivolts && cc2Millivolts < activeCcLineThresholdMillivolts {
		activeMillivolts = cc1Millivolts
	} else if cc2Millivolts > activeCcLineThresholdMillivolts && cc1Millivolts < activeCcLineThresholdMillivolts {
		activeMillivolts = cc2Millivolts
	} else {
		// Either both lines are low (disconnected) or both are high (an
		// audio accessory or debug adapter is connected). For simple
		// power sinking both count as disconnected.
		return LevelInsufficient
	}

	if activeMillivolts >= sufficientMinMillivolts && activeMillivolts < sufficientMaxMillivolts {
		// 1.5A or 3A advertised
		return LevelSufficient
	}
	// too low or invalid reading
	return LevelInsufficient
}
