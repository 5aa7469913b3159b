package presets

// Fraction is a rational duty cycle value in [0, 1].
type Fraction struct {
	Numerator   uint
	Denominator uint
}

func NewFraction(numerator uint, denominator uint) Fraction {
	return Fraction{
		Numerator:   numerator,
		Denominator: denominator,
	}
}

// Off is the fully-off duty cycle.
var Off = NewFraction(0, 1)

func (f Fraction) Mul(other Fraction) Fraction {
	return Fraction{
		Numerator:   f.Numerator * other.Numerator,
		Denominator: f.Denominator * other.Denominator,
	}
}

func (f Fraction) Float() float64 {
	if f.Denominator == 0 {
		return 0
	}
	return float64(f.Numerator) / float64(f.Denominator)
}

// Preset is one selectable output intensity: fan and dummy load duty
// plus the indicator color split into its three channels.
type Preset struct {
	Fan   Fraction
	Dummy Fraction
	R     Fraction
	G     Fraction
	B     Fraction
}

func newPreset(fanPct uint, dummyPct uint, r uint, g uint, b uint) Preset {
	return Preset{
		Fan:   NewFraction(fanPct, 100),
		Dummy: NewFraction(dummyPct, 100),
		R:     NewFraction(r, 255),
		G:     NewFraction(g, 255),
		B:     NewFraction(b, 255),
	}
}

func (p Preset) withBrightness(factor Fraction) Preset {
	return Preset{
		Fan:   p.Fan,
		Dummy: p.Dummy,
		R:     p.R.Mul(factor),
		G:     p.G.Mul(factor),
		B:     p.B.Mul(factor),
	}
}

// ledBrightness scales all indicator colors down so the LED is not blinding.
var ledBrightness = NewFraction(2, 10)

// Table is ordered by intensity: index 0 is the lowest fan duty,
// the last index the highest.
var Table = []Preset{
	newPreset(5, 0, 255, 0, 0).withBrightness(ledBrightness),     // red
	newPreset(10, 0, 255, 40, 0).withBrightness(ledBrightness),   // orange
	newPreset(20, 0, 255, 127, 0).withBrightness(ledBrightness),  // yellow
	newPreset(30, 0, 160, 255, 0).withBrightness(ledBrightness),  // light green
	newPreset(40, 0, 0, 255, 0).withBrightness(ledBrightness),    // deep green
	newPreset(50, 0, 90, 0, 255).withBrightness(ledBrightness),   // violet
	newPreset(60, 0, 0, 255, 255).withBrightness(ledBrightness),  // teal
	newPreset(70, 0, 0, 0, 255).withBrightness(ledBrightness),    // deep blue
	newPreset(80, 0, 255, 40, 40).withBrightness(ledBrightness),  // salmon
	newPreset(90, 0, 255, 0, 255).withBrightness(ledBrightness),  // pink
	newPreset(100, 0, 255, 255, 255).withBrightness(ledBrightness), // white
}

// DefaultIndex is the preset selected on first boot, before anything
// has ever been persisted.
const DefaultIndex = 5
