// Package hal abstracts the hardware the control core drives: digital
// inputs for the buttons, raw analog reads for the CC lines, PWM duty
// outputs and the master load-enable line. Real implementations talk to
// the Linux GPIO character device and sysfs-style value files; fakes
// back the tests.
package hal

import (
	"github.com/costumeworks/suitfan/internal/presets"
)

// DigitalInput reads the logical state of a momentary input.
// Implementations resolve polarity, so true always means "active".
type DigitalInput interface {
	Read() (bool, error)
	Close() error
}

// DigitalOutput drives a single on/off line.
type DigitalOutput interface {
	Set(active bool) error
	Close() error
}

// PwmOutput drives one PWM channel by duty fraction.
type PwmOutput interface {
	SetDutyFraction(duty presets.Fraction) error
}

// AnalogInput performs a one-shot raw sample of an analog channel.
// Raw values are relative to the ADC full scale; converting them to
// millivolts is up to the caller, which knows the calibrated supply.
type AnalogInput interface {
	ReadRaw() (int, error)
}

// Outputs bundles every hardware output the controller owns.
type Outputs struct {
	Fan   PwmOutput
	Dummy PwmOutput

	Red   PwmOutput
	Green PwmOutput
	Blue  PwmOutput

	LoadEnable DigitalOutput
}
