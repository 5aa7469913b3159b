package hal

import (
	"math"

	"github.com/costumeworks/suitfan/internal/presets"
	"github.com/costumeworks/suitfan/internal/util"
)

// MaxPwmValue is the scale a duty fraction is mapped to when written to
// a duty file.
const MaxPwmValue = 255

// FilePwm drives a PWM channel through a sysfs-style duty file.
// The duty fraction is written as an integer in [0, MaxPwmValue].
type FilePwm struct {
	Path string
}

func (p *FilePwm) SetDutyFraction(duty presets.Fraction) error {
	value := int(math.Round(duty.Float() * MaxPwmValue))
	return util.WriteIntToFile(value, p.Path)
}

// FileAnalog samples an ADC channel exposed as a raw-count value file.
type FileAnalog struct {
	Path string
}

func (a *FileAnalog) ReadRaw() (int, error) {
	return util.ReadIntFromFile(a.Path)
}
