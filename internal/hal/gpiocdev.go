package hal

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevButton reads a momentary button wired active-low with an internal
// pull-up through the Linux GPIO character device.
type CdevButton struct {
	line *gpiocdev.Line
}

func NewCdevButton(chip string, offset int) (*CdevButton, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request button line %d on %s: %w", offset, chip, err)
	}
	return &CdevButton{line: line}, nil
}

// Read returns true while the button is pressed.
// The raw line is inverted: raw low = pressed.
func (b *CdevButton) Read() (bool, error) {
	raw, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button line: %w", err)
	}
	return raw == 0, nil
}

func (b *CdevButton) Close() error {
	return b.line.Close()
}

// CdevOutput drives a push-pull digital output line.
type CdevOutput struct {
	line *gpiocdev.Line
}

func NewCdevOutput(chip string, offset int) (*CdevOutput, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output line %d on %s: %w", offset, chip, err)
	}
	return &CdevOutput{line: line}, nil
}

func (o *CdevOutput) Set(active bool) error {
	value := 0
	if active {
		value = 1
	}
	if err := o.line.SetValue(value); err != nil {
		return fmt.Errorf("set output line: %w", err)
	}
	return nil
}

func (o *CdevOutput) Close() error {
	return o.line.Close()
}
