package hal

import (
	"sync"

	"github.com/costumeworks/suitfan/internal/presets"
)

// FakeInput is a test double for a DigitalInput.
type FakeInput struct {
	mu      sync.Mutex
	active  bool
	readErr error
}

func (i *FakeInput) SetActive(active bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.active = active
}

func (i *FakeInput) SetError(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.readErr = err
}

func (i *FakeInput) Read() (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active, i.readErr
}

func (i *FakeInput) Close() error {
	return nil
}

// FakeOutput records the last state written to a DigitalOutput.
type FakeOutput struct {
	mu     sync.Mutex
	active bool
}

func (o *FakeOutput) Set(active bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = active
	return nil
}

func (o *FakeOutput) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

func (o *FakeOutput) Close() error {
	return nil
}

// FakePwm records the last duty fraction written to a PwmOutput.
type FakePwm struct {
	mu   sync.Mutex
	duty presets.Fraction
}

func (p *FakePwm) SetDutyFraction(duty presets.Fraction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.duty = duty
	return nil
}

func (p *FakePwm) Duty() presets.Fraction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// FakeAnalog returns a scripted raw sample.
type FakeAnalog struct {
	mu      sync.Mutex
	raw     int
	readErr error
}

func (a *FakeAnalog) SetRaw(raw int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.raw = raw
}

func (a *FakeAnalog) SetError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.readErr = err
}

func (a *FakeAnalog) ReadRaw() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.raw, a.readErr
}

// FakeOutputs is an Outputs bundle backed entirely by fakes.
type FakeOutputs struct {
	Fan   *FakePwm
	Dummy *FakePwm

	Red   *FakePwm
	Green *FakePwm
	Blue  *FakePwm

	LoadEnable *FakeOutput
}

func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{
		Fan:        &FakePwm{},
		Dummy:      &FakePwm{},
		Red:        &FakePwm{},
		Green:      &FakePwm{},
		Blue:       &FakePwm{},
		LoadEnable: &FakeOutput{},
	}
}

func (f *FakeOutputs) Outputs() *Outputs {
	return &Outputs{
		Fan:        f.Fan,
		Dummy:      f.Dummy,
		Red:        f.Red,
		Green:      f.Green,
		Blue:       f.Blue,
		LoadEnable: f.LoadEnable,
	}
}
