// Package controller owns all output state of the rig. It is the sole
// consumer of the event queue: producer tasks report button presses and
// supply power changes, the controller applies a deterministic
// transition per event and re-renders the hardware outputs as a pure
// function of its state.
package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/costumeworks/suitfan/internal/persistence"
	"github.com/costumeworks/suitfan/internal/presets"
	"github.com/costumeworks/suitfan/internal/ui"
)

// warningColor is the fixed dim indicator shown while locked out.
var warningColor = presets.NewFraction(1, 50)

// State is the full controller state. PresetIndex is always a valid
// offset into the preset table.
type State struct {
	PresetIndex  int
	DummyEnabled bool
	LockedOut    bool
	// IndicatorDeadline is the instant the indicator reverts to off.
	// While nil, the indicator stays dark.
	IndicatorDeadline *time.Time
}

type Controller interface {
	Run(ctx context.Context) error
	Snapshot() State
	EventsHandled() uint64
}

type controller struct {
	queue   *event.Queue
	outputs *hal.Outputs
	pers    persistence.Persistence

	indicatorOnDuration time.Duration

	mu    sync.RWMutex
	state State

	eventsHandled atomic.Uint64
}

func NewController(queue *event.Queue, outputs *hal.Outputs, pers persistence.Persistence, indicatorOnDuration time.Duration) Controller {
	return &controller{
		queue:               queue,
		outputs:             outputs,
		pers:                pers,
		indicatorOnDuration: indicatorOnDuration,
		state: State{
			PresetIndex: presets.DefaultIndex,
			// until the power monitor has proven the supply is
			// sufficient, no load may be enabled
			LockedOut: true,
		},
	}
}

// Snapshot returns a copy of the current state, for observation only.
func (c *controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// EventsHandled returns how many queue events have been applied.
func (c *controller) EventsHandled() uint64 {
	return c.eventsHandled.Load()
}

func (c *controller) Run(ctx context.Context) error {
	c.restorePresetIndex()

	// show the restored preset on the indicator right after power-up
	c.mu.Lock()
	c.armIndicator()
	c.mu.Unlock()

	for {
		c.render()

		if done := c.wait(ctx); done {
			return nil
		}
	}
}

// wait blocks on the race between the next queue event and, only while
// an indicator deadline is set, its expiry. The losing branch has no
// side effect.
func (c *controller) wait(ctx context.Context) (done bool) {
	c.mu.RLock()
	deadline := c.state.IndicatorDeadline
	c.mu.RUnlock()

	if deadline == nil {
		select {
		case <-ctx.Done():
			return true
		case e := <-c.queue.Events():
			c.apply(e)
		}
		return false
	}

	timer := time.NewTimer(time.Until(*deadline))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return true
	case e := <-c.queue.Events():
		c.apply(e)
	case <-timer.C:
		c.expireIndicator()
	}
	return false
}

// apply executes the transition for one received event.
func (c *controller) apply(e event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventsHandled.Add(1)

	switch e.Kind {
	case event.PlusPressed:
		ui.Debug("Plus button was pressed")
		if c.state.PresetIndex+1 < len(presets.Table) {
			c.state.PresetIndex++
			c.savePresetIndex()
		}
		// the indicator re-arms even when the index is already at its
		// maximum, so a press always shows the current preset
		c.armIndicator()
	case event.MinusPressed:
		ui.Debug("Minus button was pressed")
		if c.state.PresetIndex >= 1 {
			c.state.PresetIndex--
			c.savePresetIndex()
		}
		c.armIndicator()
	case event.DummyLoadEnabled:
		ui.Debug("Enabling dummy load")
		c.state.DummyEnabled = true
	case event.DummyLoadDisabled:
		ui.Debug("Disabling dummy load")
		c.state.DummyEnabled = false
	case event.LockoutChanged:
		if e.LockedOut {
			ui.Warning("Locking out the load since available USB power has been decreased!")
		} else {
			ui.Info("Enabling load - enough USB power is available.")
		}
		c.state.LockedOut = e.LockedOut
	}
}

func (c *controller) armIndicator() {
	deadline := time.Now().Add(c.indicatorOnDuration)
	c.state.IndicatorDeadline = &deadline
}

func (c *controller) expireIndicator() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ui.Debug("Turning off the indicator")
	c.state.IndicatorDeadline = nil
}

// render writes all hardware outputs from the current state. It is
// total and idempotent: rendering twice with unchanged state yields
// identical duty values.
func (c *controller) render() {
	state := c.Snapshot()

	if state.LockedOut {
		c.setDuty(c.outputs.Fan, presets.Off)
		c.setDuty(c.outputs.Dummy, presets.Off)

		c.setDuty(c.outputs.Red, warningColor)
		c.setDuty(c.outputs.Green, presets.Off)
		c.setDuty(c.outputs.Blue, presets.Off)

		c.setEnable(false)
		return
	}

	c.setEnable(true)

	preset := presets.Table[state.PresetIndex]
	ui.Debug("Now on preset %d (%.0f%% fan, %.0f%% dummy, dummy enabled: %v)",
		state.PresetIndex, preset.Fan.Float()*100, preset.Dummy.Float()*100, state.DummyEnabled)

	c.setDuty(c.outputs.Fan, preset.Fan)
	if state.DummyEnabled {
		c.setDuty(c.outputs.Dummy, preset.Dummy)
	} else {
		c.setDuty(c.outputs.Dummy, presets.Off)
	}

	if state.IndicatorDeadline != nil {
		c.setDuty(c.outputs.Red, preset.R)
		c.setDuty(c.outputs.Green, preset.G)
		c.setDuty(c.outputs.Blue, preset.B)
	} else {
		c.setDuty(c.outputs.Red, presets.Off)
		c.setDuty(c.outputs.Green, presets.Off)
		c.setDuty(c.outputs.Blue, presets.Off)
	}
}

func (c *controller) setDuty(output hal.PwmOutput, duty presets.Fraction) {
	if err := output.SetDutyFraction(duty); err != nil {
		ui.Warning("Unable to set output duty: %v", err)
	}
}

func (c *controller) setEnable(active bool) {
	if err := c.outputs.LoadEnable.Set(active); err != nil {
		ui.Warning("Unable to set load enable line: %v", err)
	}
}

// restorePresetIndex loads the persisted preset index, substituting the
// build-time default when nothing valid was ever committed.
func (c *controller) restorePresetIndex() {
	index, err := c.pers.LoadPresetIndex()
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			ui.Debug("No persisted preset index, using default %d", presets.DefaultIndex)
		} else {
			ui.Warning("Unable to load persisted preset index: %v", err)
		}
		return
	}

	if index >= len(presets.Table) {
		ui.Warning("Persisted preset index %d is out of range, using default %d", index, presets.DefaultIndex)
		return
	}

	c.mu.Lock()
	c.state.PresetIndex = index
	c.mu.Unlock()
	ui.Info("Restored preset index %d", index)
}

// savePresetIndex remembers a confirmed preset change, best effort.
// Callers hold the state lock.
func (c *controller) savePresetIndex() {
	if err := c.pers.SavePresetIndex(c.state.PresetIndex); err != nil {
		ui.Warning("Unable to persist preset index: %v", err)
	}
}
