package internal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/costumeworks/suitfan/internal/button"
	"github.com/costumeworks/suitfan/internal/controller"
	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/costumeworks/suitfan/internal/persistence"
	"github.com/costumeworks/suitfan/internal/power"
	"github.com/costumeworks/suitfan/internal/presets"
	"github.com/stretchr/testify/assert"
)

// Wires the full core together over fakes: button poller and power
// monitor feed the controller through the event queue, the controller
// renders to fake outputs and persists through a real database file.
func TestCoreEndToEnd(t *testing.T) {
	queue := event.NewQueue(event.DefaultCapacity)
	outputs := hal.NewFakeOutputs()
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "suitfan.db"))

	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	poller := button.NewPoller(plus, minus, queue, time.Millisecond, 8)

	cc1 := &hal.FakeAnalog{}
	cc2 := &hal.FakeAnalog{}
	vref := &hal.FakeAnalog{}
	// reference reading that makes raw values pass through as millivolts
	vref.SetRaw(1200)
	// attached supply advertising 1.5A
	cc1.SetRaw(900)
	cc2.SetRaw(50)
	monitor := power.NewMonitor(cc1, cc2, vref, queue, time.Millisecond, 10)

	ctrl := controller.NewController(queue, outputs.Outputs(), pers, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = poller.Run(ctx) }()
	go func() { _ = monitor.Run(ctx) }()
	go func() { _ = ctrl.Run(ctx) }()

	// the supply is detected as sufficient, the lockout is released and
	// the default preset is rendered
	defaultPreset := presets.Table[presets.DefaultIndex]
	assert.Eventually(t, func() bool {
		return outputs.LoadEnable.Active() && outputs.Fan.Duty() == defaultPreset.Fan
	}, 2*time.Second, 5*time.Millisecond)

	// a plus press advances to the next preset
	plus.SetActive(true)
	nextPreset := presets.Table[presets.DefaultIndex+1]
	assert.Eventually(t, func() bool {
		return outputs.Fan.Duty() == nextPreset.Fan
	}, 2*time.Second, 5*time.Millisecond)
	plus.SetActive(false)

	// pulling the plug locks the loads out again
	cc1.SetRaw(0)
	assert.Eventually(t, func() bool {
		return !outputs.LoadEnable.Active() && outputs.Fan.Duty() == presets.Off
	}, 2*time.Second, 5*time.Millisecond)

	cancel()

	// the selected preset survives the "reboot"
	index, err := pers.LoadPresetIndex()
	assert.NoError(t, err)
	assert.Equal(t, presets.DefaultIndex+1, index)
}
