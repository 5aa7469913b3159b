// Package power watches the USB Type-C CC lines and tells the
// controller when the advertised supply power stops being sufficient
// for the loads, and when it becomes sufficient again.
package power

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/costumeworks/suitfan/internal/ui"
	"github.com/costumeworks/suitfan/internal/util"
)

const (
	// adcFullScale is the maximum raw reading of the ADC.
	adcFullScale = 4095
	// vrefIntMillivolts is the nominal voltage of the internal
	// reference channel.
	vrefIntMillivolts = 1200
	// calibrationSampleCount is how many reference samples are averaged
	// to derive the effective supply voltage at startup.
	calibrationSampleCount = 16
)

type Monitor interface {
	Run(ctx context.Context) error
	// LastLevel returns the most recently reported power level. The
	// second return is false before the first stable classification.
	LastLevel() (Level, bool)
	// ChangesReported returns how many level changes have been sent to
	// the controller since startup.
	ChangesReported() uint64
}

type monitor struct {
	cc1  hal.AnalogInput
	cc2  hal.AnalogInput
	vref hal.AnalogInput

	queue         *event.Queue
	pollingRate   time.Duration
	debounceCount int

	supplyMillivolts int

	candidate   Level
	consecutive int

	mu              sync.RWMutex
	lastReported    *Level
	changesReported uint64
}

func NewMonitor(cc1 hal.AnalogInput, cc2 hal.AnalogInput, vref hal.AnalogInput, queue *event.Queue, pollingRate time.Duration, debounceCount int) Monitor {
	return &monitor{
		cc1:           cc1,
		cc2:           cc2,
		vref:          vref,
		queue:         queue,
		pollingRate:   pollingRate,
		debounceCount: debounceCount,
	}
}

func (m *monitor) Run(ctx context.Context) error {
	// calibration runs once, before the first classification
	if err := m.calibrate(); err != nil {
		return fmt.Errorf("calibrating supply voltage: %w", err)
	}

	tick := time.Tick(m.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := m.step(ctx); err != nil {
				// a send interrupted by shutdown is not a monitor failure
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return err
			}
		}
	}
}

func (m *monitor) LastLevel() (Level, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastReported == nil {
		return LevelInsufficient, false
	}
	return *m.lastReported, true
}

func (m *monitor) ChangesReported() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.changesReported
}

// calibrate measures the internal reference channel and derives the
// effective supply voltage used to convert raw readings to millivolts.
func (m *monitor) calibrate() error {
	window := util.CreateRollingWindow(calibrationSampleCount)
	for i := 0; i < calibrationSampleCount; i++ {
		raw, err := m.vref.ReadRaw()
		if err != nil {
			return fmt.Errorf("reading reference channel: %w", err)
		}
		window.Append(float64(raw))
	}

	avg := window.Reduce(rolling.Avg)
	if avg <= 0 {
		return fmt.Errorf("implausible reference reading: %f", avg)
	}

	m.supplyMillivolts = int(vrefIntMillivolts * adcFullScale / avg)
	ui.Info("Calculated supply voltage: %d mV", m.supplyMillivolts)
	return nil
}

func (m *monitor) toMillivolts(raw int) int {
	return m.supplyMillivolts * raw / adcFullScale
}

// step performs one sampling iteration: classify, debounce and, when a
// newly stable level differs from the last one reported, notify the
// controller. That send blocks until there is channel space; losing a
// lockout notification could leave a load powered beyond budget.
func (m *monitor) step(ctx context.Context) error {
	cc1Raw, err := m.cc1.ReadRaw()
	if err != nil {
		ui.Warning("Unable to read CC1: %v", err)
		return nil
	}
	cc2Raw, err := m.cc2.ReadRaw()
	if err != nil {
		ui.Warning("Unable to read CC2: %v", err)
		return nil
	}

	level := ClassifyPower(m.toMillivolts(cc1Raw), m.toMillivolts(cc2Raw))

	if level == m.candidate && m.consecutive > 0 {
		m.consecutive++
	} else {
		m.candidate = level
		m.consecutive = 1
	}

	if m.consecutive < m.debounceCount {
		return nil
	}

	m.mu.RLock()
	alreadyReported := m.lastReported != nil && *m.lastReported == m.candidate
	m.mu.RUnlock()
	if alreadyReported {
		return nil
	}

	lockedOut := m.candidate == LevelInsufficient
	err = m.queue.Send(ctx, event.Event{Kind: event.LockoutChanged, LockedOut: lockedOut})
	if err != nil {
		return err
	}

	reported := m.candidate
	m.mu.Lock()
	m.lastReported = &reported
	m.changesReported++
	m.mu.Unlock()
	ui.Info("Supply power is now %s", reported)
	return nil
}
