// Package button turns two raw momentary inputs into debounced press
// events for the controller.
package button

import (
	"context"
	"time"

	"github.com/costumeworks/suitfan/internal/debounce"
	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/costumeworks/suitfan/internal/ui"
)

type Poller interface {
	Run(ctx context.Context) error
}

type poller struct {
	plus  hal.DigitalInput
	minus hal.DigitalInput

	plusDebouncer  *debounce.Debouncer
	minusDebouncer *debounce.Debouncer

	queue       *event.Queue
	pollingRate time.Duration
}

func NewPoller(plus hal.DigitalInput, minus hal.DigitalInput, queue *event.Queue, pollingRate time.Duration, debounceCount int) Poller {
	return &poller{
		plus:           plus,
		minus:          minus,
		plusDebouncer:  debounce.NewDebouncer(debounceCount, false),
		minusDebouncer: debounce.NewDebouncer(debounceCount, false),
		queue:          queue,
		pollingRate:    pollingRate,
	}
}

func (p *poller) Run(ctx context.Context) error {
	tick := time.Tick(p.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			p.poll()
		}
	}
}

func (p *poller) poll() {
	if p.update(p.plus, p.plusDebouncer) == debounce.EdgeRising {
		p.emit(event.Event{Kind: event.PlusPressed})
	}
	if p.update(p.minus, p.minusDebouncer) == debounce.EdgeRising {
		p.emit(event.Event{Kind: event.MinusPressed})
	}
}

func (p *poller) update(input hal.DigitalInput, debouncer *debounce.Debouncer) debounce.Edge {
	pressed, err := input.Read()
	if err != nil {
		// keep sampling, a flaky read must not kill the task
		ui.Warning("Unable to read button input: %v", err)
		return debounce.EdgeNone
	}
	return debouncer.Update(pressed)
}

// emit forwards a press without blocking. Button events are not safety
// relevant; a dropped press is corrected by pressing again.
func (p *poller) emit(e event.Event) {
	if !p.queue.TrySend(e) {
		ui.Debug("Event queue full, dropping %s", e)
	}
}
