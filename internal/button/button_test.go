package button

import (
	"errors"
	"testing"

	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/stretchr/testify/assert"
)

func TestPressEmitsAfterDebounce(t *testing.T) {
	// GIVEN
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(4)
	p := NewPoller(plus, minus, queue, 0, 8).(*poller)

	// WHEN the plus button is held for seven samples
	plus.SetActive(true)
	for i := 0; i < 7; i++ {
		p.poll()
	}

	// THEN no event has been emitted yet
	assert.Empty(t, queue.Events())

	// WHEN the eighth consistent sample arrives
	p.poll()

	// THEN exactly one press event is emitted
	received := <-queue.Events()
	assert.Equal(t, event.PlusPressed, received.Kind)
	assert.Empty(t, queue.Events())
}

func TestHeldButtonEmitsOnlyOnce(t *testing.T) {
	// GIVEN
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(4)
	p := NewPoller(plus, minus, queue, 0, 8).(*poller)

	plus.SetActive(true)
	for i := 0; i < 8; i++ {
		p.poll()
	}
	<-queue.Events()

	// WHEN the button stays pressed
	for i := 0; i < 20; i++ {
		p.poll()
	}

	// THEN no further event is emitted
	assert.Empty(t, queue.Events())
}

func TestReleaseEmitsNothing(t *testing.T) {
	// GIVEN a confirmed press
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(4)
	p := NewPoller(plus, minus, queue, 0, 8).(*poller)

	plus.SetActive(true)
	for i := 0; i < 8; i++ {
		p.poll()
	}
	<-queue.Events()

	// WHEN the button is released long enough for a falling edge
	plus.SetActive(false)
	for i := 0; i < 8; i++ {
		p.poll()
	}

	// THEN only rising edges produce events
	assert.Empty(t, queue.Events())
}

func TestMinusButtonEvent(t *testing.T) {
	// GIVEN
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(4)
	p := NewPoller(plus, minus, queue, 0, 2).(*poller)

	// WHEN
	minus.SetActive(true)
	p.poll()
	p.poll()

	// THEN
	received := <-queue.Events()
	assert.Equal(t, event.MinusPressed, received.Kind)
}

func TestFullQueueDropsPress(t *testing.T) {
	// GIVEN a queue with no free slot
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(1)
	assert.True(t, queue.TrySend(event.Event{Kind: event.LockoutChanged, LockedOut: true}))
	p := NewPoller(plus, minus, queue, 0, 1).(*poller)

	// WHEN a press is confirmed
	plus.SetActive(true)
	p.poll()

	// THEN the press is silently dropped and the queued event survives
	received := <-queue.Events()
	assert.Equal(t, event.LockoutChanged, received.Kind)
	assert.Empty(t, queue.Events())
}

func TestReadErrorKeepsSampling(t *testing.T) {
	// GIVEN
	plus := &hal.FakeInput{}
	minus := &hal.FakeInput{}
	queue := event.NewQueue(4)
	p := NewPoller(plus, minus, queue, 0, 2).(*poller)

	plus.SetActive(true)
	p.poll()

	// WHEN a read fails mid-streak
	plus.SetError(errors.New("i/o error"))
	p.poll()
	plus.SetError(nil)

	// THEN polling continues and the press is still detected
	p.poll()
	p.poll()
	received := <-queue.Events()
	assert.Equal(t, event.PlusPressed, received.Kind)
}
