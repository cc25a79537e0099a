package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSemaphoreTakeBlocksUntilGiven(t *testing.T) {
	k := New()
	sem := k.NewSemaphore()
	resumed := make(chan struct{})

	k.RegisterTask(func() {
		sem.Take()
		close(resumed)
		select {}
	}, 0)

	k.Init()
	k.Start()

	select {
	case <-resumed:
		t.Fatal("task resumed before the semaphore was given")
	case <-time.After(20 * time.Millisecond):
	}

	sem.Give()

	select {
	case <-resumed:
	case <-time.After(time.Second):
		t.Fatal("task never resumed after Give")
	}
}

func TestSemaphoreGiveBeforeTakeIsLost(t *testing.T) {
	k := New()
	sem := k.NewSemaphore()
	done := make(chan struct{})

	sem.Give() // no waiter recorded yet: a no-op, not remembered

	k.RegisterTask(func() {
		sem.Take() // must block: the earlier Give had nothing to signal
		close(done)
		select {}
	}, 0)

	k.Init()
	k.Start()

	select {
	case <-done:
		t.Fatal("task resumed despite the only Give happening before it started waiting")
	case <-time.After(20 * time.Millisecond):
	}

	sem.Give()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never resumed after the second Give")
	}
}

func TestSemaphoreGiveFromIRQDefersReschedule(t *testing.T) {
	k := New()
	sem := k.NewSemaphore()
	resumed := make(chan struct{})

	k.RegisterTask(func() {
		sem.Take()
		close(resumed)
		select {}
	}, 0)

	k.Init()
	k.Start()
	time.Sleep(10 * time.Millisecond)

	k.mu.Lock()
	k.phase = PhaseIRQRun
	k.mu.Unlock()

	sem.Give()

	k.mu.Lock()
	rescheduleOwed := k.rescheduleISR
	k.mu.Unlock()
	assert.True(t, rescheduleOwed, "Give from IRQ context should defer the reschedule")

	k.mu.Lock()
	k.phase = PhaseNormalRun
	k.mu.Unlock()

	select {
	case <-resumed:
		t.Fatal("waiter resumed before the IRQ's deferred reschedule ran")
	case <-time.After(20 * time.Millisecond):
	}
}
