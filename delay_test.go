package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayBlocksUntilTicksElapse(t *testing.T) {
	k := New()
	resumed := make(chan uint64, 1)

	k.RegisterTask(func() {
		k.Delay(3)
		resumed <- k.TickCount()
		select {}
	}, 0)

	k.Init()
	k.Start()

	time.Sleep(10 * time.Millisecond)

	select {
	case <-resumed:
		t.Fatal("task resumed before any ticks were delivered")
	default:
	}

	k.Tick()
	k.Tick()

	select {
	case <-resumed:
		t.Fatal("task resumed before its full delay elapsed")
	case <-time.After(10 * time.Millisecond):
	}

	k.Tick()

	select {
	case tc := <-resumed:
		assert.Equal(t, uint64(3), tc)
	case <-time.After(time.Second):
		t.Fatal("task never resumed after its delay elapsed")
	}
}

func TestDelayZeroIsABareYield(t *testing.T) {
	k := New()
	ran := make(chan struct{})

	k.RegisterTask(func() {
		k.Delay(0)
		close(ran)
		select {}
	}, 0)

	k.Init()
	k.Start()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task never resumed after Delay(0)")
	}
}

func TestDelayFromIRQContextIsFatal(t *testing.T) {
	errCh := make(chan uintptr, 1)
	k := New(WithErrorHook(func(caller uintptr) { errCh <- caller }))

	k.mu.Lock()
	k.phase = PhaseIRQRun
	k.mu.Unlock()

	k.Delay(5)

	assert.Equal(t, ErrDelayFromISR, k.LastError())
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("error hook never invoked")
	}
}
