package kernel

import "time"

// Tick advances the time base by one period, the Go analogue of the
// reference kernel's tick ISR (spec.md 4.3). It is harness context: the
// application's board-support layer calls it from wherever it wires a
// periodic interrupt (a time.Ticker, a hardware timer callback, a test
// driving it directly).
func (k *Kernel) Tick() {
	k.mu.Lock()
	k.phase = PhaseIRQRun
	k.tickCount++

	for _, t := range k.tasks {
		if t.state != StateBlocked || t.ticksRemaining == 0 {
			continue
		}
		t.ticksRemaining--
		if t.ticksRemaining == 0 {
			t.state = StateReady
		}
	}

	k.phase = PhaseNormalRun
	k.mu.Unlock()

	k.reschedule()

	if k.TickHook != nil {
		k.TickHook()
	}
}

// TickCount returns the number of Tick calls processed so far.
func (k *Kernel) TickCount() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tickCount
}

// TickPeriod returns the nominal duration configured with
// WithTickPeriod, or zero if it was never set.
func (k *Kernel) TickPeriod() time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tickPeriod
}
