package kernel

// Delay blocks the calling task for the given number of ticks, per
// spec.md 4.6. ticks == 0 is a no-op (a bare Yield, not a block).
// Calling Delay from IRQ context is a programming error: there is no
// calling task to block, and it is fatal (ErrDelayFromISR).
func (k *Kernel) Delay(ticks uint32) {
	k.EnterCritical()
	if k.phase == PhaseIRQRun {
		k.ExitCritical()
		k.reportFatal(ErrDelayFromISR, callerPC())
		return
	}
	if ticks == 0 {
		k.ExitCritical()
		k.Yield()
		return
	}

	cur := k.current
	cur.ticksRemaining = ticks
	cur.state = StateBlocked
	k.ExitCritical()

	for {
		k.doYield()

		k.EnterCritical()
		expired := cur.ticksRemaining == 0
		k.ExitCritical()
		if expired {
			return
		}
	}
}
