package kernel

// InstallIRQ registers handler for external interrupt number n. It
// succeeds, installing the handler, only if the slot is currently
// empty; installing over an already-occupied slot fails and leaves the
// existing handler in place, matching the reference kernel's vector
// table, which is never silently overwritten. Safe to call at any time.
func (k *Kernel) InstallIRQ(n int, handler IRQHandler) bool {
	k.irqMu.Lock()
	defer k.irqMu.Unlock()
	if _, occupied := k.irqHandlers[n]; occupied {
		return false
	}
	k.irqHandlers[n] = handler
	return true
}

// RemoveIRQ uninstalls the handler for n, if any.
func (k *Kernel) RemoveIRQ(n int) {
	k.irqMu.Lock()
	defer k.irqMu.Unlock()
	delete(k.irqHandlers, n)
}

// DispatchIRQ runs the handler installed for external interrupt n, the
// Go analogue of the reference kernel's generic IRQ trampoline
// (spec.md 4.9): it saves the current phase, switches to IRQ_RUN for
// the handler's duration, and on return performs a reschedule if the
// handler (directly, or via a semaphore/queue Give/Write it made)
// requested one — whether or not it actually ran on a task's own
// goroutine, DispatchIRQ itself is harness context, so any switch it
// triggers goes through reschedule rather than a self-park.
func (k *Kernel) DispatchIRQ(n int) {
	k.irqMu.Lock()
	handler, ok := k.irqHandlers[n]
	k.irqMu.Unlock()
	if !ok {
		return
	}

	k.mu.Lock()
	saved := k.phase
	k.phase = PhaseIRQRun
	k.mu.Unlock()

	handler()

	k.mu.Lock()
	k.phase = saved
	needsReschedule := k.rescheduleISR
	k.rescheduleISR = false
	k.mu.Unlock()

	if needsReschedule {
		k.reschedule()
	}
}

// markRescheduleOnIRQExit records that a reschedule is owed once the
// current interrupt handler returns, rather than attempting it from
// deep inside IRQ context. Called by Semaphore.Give and Queue's
// Read/Write when they wake a waiter from IRQ context.
func (k *Kernel) markRescheduleOnIRQExit() {
	k.mu.Lock()
	k.rescheduleISR = true
	k.mu.Unlock()
}
