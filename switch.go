package kernel

// applySwitchLocked is the Go analogue of compute_next_sp: it performs
// the bookkeeping the context-switch exception handler does on a real
// core (spec.md 4.4) without touching the goroutine baton. Callers must
// hold k.mu and must have already confirmed k.switchPending.
func (k *Kernel) applySwitchLocked() {
	cur := k.current
	nxt := k.next

	// A task's saved stack pointer would be captured here from the
	// hardware-auto-stacked frame; our tasks never leave Go's own call
	// stack, so there is nothing further to snapshot beyond the forged
	// value already recorded at RegisterTask time.
	_ = cur.savedSP

	if cur.state == StateRunning {
		// Not preempted by a blocking operation: it simply lost its
		// turn and goes back to the ready queue.
		cur.state = StateReady
	}

	k.current = nxt
	k.current.state = StateRunning
	k.phase = PhaseNormalRun
	k.switchPending = false
}

// doYield is the task-context reschedule path shared by Yield, Delay,
// Semaphore.Take and the queue operations. It must only be called by the
// goroutine of the task currently recorded as k.current (or the idle
// task's goroutine), since on an actual switch it parks that very
// goroutine until it is dispatched again. Returns whether a switch
// occurred.
func (k *Kernel) doYield() bool {
	k.EnterCritical()
	k.runSchedulerLocked()
	outgoing := k.current
	doSwitch := k.switchPending
	var incoming *TCB
	if doSwitch {
		k.applySwitchLocked()
		incoming = k.current
	}
	k.ExitCritical()

	if !doSwitch || incoming == outgoing {
		return false
	}
	incoming.resume <- struct{}{}
	<-outgoing.resume
	return true
}

// Yield voluntarily requests a reschedule. Callable only from task
// context. Application task loops that must remain preemptible by
// higher-priority tasks between blocking calls should call Yield
// periodically: the kernel cannot interrupt a task's goroutine at an
// arbitrary point the way a real core's tick ISR interrupts arbitrary
// instructions, so preemption of a task that never re-enters the
// kernel is deferred until it does (see DESIGN.md).
func (k *Kernel) Yield() {
	k.doYield()
}

// reschedule is the harness-context counterpart of doYield, used by
// Tick and the IRQ dispatcher: goroutines that are not a task and so
// cannot park mid-function. The handoff is only performed immediately
// when the outgoing task is not itself actively executing (i.e. it is
// the idle task, momentarily between dispatches, or — structurally
// impossible once a switch has happened — blocked); otherwise the
// switch is left pending and is picked up the next time that task
// itself calls into the kernel. Either way, the idle task's doorbell is
// nudged so a parked idle goroutine notices the new state promptly.
// Returns whether a switch occurred.
func (k *Kernel) reschedule() bool {
	k.mu.Lock()
	k.runSchedulerLocked()
	outgoing := k.current
	switched := false
	var incoming *TCB
	if k.switchPending && outgoing.state != StateRunning {
		k.applySwitchLocked()
		incoming = k.current
		switched = incoming != outgoing
	}
	k.mu.Unlock()

	k.nudgeIdle()

	if switched {
		incoming.resume <- struct{}{}
	}
	return switched
}

// nudgeIdle wakes a parked idle goroutine without blocking if nobody is
// listening.
func (k *Kernel) nudgeIdle() {
	select {
	case k.wake <- struct{}{}:
	default:
	}
}
