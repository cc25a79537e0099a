package kernel

// Semaphore is a binary semaphore. Give only has an effect if a task is
// already recorded as waiting: a Give with no waiter is a lost signal,
// not remembered for a later Take, reproducing the reference
// implementation's literal behaviour rather than the more usual
// counting-to-one semantics. Semaphore also remembers at most one
// waiting task — a second concurrent Take simply overwrites the first
// as the recorded waiter, so it will not be woken by the next Give.
// Both quirks are reproduced deliberately rather than papered over with
// a signaled flag or a wait list (see DESIGN.md).
//
// Semaphore state is guarded by the owning kernel's lock rather than
// one of its own, so that a task's state transition and the
// semaphore's own bookkeeping are always updated atomically together.
type Semaphore struct {
	k       *Kernel
	waiting *TCB
}

// NewSemaphore constructs a semaphore bound to k, initially empty
// (Take blocks until a Give arrives while it is the recorded waiter).
func (k *Kernel) NewSemaphore() *Semaphore {
	return &Semaphore{k: k}
}

// Take blocks the calling task until the semaphore is given while it is
// the recorded waiter. Callable only from task context; like the
// reference kernel it does not detect or guard against being called
// from IRQ context, a caller mistake there will simply never be
// serviced.
func (s *Semaphore) Take() {
	k := s.k
	k.mu.Lock()
	s.waiting = k.current
	k.current.state = StateBlocked
	k.mu.Unlock()

	k.doYield()
}

// Give signals the semaphore. Callable from task or IRQ context. A Give
// with no task currently recorded as waiting is a lost signal: it is
// not remembered for a later Take. Otherwise the waiting task is made
// ready and, when called from task context, a reschedule is requested
// immediately; when called from IRQ context the waiting task is only
// marked ready, and the pending reschedule is deferred to the
// dispatcher's return from the interrupt.
func (s *Semaphore) Give() {
	k := s.k
	k.mu.Lock()
	waiter := s.waiting
	if waiter == nil {
		k.mu.Unlock()
		return
	}
	s.waiting = nil
	if waiter.state == StateBlocked {
		waiter.state = StateReady
	}
	inIRQ := k.phase == PhaseIRQRun
	k.mu.Unlock()

	if inIRQ {
		k.markRescheduleOnIRQExit()
	} else {
		k.reschedule()
	}
}
