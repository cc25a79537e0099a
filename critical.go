package kernel

// EnterCritical masks (conceptually) interrupts and the tick base,
// matching spec.md 4.5's nesting semantics: only the outermost call
// actually takes the kernel lock, and a matching count of ExitCritical
// calls is required to release it. Callable from task context; the
// kernel's own harness entry points (Tick, IRQ dispatch) take k.mu
// directly instead, representing the hardware's own handler-mode
// masking rather than a nested application-level section.
func (k *Kernel) EnterCritical() {
	if k.csDepth.Add(1) == 1 {
		k.mu.Lock()
	}
}

// ExitCritical unwinds one level of critical section. Calling it
// without a matching EnterCritical is a programming error; the depth
// is clamped at zero and the kernel lock is left untouched.
func (k *Kernel) ExitCritical() {
	switch d := k.csDepth.Add(-1); {
	case d == 0:
		k.mu.Unlock()
	case d < 0:
		k.csDepth.Store(0)
	}
}
