package kernel

// runSchedulerLocked implements the selection algorithm of spec.md 4.2.
// Callers must hold k.mu. It never blocks and never touches the
// goroutine baton: it only decides k.next and whether a switch is
// required (k.switchPending). The actual handoff is performed by
// reschedule in switch.go.
func (k *Kernel) runSchedulerLocked() {
	if k.phase == PhaseFromReset {
		k.current = k.idle
		k.phase = PhaseNormalRun
	} else if k.phase == PhaseScheduling {
		// Re-entry guard: a tick arriving while an API-induced
		// reschedule is already in flight must not double-schedule.
		return
	}

	k.phase = PhaseScheduling

	selected := false
	for p := Priority(0); int(p) < PriorityLevels && !selected; p++ {
		band := k.tasksAtPriority(p)
		n := len(band)
		if n == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			idx := (k.cursor[p] + i) % n
			t := band[idx]
			switch t.state {
			case StateReady:
				k.next = t
				k.cursor[p] = (idx + 1) % n
				if k.next != k.current {
					k.switchPending = true
				}
				selected = true
			case StateBlocked:
				// Not schedulable; keep scanning the band.
			case StateRunning:
				// The current task is still the highest-priority
				// candidate; nothing to do.
				selected = true
			}
			if selected {
				break
			}
		}
		// If every task in the band was Blocked, fall through to the
		// next priority.
	}

	if !selected {
		k.next = k.idle
		if k.idle != k.current {
			k.switchPending = true
		}
	}

	k.phase = PhaseNormalRun
}
