package kernel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// maxTasks is the registered-task array capacity, spec.md's 8.
const maxTasks = 8

// IRQHandler is a user-registered external interrupt handler, run with
// the kernel's phase set to PhaseIRQRun for its duration.
type IRQHandler func()

// Kernel is the Kernel Control Block: the single process-wide instance
// holding the task registry, per-priority counts, current/next task
// pointers and system phase. Construct one with New.
type Kernel struct {
	mu sync.Mutex

	tasks           []*TCB // sorted ascending priority after Init
	countByPriority [PriorityLevels]int
	cursor          [PriorityLevels]int

	idle *TCB

	current *TCB
	next    *TCB

	phase         Phase
	switchPending bool
	rescheduleISR bool

	csDepth atomic.Int32

	lastCode Code

	tickPeriod time.Duration
	tickCount  uint64

	irqMu       sync.Mutex
	irqHandlers map[int]IRQHandler

	wake chan struct{} // doorbell: nudges a parked idle task after Tick/IRQ mutate state

	initialized bool
	started     bool

	log zerolog.Logger

	// ReturnHook runs if a task's entry function ever returns.
	ReturnHook func()
	// TickHook runs at the end of every Tick. Must not call kernel APIs.
	TickHook func()
	// ErrorHook runs when a fatal error is recorded, receiving the
	// faulting call site.
	ErrorHook func(caller uintptr)
	// IdleHook runs on each pass of the idle task's loop: when idle is
	// dispatched and again each time it is woken while still current.
	IdleHook func()
}

// New constructs a Kernel. Register tasks with RegisterTask, then call
// Init to finalise registration and Start to begin dispatch.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		irqHandlers: make(map[int]IRQHandler),
		wake:        make(chan struct{}, 1),
		log:         defaultLogger(),
	}
	k.ErrorHook = k.defaultErrorHook
	k.ReturnHook = k.defaultReturnHook
	k.IdleHook = defaultIdleHook

	for _, opt := range opts {
		opt(k)
	}

	k.idle = newTCB(k.idleEntry, idlePriority)
	k.idle.id = idleID
	k.idle.k = k
	k.startTaskGoroutine(k.idle)

	return k
}

func (k *Kernel) defaultErrorHook(uintptr) {
	select {} // system halt, matching the reference kernel's infinite loop
}

func (k *Kernel) defaultReturnHook() {
	select {}
}

func defaultIdleHook() {}

func (k *Kernel) idleEntry() {
	for {
		k.IdleHook()
		// Idle is task context, not harness context: it yields on its
		// own behalf, so it uses the self-park path rather than
		// reschedule (which is reserved for Tick/IRQ, neither of which
		// is the idle goroutine itself).
		if !k.doYield() {
			<-k.wake
		}
	}
}

// Init finalises registration: it sorts the registered-task array by
// ascending priority, renumbers task ids to their position in the
// sorted array, and arms FROM_RESET so the first Start call performs
// the initial dispatch. There is no switch exception in this model, so
// Init has no exception priority to adjust.
func (k *Kernel) Init() {
	k.mu.Lock()
	quicksortTasks(k.tasks, 0, len(k.tasks)-1)
	for i, t := range k.tasks {
		t.id = uint8(i)
	}
	k.phase = PhaseFromReset
	k.current = nil
	k.next = nil
	k.initialized = true
	k.mu.Unlock()
}

// Start performs the first dispatch, handing the CPU to the
// highest-priority registered task. It must be called after Init and
// exactly once.
func (k *Kernel) Start() {
	k.mu.Lock()
	k.started = true
	k.mu.Unlock()
	k.reschedule()
}

// CurrentTask returns the task the kernel is currently running.
func (k *Kernel) CurrentTask() *TCB {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current
}

// Started reports whether Start has been called.
func (k *Kernel) Started() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.started
}

// quicksortTasks sorts by ascending priority using an explicit stack,
// per spec.md 4.1 ("quicksort with an explicit stack is sufficient").
// Ties are left in registration order, which this partition scheme
// preserves closely enough for round-robin fairness (not guaranteed
// stable, not required to be).
func quicksortTasks(tasks []*TCB, lo, hi int) {
	type frame struct{ lo, hi int }
	if lo >= hi {
		return
	}
	stack := []frame{{lo, hi}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.lo >= f.hi {
			continue
		}
		p := partitionTasks(tasks, f.lo, f.hi)
		stack = append(stack, frame{f.lo, p - 1}, frame{p + 1, f.hi})
	}
}

func partitionTasks(tasks []*TCB, lo, hi int) int {
	pivot := tasks[hi].priority
	i := lo
	for j := lo; j < hi; j++ {
		if tasks[j].priority <= pivot {
			tasks[i], tasks[j] = tasks[j], tasks[i]
			i++
		}
	}
	tasks[i], tasks[hi] = tasks[hi], tasks[i]
	return i
}

// tasksAtPriority returns the contiguous slice of the sorted task array
// belonging to priority p.
func (k *Kernel) tasksAtPriority(p Priority) []*TCB {
	start := -1
	for i, t := range k.tasks {
		if t.priority == p {
			if start == -1 {
				start = i
			}
		} else if start != -1 {
			return k.tasks[start:i]
		}
	}
	if start == -1 {
		return nil
	}
	return k.tasks[start:]
}

// startTaskGoroutine launches the goroutine that will run t.entry once
// granted the CPU baton. It parks immediately, waiting for its first
// (or next) resume.
func (k *Kernel) startTaskGoroutine(t *TCB) {
	go func() {
		<-t.resume
		t.entry()
		// entry() is only ever expected to loop forever; returning is
		// a bug.
		k.ReturnHook()
	}()
}
