package kernel

// Priority is an application task's scheduling priority: 0 is highest,
// PriorityLevels-1 is lowest.
type Priority uint8

// PriorityLevels is the number of distinct priority bands, spec.md's
// [0,3].
const PriorityLevels = 4

// idlePriority and idleID are the sentinels for the hidden idle task:
// not counted in the registered-task total, not reachable through
// priority iteration.
const (
	idlePriority Priority = 0xFF
	idleID       uint8    = 0xFF
)

// TCB is a Task Control Block: one per task, allocated by RegisterTask
// before Init. Its zero value is not usable; construct tasks with
// RegisterTask.
type TCB struct {
	id       uint8
	priority Priority
	entry    func()

	stack   []uint32
	savedSP uint32

	state          TaskState
	ticksRemaining uint32

	// resume is the goroutine baton: the kernel sends on it to grant
	// this task the CPU, and the task's own goroutine receives from it
	// to park itself when it is not RUNNING. It stands in for the
	// hardware-owned saved stack pointer actually being restored.
	resume chan struct{}

	k *Kernel
}

// ID returns the task's id (0..N-1 for registered tasks, 0xFF for the
// idle task). Ids are handed out in registration order and renumbered
// by Init to each task's position in the priority-sorted array.
func (t *TCB) ID() uint8 { return t.id }

// Priority returns the task's scheduling priority.
func (t *TCB) Priority() Priority { return t.priority }

// State returns the task's current state. Safe to call from any
// context; it takes the kernel's lock.
func (t *TCB) State() TaskState {
	t.k.mu.Lock()
	defer t.k.mu.Unlock()
	return t.state
}

func newTCB(entry func(), priority Priority) *TCB {
	t := &TCB{
		entry:    entry,
		priority: priority,
		stack:    make([]uint32, stackWords),
		state:    StateReady,
		resume:   make(chan struct{}),
	}
	t.savedSP = forgeInitialFrame(t.stack, entry, returnHookAddress)
	return t
}

// returnHookAddress is the sentinel link-register value forged into
// every task's initial frame. Task functions are expected to loop
// forever (see original_source/src/main.c); returning from one is a
// programming error and is handled by ReturnHook.
var returnHookAddress = entryAddress(func() {})

// RegisterTask registers entry to run as a task at the given priority.
// It must be called before Init; calling it afterwards, or exceeding
// the maximum of 8 registered tasks, is a fatal ErrTooManyTasks and the
// task is not registered. The returned TCB does not run until Start
// performs the first dispatch.
func (k *Kernel) RegisterTask(entry func(), priority Priority) *TCB {
	k.mu.Lock()
	if k.initialized || len(k.tasks) >= maxTasks {
		k.mu.Unlock()
		k.reportFatal(ErrTooManyTasks, callerPC())
		return nil
	}

	t := newTCB(entry, priority)
	t.id = uint8(len(k.tasks))
	t.k = k
	k.tasks = append(k.tasks, t)
	k.countByPriority[priority]++
	k.mu.Unlock()

	k.startTaskGoroutine(t)
	return t
}
