// Package kernel implements the core of a small preemptive real-time
// kernel: a task control block and stack-forging routine, a priority/
// round-robin scheduler, a tick-driven time base, a context-switch
// primitive, a critical section, a binary semaphore, a fixed-capacity
// byte queue and an IRQ dispatcher.
//
// The target hardware is a single-core microcontroller with a periodic
// tick timer and a low-priority tail-chained "switch" exception (a
// Cortex-M PendSV, in the reference implementation). None of that exists
// under a hosted Go process, so this package models the kernel as a
// discrete-event simulation: every registered task is backed by exactly
// one goroutine, but the kernel only ever allows the goroutine belonging
// to the current task to run application code, parking every other task
// goroutine on a private channel. Tick() and DispatchIRQ() stand in for
// the timer interrupt and the external interrupt controller and are
// meant to be called by whatever in the embedding program represents
// hardware (a ticker goroutine, a test, a simulated NVIC).
//
// Board bring-up, peripheral drivers, application main and the concrete
// CPU register encoding of an exception frame are out of scope; see
// DESIGN.md for how the forged initial frame is represented.
package kernel
