package kernel

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Kernel at construction time. Grounded on the
// functional-options pattern used for eventloop.Option in the pack
// (joeycumines-go-utilpkg/eventloop/options.go).
type Option func(*Kernel)

// WithTickPeriod sets the nominal period represented by one call to
// Tick. It is informational only (the kernel never sleeps on its own
// behalf); callers report it for logging and for Delay-duration
// conversions in application code.
func WithTickPeriod(d time.Duration) Option {
	return func(k *Kernel) { k.tickPeriod = d }
}

// WithTickHook installs the tick hook, invoked at the end of every Tick
// after the scheduler runs. The hook must not call kernel APIs.
func WithTickHook(fn func()) Option {
	return func(k *Kernel) { k.TickHook = fn }
}

// WithReturnHook installs the hook invoked if a task's entry function
// ever returns, which spec.md treats as a programming error.
func WithReturnHook(fn func()) Option {
	return func(k *Kernel) { k.ReturnHook = fn }
}

// WithErrorHook installs the hook invoked when a fatal error is
// recorded. caller is the return address of the offending API call.
func WithErrorHook(fn func(caller uintptr)) Option {
	return func(k *Kernel) { k.ErrorHook = fn }
}

// WithIdleHook replaces the body the idle task runs on each pass of its
// loop (the "wait for interrupt" loop): once when idle is dispatched and
// again each time a Tick or IRQ wakes idle while it stays current.
// Returning from it is expected.
func WithIdleHook(fn func()) Option {
	return func(k *Kernel) { k.IdleHook = fn }
}

// WithLogger overrides the kernel's zerolog.Logger. Equivalent to
// calling SetLogger after New.
func WithLogger(l zerolog.Logger) Option {
	return func(k *Kernel) { k.log = l }
}
