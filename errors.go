package kernel

// Code is a stable, wire-style error/warning code, mirroring the
// original C kernel's ERR_*/WARN_* integer taxonomy. These are kept as
// plain integers rather than the `error` interface because application
// code and the error hook key off the numeric value, exactly as the
// reference implementation's caller sites do.
type Code int32

// Fatal kernel errors. A fatal error halts the system by invoking
// ErrorHook, which by default never returns.
const (
	ErrNone           Code = 0
	ErrTooManyTasks   Code = -1
	ErrScheduling     Code = -2
	ErrDelayFromISR   Code = -3
	WarnQueueFullISR  Code = -100
	WarnQueueEmptyISR Code = -101
)

func (c Code) String() string {
	switch c {
	case ErrNone:
		return "none"
	case ErrTooManyTasks:
		return "too_many_tasks"
	case ErrScheduling:
		return "scheduling"
	case ErrDelayFromISR:
		return "delay_from_isr"
	case WarnQueueFullISR:
		return "warn_queue_full_isr"
	case WarnQueueEmptyISR:
		return "warn_queue_empty_isr"
	default:
		return "unknown"
	}
}

func (c Code) fatal() bool {
	return c < 0 && c > -100
}

// reportFatal records a fatal error and invokes ErrorHook with the
// caller's return address, the Go analogue of passing the faulting call
// site. ErrorHook's default implementation blocks forever, matching the
// reference kernel's "system halt" behaviour: a fatal condition is a
// programming error, not a recoverable one.
func (k *Kernel) reportFatal(code Code, caller uintptr) {
	k.mu.Lock()
	k.lastCode = code
	k.mu.Unlock()
	k.log.Error().
		Stringer("code", code).
		Uint64("caller", uint64(caller)).
		Msg("kernel: fatal error")
	if k.ErrorHook != nil {
		k.ErrorHook(caller)
	}
}

// reportWarn records a warning. Warnings abort the offending operation
// but do not halt the system.
func (k *Kernel) reportWarn(code Code) {
	k.mu.Lock()
	k.lastCode = code
	k.mu.Unlock()
	k.log.Warn().Stringer("code", code).Msg("kernel: warning")
}

// LastError returns the last recorded error or warning code.
func (k *Kernel) LastError() Code {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastCode
}
