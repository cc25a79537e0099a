package kernel

import "runtime"

// callerPC captures the return address of the kernel API call site, the
// Go analogue of the caller identity passed to the reference kernel's
// error hook.
func callerPC() uintptr {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return 0
	}
	return pc
}
