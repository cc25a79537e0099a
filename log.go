package kernel

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger mirrors the console-writer default wired by the pack's
// zerolog integrations: human-readable during development, structured
// (one event per diagnostic) rather than the reference kernel's
// log.Printf-to-UART strings.
func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("component", "kernel").
		Logger()
}

// SetLogger overrides the kernel's logger. Safe to call before Init;
// calling it after the kernel has started is a caller error the kernel
// does not itself guard against, the same way replacing tick_hook after
// boot is allowed but unusual.
func (k *Kernel) SetLogger(l zerolog.Logger) {
	k.log = l
}
