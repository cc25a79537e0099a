package kernel

import (
	"encoding/binary"
	"errors"
)

// snapshotVersion is incremented whenever the binary layout changes.
const snapshotVersion = 1

// perTaskSnapshotSize is the number of bytes Serialize writes per
// registered task (id, priority, state, ticksRemaining, savedSP).
const perTaskSnapshotSize = 1 + 1 + 1 + 4 + 4

// SnapshotSize returns the number of bytes Serialize needs for the
// kernel's current task count.
func (k *Kernel) SnapshotSize() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return 1 + 1 + 8 + 1 + len(k.tasks)*perTaskSnapshotSize
}

// Serialize writes a point-in-time snapshot of scheduler state — phase,
// tick count, and every registered task's id/priority/state/delay/saved
// stack pointer — into buf for offline inspection or test assertions.
// It does not capture goroutine call stacks: resuming from a snapshot
// is not supported, this is a diagnostic dump, not a checkpoint/restore
// facility.
func (k *Kernel) Serialize(buf []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	need := 1 + 1 + 8 + 1 + len(k.tasks)*perTaskSnapshotSize
	if len(buf) < need {
		return errors.New("kernel: serialize buffer too small")
	}

	be := binary.BigEndian
	off := 0
	buf[off] = snapshotVersion
	off++
	buf[off] = byte(k.phase)
	off++
	be.PutUint64(buf[off:], k.tickCount)
	off += 8
	buf[off] = byte(len(k.tasks))
	off++

	for _, t := range k.tasks {
		buf[off] = t.id
		off++
		buf[off] = byte(t.priority)
		off++
		buf[off] = byte(t.state)
		off++
		be.PutUint32(buf[off:], t.ticksRemaining)
		off += 4
		be.PutUint32(buf[off:], t.savedSP)
		off += 4
	}
	return nil
}

// TaskSnapshot is one task's entry in a decoded Serialize dump.
type TaskSnapshot struct {
	ID             uint8
	Priority       Priority
	State          TaskState
	TicksRemaining uint32
	SavedSP        uint32
}

// KernelSnapshot is the decoded form of a Serialize dump.
type KernelSnapshot struct {
	Phase     Phase
	TickCount uint64
	Tasks     []TaskSnapshot
}

// Deserialize decodes a dump produced by Serialize. It does not mutate
// the kernel; it is read-only tooling for tests and diagnostics.
func Deserialize(buf []byte) (KernelSnapshot, error) {
	var s KernelSnapshot
	if len(buf) < 2 {
		return s, errors.New("kernel: deserialize buffer too small")
	}
	if buf[0] != snapshotVersion {
		return s, errors.New("kernel: unsupported snapshot version")
	}

	be := binary.BigEndian
	off := 1
	s.Phase = Phase(buf[off])
	off++
	if len(buf) < off+8+1 {
		return s, errors.New("kernel: truncated snapshot")
	}
	s.TickCount = be.Uint64(buf[off:])
	off += 8
	n := int(buf[off])
	off++

	if len(buf) < off+n*perTaskSnapshotSize {
		return s, errors.New("kernel: truncated snapshot")
	}
	s.Tasks = make([]TaskSnapshot, n)
	for i := 0; i < n; i++ {
		s.Tasks[i] = TaskSnapshot{
			ID:             buf[off],
			Priority:       Priority(buf[off+1]),
			State:          TaskState(buf[off+2]),
			TicksRemaining: be.Uint32(buf[off+3:]),
			SavedSP:        be.Uint32(buf[off+7:]),
		}
		off += perTaskSnapshotSize
	}
	return s, nil
}
