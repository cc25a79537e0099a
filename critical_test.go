package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriticalSectionNesting(t *testing.T) {
	k := New()

	k.EnterCritical()
	assert.Equal(t, int32(1), k.csDepth.Load())

	k.EnterCritical()
	assert.Equal(t, int32(2), k.csDepth.Load())

	k.ExitCritical()
	assert.Equal(t, int32(1), k.csDepth.Load())

	k.ExitCritical()
	assert.Equal(t, int32(0), k.csDepth.Load())
}

func TestCriticalSectionExcludesConcurrentAccess(t *testing.T) {
	k := New()

	k.EnterCritical()
	assert.False(t, k.mu.TryLock(), "kernel lock should be held while a critical section is open")

	k.ExitCritical()
	assert.True(t, k.mu.TryLock(), "kernel lock should be free once the critical section closes")
	k.mu.Unlock()
}
