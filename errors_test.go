package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFatalClassification(t *testing.T) {
	assert.True(t, ErrTooManyTasks.fatal())
	assert.True(t, ErrScheduling.fatal())
	assert.True(t, ErrDelayFromISR.fatal())
	assert.False(t, ErrNone.fatal())
	assert.False(t, WarnQueueFullISR.fatal())
	assert.False(t, WarnQueueEmptyISR.fatal())
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "too_many_tasks", ErrTooManyTasks.String())
	assert.Equal(t, "warn_queue_full_isr", WarnQueueFullISR.String())
	assert.Equal(t, "unknown", Code(42).String())
}

func TestReportWarnUpdatesLastError(t *testing.T) {
	k := New()
	assert.Equal(t, ErrNone, k.LastError())
	k.reportWarn(WarnQueueEmptyISR)
	assert.Equal(t, WarnQueueEmptyISR, k.LastError())
}
