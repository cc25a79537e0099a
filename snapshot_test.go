package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	k := New()
	k.RegisterTask(func() { select {} }, 0)
	k.RegisterTask(func() { select {} }, 1)
	k.Init()
	k.Start()
	time.Sleep(5 * time.Millisecond)
	k.Tick()

	buf := make([]byte, k.SnapshotSize())
	require.NoError(t, k.Serialize(buf))

	snap, err := Deserialize(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.TickCount)
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, Priority(0), snap.Tasks[0].Priority)
	assert.Equal(t, Priority(1), snap.Tasks[1].Priority)
}

func TestSerializeBufferTooSmall(t *testing.T) {
	k := New()
	k.RegisterTask(func() { select {} }, 0)
	k.Init()

	err := k.Serialize(make([]byte, 1))
	assert.Error(t, err)
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	_, err := Deserialize([]byte{0xFF, 0x00})
	assert.Error(t, err)
}

func TestDeserializeRejectsTruncatedBuffer(t *testing.T) {
	_, err := Deserialize([]byte{snapshotVersion})
	assert.Error(t, err)
}
