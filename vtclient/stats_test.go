package vtclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshotIsIndependentOfFurtherRecording(t *testing.T) {
	var s stats
	s.recordFrameSent()
	s.recordFrameSent()
	s.recordFrameReceived()
	s.recordBytesUploaded(100)
	s.recordRetryDrained()

	sent, received, uploaded, retries := s.snapshot()
	assert.Equal(t, uint64(2), sent)
	assert.Equal(t, uint64(1), received)
	assert.Equal(t, uint64(100), uploaded)
	assert.Equal(t, uint64(1), retries)

	s.recordFrameSent()
	sentAgain, _, _, _ := s.snapshot()
	assert.Equal(t, uint64(3), sentAgain, "snapshot must reflect state at call time, not be frozen by an earlier read")
}

func TestClientStatsComposesCountersWithState(t *testing.T) {
	c, bus, vt := connectedClient(t)
	_ = bus
	_ = vt

	snap := c.Stats()
	assert.Equal(t, Connected, snap.State)
	assert.True(t, snap.FramesSent > 0)
	assert.True(t, snap.FramesReceived > 0)
}
