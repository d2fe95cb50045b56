package vtclient

import "sync/atomic"

// Stats is a point-in-time snapshot of a Client's traffic counters, for an
// embedder that wants to expose them (as Prometheus metrics, a debug
// endpoint, or a log line) without the core importing anything beyond
// sync/atomic to track them.
type Stats struct {
	FramesSent     uint64
	FramesReceived uint64
	BytesUploaded  uint64
	RetriesDrained uint64
	State          ConnectionState
}

// stats holds the running counters a Client maintains alongside its state
// machine. Every field is touched only via the atomic package so Stats can
// be read concurrently with Update/handleReceive without taking c.mu —
// mirroring the teacher's preference for a narrow, lock-free counter path
// over folding read-mostly telemetry into the single coarse mutex.
type stats struct {
	framesSent     uint64
	framesReceived uint64
	bytesUploaded  uint64
	retriesDrained uint64
}

func (s *stats) recordFrameSent() { atomic.AddUint64(&s.framesSent, 1) }

func (s *stats) recordFrameReceived() { atomic.AddUint64(&s.framesReceived, 1) }

func (s *stats) recordBytesUploaded(n uint32) { atomic.AddUint64(&s.bytesUploaded, uint64(n)) }

func (s *stats) recordRetryDrained() { atomic.AddUint64(&s.retriesDrained, 1) }

func (s *stats) snapshot() (framesSent, framesReceived, bytesUploaded, retriesDrained uint64) {
	return atomic.LoadUint64(&s.framesSent),
		atomic.LoadUint64(&s.framesReceived),
		atomic.LoadUint64(&s.bytesUploaded),
		atomic.LoadUint64(&s.retriesDrained)
}

// Stats returns a snapshot of the client's traffic counters and current
// connection state.
func (c *Client) Stats() Stats {
	framesSent, framesReceived, bytesUploaded, retriesDrained := c.stats.snapshot()
	return Stats{
		FramesSent:     framesSent,
		FramesReceived: framesReceived,
		BytesUploaded:  bytesUploaded,
		RetriesDrained: retriesDrained,
		State:          c.State(),
	}
}
