package sshbridge

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/vtclient"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// testControlFunction is the minimal vtclient.ControlFunction the bridge
// needs for these tests.
type testControlFunction uint8

func (c testControlFunction) Address() uint8 { return uint8(c) }

func TestHeaderRoundTrip(t *testing.T) {
	header := encodeHeader(0xE600, 0x26, 0xC0, 12345)
	pgn, src, dst, payloadLen := decodeHeader(header)
	assert.Equal(t, uint32(0xE600), pgn)
	assert.Equal(t, uint8(0x26), src)
	assert.Equal(t, uint8(0xC0), dst)
	assert.Equal(t, uint32(12345), payloadLen)
}

// newLoopedBridge wires a Bridge's stdin/stdout together through an
// io.Pipe without ever touching a real ssh.Session, so write() and
// readLoop() can be exercised directly.
func newLoopedBridge(t *testing.T) *Bridge {
	t.Helper()
	r, w := io.Pipe()
	b := &Bridge{
		stdin:     nopWriteCloser{w},
		stdout:    r,
		logger:    vtclient.NoopLogger{},
		receivers: make(map[uint32]vtclient.ReceiveFunc),
		done:      make(chan error, 1),
	}
	go b.readLoop()
	t.Cleanup(func() { w.Close() })
	return b
}

func TestWriteDeliversToRegisteredReceiver(t *testing.T) {
	b := newLoopedBridge(t)

	received := make(chan struct{}, 1)
	var gotSrc uint8
	var gotPayload []byte
	require.NoError(t, b.RegisterReceiver(vtclient.PGNVTToECU, func(src vtclient.ControlFunction, payload []byte) {
		gotSrc = src.Address()
		gotPayload = append([]byte(nil), payload...)
		received <- struct{}{}
	}))

	ok := b.write(vtclient.PGNVTToECU, 0xC0, 0x26, []byte{0x01, 0x02, 0x03})
	require.True(t, ok)

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	assert.Equal(t, uint8(0xC0), gotSrc)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, gotPayload)
}

func TestSendFrameInvokesOnCompleteAsynchronously(t *testing.T) {
	b := newLoopedBridge(t)

	done := make(chan bool, 1)
	ok := b.SendFrame(nil, vtclient.PGNECUToVT, testControlFunction(0x26), testControlFunction(0xC0),
		[]byte{0xAA}, func(success bool) { done <- success })
	require.True(t, ok)

	select {
	case success := <-done:
		assert.True(t, success)
	case <-time.After(time.Second):
		t.Fatal("onComplete never fired")
	}
}

func TestSendTransportRejectsFailedFetch(t *testing.T) {
	b := newLoopedBridge(t)

	done := make(chan bool, 1)
	ok := b.SendTransport(nil, vtclient.PGNECUToVT, testControlFunction(0x26), testControlFunction(0xC0),
		10, func(invocationCount int, byteOffset, bytesRequested uint32, out []byte) bool { return false },
		func(success bool) { done <- success })
	require.False(t, ok)

	select {
	case success := <-done:
		assert.False(t, success)
	case <-time.After(time.Second):
		t.Fatal("onComplete never fired")
	}
}
