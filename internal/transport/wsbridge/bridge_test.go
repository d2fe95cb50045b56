package wsbridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/vtclient"
)

type testControlFunction uint8

func (c testControlFunction) Address() uint8 { return uint8(c) }

func TestMessageHeaderRoundTrip(t *testing.T) {
	msg := encodeMessage(0xE600, 0x26, 0xC0, []byte{0x01, 0x02, 0x03})
	pgn, src, dst, payload, ok := decodeMessage(msg)
	require.True(t, ok)
	assert.Equal(t, uint32(0xE600), pgn)
	assert.Equal(t, uint8(0x26), src)
	assert.Equal(t, uint8(0xC0), dst)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, payload)
}

func TestDecodeMessageRejectsShortMessage(t *testing.T) {
	_, _, _, _, ok := decodeMessage([]byte{0x01, 0x02})
	assert.False(t, ok)
}

// newBridgePair spins up an httptest server that upgrades to a Bridge and
// dials it from a second Bridge, mirroring vango's
// server_handshake_test.go dialWS/httptest.NewServer setup.
func newBridgePair(t *testing.T) (client *Bridge, server *Bridge) {
	t.Helper()
	serverCh := make(chan *Bridge, 1)
	upgrader := &Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := upgrader.Accept(w, r)
		require.NoError(t, err)
		serverCh <- b
	}))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	client, err := Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server = <-serverCh:
	case <-time.After(time.Second):
		t.Fatal("server never upgraded the connection")
	}
	t.Cleanup(func() { _ = server.Close() })
	return client, server
}

func TestBridgeRoundTripsFrames(t *testing.T) {
	client, server := newBridgePair(t)

	received := make(chan struct{}, 1)
	var gotSrc uint8
	var gotPayload []byte
	require.NoError(t, server.RegisterReceiver(vtclient.PGNECUToVT, func(src vtclient.ControlFunction, payload []byte) {
		gotSrc = src.Address()
		gotPayload = append([]byte(nil), payload...)
		received <- struct{}{}
	}))

	ok := client.SendFrame(nil, vtclient.PGNECUToVT, testControlFunction(0x26), testControlFunction(0xC0),
		[]byte{0xAA, 0xBB}, nil)
	require.True(t, ok)

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	assert.Equal(t, uint8(0x26), gotSrc)
	assert.Equal(t, []byte{0xAA, 0xBB}, gotPayload)
}

func TestSendTransportRejectsFailedFetch(t *testing.T) {
	client, _ := newBridgePair(t)

	done := make(chan bool, 1)
	ok := client.SendTransport(nil, vtclient.PGNECUToVT, testControlFunction(0x26), testControlFunction(0xC0),
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
