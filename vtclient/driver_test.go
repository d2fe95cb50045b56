package vtclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/internal/looptest"
)

// manualClock is the fakeClock the source header's "inject a monotonic
// clock source" re-architecture note (§9) exists for: tests advance it
// explicitly instead of sleeping.
type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeVT answers the handshake exchanges a real VT server would, wired to
// its own looptest.Endpoint so the test drives the Client through every
// state in §4.4 without a real CAN stack.
type fakeVT struct {
	endpoint *looptest.Endpoint
	self     looptest.ControlFunction
	ecu      looptest.ControlFunction
}

func newFakeVT(bus *looptest.Bus, ecuAddr, vtAddr uint8) *fakeVT {
	f := &fakeVT{
		endpoint: bus.NewEndpoint(vtAddr),
		self:     looptest.ControlFunction(vtAddr),
		ecu:      looptest.ControlFunction(ecuAddr),
	}
	f.endpoint.RegisterReceiver(PGNECUToVT, f.handle)
	return f
}

func (f *fakeVT) reply(payload []byte) {
	f.endpoint.SendFrame(nil, PGNVTToECU, f.self, f.ecu, payload, nil)
}

func (f *fakeVT) handle(src ControlFunction, payload []byte) {
	switch function(payload[0]) {
	case fnWorkingSetMaster:
		// no response required
	case fnGetMemory:
		f.reply([]byte{byte(fnGetMemory), 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	case fnGetNumberSoftkeys:
		f.reply([]byte{byte(fnGetNumberSoftkeys), 32, 32, 6, 6, 0xFF, 0xFF, 0xFF})
	case fnGetTextFontData:
		f.reply([]byte{byte(fnGetTextFontData), 0xFF, 0x7F, 0x03, 0xFF, 0xFF, 0xFF, 0xFF})
	case fnGetHardware:
		f.reply([]byte{byte(fnGetHardware), byte(SixteenColour), 0x00, 0x40, 0x01, 0xF0, 0x00, 0x03})
	case fnEndOfObjectPool:
		f.reply([]byte{byte(fnEndOfObjectPool), 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0xFF})
	}
}

func (f *fakeVT) announceStatus() {
	f.reply([]byte{byte(fnVTStatusMessage), uint8(f.self.Address()), 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0xFF})
}

func TestFullHandshakeReachesConnected(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	vt := newFakeVT(bus, ecuAddr, vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	clk := &manualClock{now: time.Unix(0, 0)}
	c, err := NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr), WithClock(clk))
	require.NoError(t, err)

	require.NoError(t, c.Initialize(false))
	require.True(t, c.SetObjectPool(0, Version4, []byte{0x01, 0x02, 0x03}))

	vt.announceStatus()
	bus.Pump()
	require.Equal(t, SendWorkingSetMaster, c.State())

	// Each Update drives one Send.../WaitFor... step; the fake VT's reply
	// only lands once Pump is called, so each step needs an Update to send
	// the request and a Pump to deliver the reply before the next Update.
	for i := 0; i < 8 && c.State() != Connected && c.State() != Failed; i++ {
		c.Update()
		bus.Pump()
	}

	require.Equal(t, Connected, c.State())
	caps := c.Capabilities()
	require.Equal(t, uint8(6), caps.VirtualSoftKeyCount)
	require.Equal(t, SixteenColour, caps.GraphicMode)
}

func TestHandshakeStepTimeoutRegressesToFailed(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	// Drop every GetMemory so the client never leaves WaitForGetMemoryResponse.
	bus.Drop = func(pgn uint32, src, dst uint8, payload []byte) bool {
		return len(payload) > 0 && function(payload[0]) == fnGetMemory
	}
	ecu := bus.NewEndpoint(ecuAddr)
	announcer := bus.NewEndpoint(vtAddr)

	clk := &manualClock{now: time.Unix(0, 0)}
	c, err := NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr), WithClock(clk))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(false))
	require.True(t, c.SetObjectPool(0, Version4, []byte{0x01}))

	announcer.SendFrame(nil, PGNVTToECU, looptest.ControlFunction(vtAddr), looptest.ControlFunction(ecuAddr),
		[]byte{byte(fnVTStatusMessage), vtAddr, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0xFF}, nil)
	bus.Pump() // deliver the VT-status announcement: WaitForPartnerVTStatus -> SendWorkingSetMaster

	c.Update() // SendWorkingSetMaster -> ReadyForObjectPool
	bus.Pump()
	c.Update() // ReadyForObjectPool -> SendGetMemory
	bus.Pump()
	c.Update() // SendGetMemory -> WaitForGetMemoryResponse (frame dropped by bus, no response)
	bus.Pump()
	require.Equal(t, WaitForGetMemoryResponse, c.State())

	clk.advance(HandshakeStepTimeout + time.Millisecond)
	c.Update()
	require.Equal(t, Failed, c.State())
}
