package vtclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/internal/looptest"
)

// connectedClient drives c straight to Connected using the same fakeVT
// harness driver_test.go uses, so event-dispatch tests don't repeat the
// handshake step-by-step.
func connectedClient(t *testing.T) (*Client, *looptest.Bus, *fakeVT) {
	t.Helper()
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	vt := newFakeVT(bus, ecuAddr, vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	clk := &manualClock{now: time.Unix(0, 0)}
	c, err := NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr), WithClock(clk))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(false))
	require.True(t, c.SetObjectPool(0, Version4, []byte{0x01}))

	vt.announceStatus()
	bus.Pump()
	for i := 0; i < 8 && c.State() != Connected && c.State() != Failed; i++ {
		c.Update()
		bus.Pump()
	}
	require.Equal(t, Connected, c.State())
	return c, bus, vt
}

func TestSubscribeSoftKeyReceivesDecodedEvent(t *testing.T) {
	c, bus, vt := connectedClient(t)

	var got *SoftKeyEvent
	unsub := c.SubscribeSoftKey(func(_ *Client, e *SoftKeyEvent) { got = e })
	defer unsub()

	vt.reply([]byte{byte(fnSoftKeyActivation), byte(KeyPressed), 0x10, 0x00, 0x20, 0x00, 7})
	bus.Pump()

	require.NotNil(t, got)
	require.Equal(t, KeyPressed, got.KeyCode)
	require.Equal(t, uint16(0x10), got.ObjectID)
	require.Equal(t, uint16(0x20), got.MaskID)
	require.Equal(t, uint8(7), got.KeyNumber)
}

func TestUnsubscribeRemovesExactlyOneHandler(t *testing.T) {
	c, bus, vt := connectedClient(t)

	var firstCalls, secondCalls int
	unsubFirst := c.SubscribeButton(func(_ *Client, _ *ButtonEvent) { firstCalls++ })
	c.SubscribeButton(func(_ *Client, _ *ButtonEvent) { secondCalls++ })

	unsubFirst()

	vt.reply([]byte{byte(fnButtonActivation), byte(KeyReleased), 0x01, 0x00, 0x02, 0x00, 3})
	bus.Pump()

	require.Equal(t, 0, firstCalls)
	require.Equal(t, 1, secondCalls)
}

func TestSubscribePointingAndSelectInput(t *testing.T) {
	c, bus, vt := connectedClient(t)

	var pointing *PointingEvent
	var selected *SelectInputObjectEvent
	c.SubscribePointing(func(_ *Client, e *PointingEvent) { pointing = e })
	c.SubscribeSelectInput(func(_ *Client, e *SelectInputObjectEvent) { selected = e })

	vt.reply([]byte{byte(fnPointingEvent), 0x64, 0x00, 0xC8, 0x00, byte(KeyStillHeld)})
	bus.Pump()
	require.NotNil(t, pointing)
	require.Equal(t, uint16(100), pointing.X)
	require.Equal(t, uint16(200), pointing.Y)
	require.Equal(t, KeyStillHeld, pointing.TouchState)

	vt.reply([]byte{byte(fnSelectInputObject), 0x05, 0x00, 0x01, 0x01})
	bus.Pump()
	require.NotNil(t, selected)
	require.Equal(t, uint16(5), selected.ObjectID)
	require.True(t, selected.Selected)
	require.True(t, selected.OpenForInput)
}

func TestHandlerCanSubscribeDuringDispatchWithoutDeadlock(t *testing.T) {
	c, bus, vt := connectedClient(t)

	done := make(chan struct{}, 1)
	c.SubscribeSoftKey(func(c *Client, _ *SoftKeyEvent) {
		c.SubscribeButton(func(_ *Client, _ *ButtonEvent) {})
		close(done)
	})

	vt.reply([]byte{byte(fnSoftKeyActivation), byte(KeyPressed), 0x00, 0x00, 0x00, 0x00, 0})
	bus.Pump()

	select {
	case <-done:
	default:
		t.Fatal("handler did not run")
	}
}
