package vtclient

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/internal/looptest"
)

func TestFacadeRejectsCommandsBeforeConnected(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	bus.NewEndpoint(vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	c, err := NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(false))

	require.False(t, c.SendESC())
	require.False(t, c.SendHideShowObject(1, HideObject))
	require.False(t, c.SendChangeStringValue(1, "hello"))
}

func TestFacadeBoundaryValidation(t *testing.T) {
	c, _, _ := connectedClient(t)

	require.False(t, c.SendSetAudioVolume(101))
	require.True(t, c.SendSetAudioVolume(100))

	require.True(t, c.SendChangeChildLocation(1, 2, 255, 0))
	require.True(t, c.SendChangeChildLocation(1, 2, 0, 255))

	require.False(t, c.SendZoomViewport(1, -33))
	require.False(t, c.SendZoomViewport(1, 33))
	require.True(t, c.SendZoomViewport(1, 32))

	require.False(t, c.SendDrawPolygon(1, nil))
	require.False(t, c.SendChangePolygonPoint(1, 0, nil))

	require.False(t, c.SendDrawText(1, false, string(make([]byte, 256))))
	require.True(t, c.SendDrawText(1, false, "fits"))
}

func TestFacadeSendsOverSendFrameForFixedCommands(t *testing.T) {
	c, bus, vt := connectedClient(t)

	var captured []byte
	require.NoError(t, vt.endpoint.RegisterReceiver(PGNECUToVT, func(_ ControlFunction, payload []byte) {
		captured = append([]byte(nil), payload...)
	}))

	require.True(t, c.SendESC())
	bus.Pump()

	require.NotNil(t, captured)
	require.Equal(t, byte(fnESCCommand), captured[0])

	require.True(t, c.SendExtendedGetVersions())
	bus.Pump()

	require.Equal(t, byte(fnExtendedGetVersions), captured[0])
}

func TestFacadeSendsOverSendTransportForLongVariableCommands(t *testing.T) {
	c, bus, vt := connectedClient(t)

	var captured []byte
	require.NoError(t, vt.endpoint.RegisterReceiver(PGNECUToVT, func(_ ControlFunction, payload []byte) {
		captured = append(captured, payload...)
	}))

	long := make([]byte, 64)
	for i := range long {
		long[i] = 'x'
	}
	require.True(t, c.SendChangeStringValue(1, string(long)))
	bus.Pump()

	require.True(t, len(captured) > 8, "a >8-byte variable payload must go out via the transport protocol, not a single padded frame")
}
