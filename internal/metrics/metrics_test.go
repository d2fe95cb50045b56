package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/internal/looptest"
	"github.com/fieldkit/isovt/vtclient"
)

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != "isovt_"+name {
			continue
		}
		require.Len(t, fam.Metric, 1)
		return fam.Metric[0].GetGauge().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestRegisterExposesClientState(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	bus.NewEndpoint(vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	client, err := vtclient.NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr))
	require.NoError(t, err)
	require.NoError(t, client.Initialize(false))

	reg := prometheus.NewRegistry()
	collector := Register(reg, client)
	t.Cleanup(func() { collector.Unregister(reg) })

	assert.Equal(t, float64(vtclient.WaitForPartnerVTStatus), gaugeValue(t, reg, "connection_state"))
	assert.Equal(t, float64(0), gaugeValue(t, reg, "frames_sent_total"))
	assert.Equal(t, float64(0), gaugeValue(t, reg, "frames_received_total"))

	client.Update()
	assert.Equal(t, float64(0), gaugeValue(t, reg, "frames_received_total"), "Update with no partner VT status waiting doesn't send or receive anything")
}

func TestRegisterReflectsFrameTraffic(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	vtEndpoint := bus.NewEndpoint(vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	client, err := vtclient.NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr))
	require.NoError(t, err)
	require.NoError(t, client.Initialize(false))

	reg := prometheus.NewRegistry()
	collector := Register(reg, client)
	t.Cleanup(func() { collector.Unregister(reg) })

	vtEndpoint.SendFrame(nil, vtclient.PGNVTToECU, looptest.ControlFunction(vtAddr), looptest.ControlFunction(ecuAddr),
		[]byte{0xFE, byte(vtAddr), 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0xFF}, nil)
	bus.Pump()

	assert.Equal(t, float64(1), gaugeValue(t, reg, "frames_received_total"))
	assert.Equal(t, float64(vtclient.SendWorkingSetMaster), gaugeValue(t, reg, "connection_state"))

	client.Update()
	bus.Pump()
	assert.Equal(t, float64(1), gaugeValue(t, reg, "frames_sent_total"))
}

func TestUnregisterRemovesMetrics(t *testing.T) {
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	bus.NewEndpoint(vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	client, err := vtclient.NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr))
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	collector := Register(reg, client)
	collector.Unregister(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}
