package debugserver

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldkit/isovt/internal/looptest"
	"github.com/fieldkit/isovt/internal/metrics"
	"github.com/fieldkit/isovt/vtclient"
)

func newTestClient(t *testing.T) *vtclient.Client {
	t.Helper()
	const ecuAddr, vtAddr = 0x26, 0xC0
	bus := looptest.NewBus()
	bus.NewEndpoint(vtAddr)
	ecu := bus.NewEndpoint(ecuAddr)

	client, err := vtclient.NewClient(ecu, looptest.ControlFunction(ecuAddr), looptest.ControlFunction(vtAddr))
	require.NoError(t, err)
	require.NoError(t, client.Initialize(false))
	return client
}

func TestStateEndpointReportsCurrentState(t *testing.T) {
	client := newTestClient(t)
	srv := New(client, nil)

	req := httptest.NewRequest("GET", "/state", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var body stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, vtclient.WaitForPartnerVTStatus.String(), body.State)
}

func TestCapabilitiesEndpointReportsCapabilities(t *testing.T) {
	client := newTestClient(t)
	srv := New(client, nil)

	req := httptest.NewRequest("GET", "/capabilities", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var caps vtclient.CapabilityRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caps))
	assert.Equal(t, uint8(0), caps.VirtualSoftKeyCount)
}

func TestMetricsEndpointWithoutRegistryIsNotFound(t *testing.T) {
	client := newTestClient(t)
	srv := New(client, nil)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestMetricsEndpointServesRegisteredMetrics(t *testing.T) {
	client := newTestClient(t)
	reg := prometheus.NewRegistry()
	collector := metrics.Register(reg, client)
	t.Cleanup(func() { collector.Unregister(reg) })

	srv := New(client, reg)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "isovt_connection_state")
}
