package vtclient

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Initialize transitions a Disconnected or Failed client to
// WaitForPartnerVTStatus (§4.4) and, if spawnWorker is true, starts an
// internal worker goroutine that calls Update on a short cadence until
// Terminate stops it. The worker is coordinated with an errgroup.Group
// rather than a hand-rolled done-channel/WaitGroup pair.
func (c *Client) Initialize(spawnWorker bool) error {
	c.mu.Lock()
	c.terminated = false
	c.pools.reset()
	c.caps.reset()
	c.retry = 0
	c.sufficientMemory = false
	c.activeUpload = nil
	c.setState(WaitForPartnerVTStatus)

	if !spawnWorker {
		c.mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	eg, egCtx := errgroup.WithContext(ctx)
	c.egCancel = cancel
	c.eg = eg
	eg.Go(func() error { return c.runWorker(egCtx) })
	c.mu.Unlock()
	return nil
}

func (c *Client) runWorker(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Update()
		}
	}
}

// Terminate cooperatively stops the worker goroutine (if any), joins it,
// and returns the client to Disconnected. It is idempotent: calling it
// again after return is a no-op.
func (c *Client) Terminate() error {
	c.mu.Lock()
	cancel := c.egCancel
	eg := c.eg
	c.egCancel = nil
	c.eg = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		_ = eg.Wait()
	}

	c.mu.Lock()
	c.terminated = true
	c.setState(Disconnected)
	c.mu.Unlock()
	return nil
}

// Update is the single periodic-driver entry point (§4.6), callable either
// by the internal worker or directly by the embedder at a cyclic cadence
// (recommended >= every 50ms). Each call drains retry flags, checks
// VT-status freshness and the maintenance schedule when Connected,
// advances the state machine by at most one Send/timeout transition, and
// pumps the upload engine if active.
func (c *Client) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return
	}
	now := c.clock.Now()

	c.drainRetryFlags()
	if c.state == Connected {
		c.checkVTStatusFreshness(now)
		if c.state == Connected {
			c.checkMaintenanceSchedule(now)
		}
	}
	c.advanceStateMachine(now)
	c.pumpUpload()
}

func (c *Client) submit(frame []byte) bool {
	ok := c.net.SendFrame(c.ctx, PGNECUToVT, c.local, c.partner, frame, nil)
	if ok {
		c.stats.recordFrameSent()
	}
	return ok
}

func (c *Client) trySendMaintenance() bool {
	return c.submit(encodeWorkingSetMaintenance(false, c.caps.record.ConnectedVTVersion))
}

func (c *Client) drainRetryFlags() {
	if c.retry&RetrySendWorkingSetMaintenance != 0 {
		if c.trySendMaintenance() {
			c.retry &^= RetrySendWorkingSetMaintenance
			c.lastMaintenanceSent = c.clock.Now()
			c.stats.recordRetryDrained()
		}
	}
}

func (c *Client) checkVTStatusFreshness(now time.Time) {
	if c.vtStatus.LastSeenMS == 0 {
		return
	}
	last := time.UnixMilli(c.vtStatus.LastSeenMS)
	if now.Sub(last) > VTStatusTimeout {
		c.logger.Error("lost VT status after %s, returning to Disconnected", now.Sub(last))
		c.pools.reset()
		c.caps.reset()
		c.setState(Disconnected)
	}
}

func (c *Client) checkMaintenanceSchedule(now time.Time) {
	if now.Sub(c.lastMaintenanceSent) < MaintenanceInterval {
		return
	}
	if c.trySendMaintenance() {
		c.lastMaintenanceSent = now
	} else {
		c.retry |= RetrySendWorkingSetMaintenance
	}
}

// advanceStateMachine implements the explicit transition graph of §4.4.
// Every Send... case emits its message and, on successful submission,
// moves immediately to the matching WaitFor... state within the same
// call; submission failure leaves the state unchanged so the next tick
// retries. Every WaitFor... case (other than WaitForPartnerVTStatus,
// which has no documented timeout and waits for the VT to appear on the
// bus) regresses to Failed once HandshakeStepTimeout elapses.
func (c *Client) advanceStateMachine(now time.Time) {
	switch c.state {
	case SendWorkingSetMaster:
		if c.submit(encodeWorkingSetMaster()) {
			c.setState(ReadyForObjectPool)
		}

	case ReadyForObjectPool:
		if !c.pools.empty() {
			c.setState(SendGetMemory)
		}

	case SendGetMemory:
		if c.submit(encodeGetMemory(c.requiredMemory)) {
			c.setState(WaitForGetMemoryResponse)
		}

	case SendGetNumberSoftkeys:
		if c.submit(encodeGetNumberSoftkeys()) {
			c.setState(WaitForGetNumberSoftkeysResponse)
		}

	case SendGetTextFontData:
		if c.submit(encodeGetTextFontData()) {
			c.setState(WaitForGetTextFontDataResponse)
		}

	case SendGetHardware:
		if c.submit(encodeGetHardware()) {
			c.setState(WaitForGetHardwareResponse)
		}

	case SendEndOfObjectPool:
		if c.submit(encodeEndOfObjectPool()) {
			c.setState(WaitForEndOfObjectPoolResponse)
		}

	case WaitForGetMemoryResponse, WaitForGetNumberSoftkeysResponse,
		WaitForGetTextFontDataResponse, WaitForGetHardwareResponse,
		WaitForEndOfObjectPoolResponse:
		if now.Sub(c.stateEnteredAt) > HandshakeStepTimeout {
			c.logger.Error("timeout waiting in %s", c.state)
			c.setState(Failed)
		}
	}
}

// pumpUpload drives one outstanding transport-protocol submission at a
// time. When the registry reports every descriptor uploaded it advances
// to SendEndOfObjectPool; the actual send happens on the next
// advanceStateMachine call.
func (c *Client) pumpUpload() {
	if c.state != UploadObjectPool {
		return
	}
	if c.activeUpload != nil {
		return
	}
	d := c.pools.nextUnuploaded()
	if d == nil {
		c.setState(SendEndOfObjectPool)
		return
	}

	c.activeUpload = d
	d.UploadState = PoolInProgress
	fetch := makeUploadFetch(d.Source)
	ok := c.net.SendTransport(c.ctx, PGNECUToVT, c.local, c.partner, uploadTotalLen(d.Source), fetch,
		func(success bool) { c.onUploadComplete(d, success) })
	if ok {
		c.stats.recordFrameSent()
	}
	if !ok {
		d.UploadState = PoolFailed
		c.activeUpload = nil
		c.setState(Failed)
	}
}

func (c *Client) onUploadComplete(d *PoolDescriptor, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return
	}
	c.activeUpload = nil
	if !success {
		d.UploadState = PoolFailed
		c.setState(Failed)
		return
	}
	d.Uploaded = true
	d.UploadState = PoolSuccess
	c.stats.recordBytesUploaded(d.Source.totalSize())
	if c.pools.allUploaded() {
		c.setState(SendEndOfObjectPool)
	}
}

// handleReceive is the NetworkManager's registered ReceiveFunc. It decodes
// the payload, applies any state-machine-relevant effect under the
// client's mutex, then — for the four dispatched event kinds — releases
// the mutex before invoking subscriber callbacks, so a handler's
// follow-up commands never deadlock against the client's own lock.
func (c *Client) handleReceive(src ControlFunction, payload []byte) {
	c.stats.recordFrameReceived()

	c.mu.Lock()
	ev := decodeInbound(payload)

	switch e := ev.(type) {
	case *SoftKeyEvent:
		snap := c.disp.snapshotSoftKey()
		c.mu.Unlock()
		for _, s := range snap {
			s.fn(c, e)
		}
		return
	case *ButtonEvent:
		snap := c.disp.snapshotButton()
		c.mu.Unlock()
		for _, s := range snap {
			s.fn(c, e)
		}
		return
	case *PointingEvent:
		snap := c.disp.snapshotPointing()
		c.mu.Unlock()
		for _, s := range snap {
			s.fn(c, e)
		}
		return
	case *SelectInputObjectEvent:
		snap := c.disp.snapshotSelectInput()
		c.mu.Unlock()
		for _, s := range snap {
			s.fn(c, e)
		}
		return
	}

	defer c.mu.Unlock()
	now := c.clock.Now()

	switch e := ev.(type) {
	case *VTStatusMessage:
		c.vtStatus = VTStatusSnapshot{
			LastSeenMS:                 now.UnixMilli(),
			ActiveWorkingSetMasterAddr: e.WorkingSetMasterAddress,
			ActiveDataMaskID:           e.ActiveDataMaskID,
			ActiveSoftKeyMaskID:        e.ActiveSoftKeyMaskID,
			BusyBits:                   e.BusyBits,
			CurrentCommandFunction:     e.CurrentCommandFunction,
		}
		if c.state == WaitForPartnerVTStatus {
			c.setState(SendWorkingSetMaster)
		}

	case *GetMemoryResponse:
		if c.state != WaitForGetMemoryResponse {
			return
		}
		c.sufficientMemory = e.SufficientMemory
		if e.SufficientMemory {
			c.setState(SendGetNumberSoftkeys)
		} else {
			c.logger.Error("partner VT reports insufficient memory")
			c.setState(Failed)
		}

	case *GetNumberSoftkeysResponse:
		if c.state != WaitForGetNumberSoftkeysResponse {
			return
		}
		c.caps.applyGetNumberSoftkeysResponse(e)
		c.setState(SendGetTextFontData)

	case *GetTextFontDataResponse:
		if c.state != WaitForGetTextFontDataResponse {
			return
		}
		c.caps.applyGetTextFontDataResponse(e)
		c.setState(SendGetHardware)

	case *GetHardwareResponse:
		if c.state != WaitForGetHardwareResponse {
			return
		}
		c.caps.applyGetHardwareResponse(e)
		c.setState(UploadObjectPool)

	case *EndOfObjectPoolResponse:
		if c.state != WaitForEndOfObjectPoolResponse {
			return
		}
		if e.Success {
			c.lastMaintenanceSent = now
			c.setState(Connected)
		} else {
			c.logger.Error("end-of-object-pool rejected: object %#x error %#x", e.ErrorObjectID, e.ErrorCode)
			c.setState(Failed)
		}

	case *UnsupportedFunctionNotification:
		c.logger.Info("partner VT reports unsupported function %#02x", e.FunctionCode)

	case nil:
		c.logger.Debug("discarded unrecognized frame from %#x", src.Address())

	default:
		c.logger.Debug("observational notification: %#v", e)
	}
}
