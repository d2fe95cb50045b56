package vtclient

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Option configures a Client at construction time, following the
// teacher's functional-options shape (zmodem/session.go's WithConfig /
// WithCallbacks / WithContext / WithSessionLogger).
type Option func(*Client)

// WithLogger installs a Logger. The default is NoopLogger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock injects a monotonic clock source, letting tests drive
// timeouts deterministically instead of depending on wall-clock sleeps
// (§9's "global timestamps read ad hoc" re-architecture note).
func WithClock(clk Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithRequiredMemory sets the byte count sent in the get-memory query.
// Defaults to 0 (no specific requirement beyond "enough to hold the
// registered pools").
func WithRequiredMemory(bytes uint32) Option {
	return func(c *Client) { c.requiredMemory = bytes }
}

// WithContext supplies the context passed to every NetworkManager call.
// Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *Client) { c.ctx = ctx }
}

// Client is the public facade: the connection/negotiation/upload state
// machine, the capability store, the pool registry, and the event
// dispatcher, bound to one NetworkManager and one (local, partner)
// control function pair.
//
// All shared mutable state is guarded by mu, taken at the top of every
// public method and every NetworkManager callback, per §5's single
// coarse-mutex contract.
type Client struct {
	mu sync.Mutex

	net     NetworkManager
	local   ControlFunction
	partner ControlFunction
	logger  Logger
	clock   Clock
	ctx     context.Context

	requiredMemory uint32

	state          ConnectionState
	stateEnteredAt time.Time

	caps  *capabilityStore
	pools *poolRegistry
	disp  *dispatcher

	vtStatus            VTStatusSnapshot
	lastMaintenanceSent time.Time
	retry               RetryFlag
	sufficientMemory    bool

	activeUpload *PoolDescriptor

	stats stats

	terminated bool
	egCancel   context.CancelFunc
	eg         *errgroup.Group
}

// NewClient builds a Client in the Disconnected state. The network
// manager's receiver for the VT-to-ECU parameter group (PGNVTToECU) is
// registered immediately so inbound traffic is never silently dropped
// between construction and Initialize.
func NewClient(net NetworkManager, local, partner ControlFunction, opts ...Option) (*Client, error) {
	c := &Client{
		net:     net,
		local:   local,
		partner: partner,
		logger:  NoopLogger{},
		clock:   realClock{},
		ctx:     context.Background(),
		state:   Disconnected,
		caps:    newCapabilityStore(),
		pools:   newPoolRegistry(),
		disp:    newDispatcher(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stateEnteredAt = c.clock.Now()

	if err := c.net.RegisterReceiver(PGNVTToECU, c.handleReceive); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s ConnectionState) {
	if c.state == s {
		return
	}
	c.logger.Info("%s", logTransition(c.state, s))
	c.state = s
	c.stateEnteredAt = c.clock.Now()
}

// Capabilities returns a copy of the current capability record.
func (c *Client) Capabilities() CapabilityRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record
}

// FontSizeSupported reports whether size was advertised by the connected
// VT (§4.2).
func (c *Client) FontSizeSupported(size FontSize) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.FontSizeSupported(size)
}

// FontStyleSupported reports whether style was advertised by the
// connected VT.
func (c *Client) FontStyleSupported(style FontStyleBits) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.FontStyleSupported(style)
}

// ScreenPixels returns the connected VT's reported screen dimensions.
func (c *Client) ScreenPixels() (width, height uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.ScreenWidthPixels, c.caps.record.ScreenHeightPixels
}

// NumberPhysicalSoftkeys returns the physical soft-key count reported by
// get-number-softkeys-response.
func (c *Client) NumberPhysicalSoftkeys() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.PhysicalSoftKeyCount
}

// NumberVirtualSoftkeys returns the virtual soft-key count.
func (c *Client) NumberVirtualSoftkeys() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.VirtualSoftKeyCount
}

// ConnectedVTVersion returns the negotiated VT version, valid once
// WaitForGetHardwareResponse has completed.
func (c *Client) ConnectedVTVersion() VTVersion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.ConnectedVTVersion
}

// GraphicMode returns the connected VT's reported colour depth.
func (c *Client) GraphicMode() GraphicMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caps.record.GraphicMode
}

// SetObjectPool installs an in-memory pool descriptor. bytes must remain
// live and unmodified until the pool's uploaded flag becomes true (§5).
// Returns false if registration happens after leaving ReadyForObjectPool,
// or if version conflicts with an already-registered pool.
func (c *Client) SetObjectPool(index uint8, version VTVersion, bytes []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registrationAllowed() {
		return false
	}
	return c.pools.setObjectPool(index, version, bytes)
}

// RegisterChunkCallback installs a pull-callback pool descriptor,
// superseding any in-memory registration at the same index. fetch must
// remain callable until the pool's uploaded flag becomes true.
func (c *Client) RegisterChunkCallback(index uint8, version VTVersion, totalSize uint32, fetch FetchFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.registrationAllowed() {
		return false
	}
	return c.pools.registerChunkCallback(index, version, totalSize, fetch)
}

// registrationAllowed implements the Open Question decision recorded in
// DESIGN.md: pool registration after the machine has left
// ReadyForObjectPool is rejected rather than guessed at.
func (c *Client) registrationAllowed() bool {
	switch c.state {
	case Disconnected, WaitForPartnerVTStatus, SendWorkingSetMaster, ReadyForObjectPool:
		return true
	default:
		return false
	}
}

// SubscribeSoftKey registers a soft-key event handler and returns a
// function that removes exactly this registration.
func (c *Client) SubscribeSoftKey(fn SoftKeyHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disp.subscribeSoftKey(fn)
}

// SubscribeButton registers a button event handler.
func (c *Client) SubscribeButton(fn ButtonHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disp.subscribeButton(fn)
}

// SubscribePointing registers a pointing event handler.
func (c *Client) SubscribePointing(fn PointingHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disp.subscribePointing(fn)
}

// SubscribeSelectInput registers an input-object-selection event handler.
func (c *Client) SubscribeSelectInput(fn SelectInputHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disp.subscribeSelectInput(fn)
}
