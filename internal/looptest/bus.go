// Package looptest provides an in-memory fake of vtclient.NetworkManager
// for tests: a Bus that queues frames between registered endpoints and
// delivers them (and resolves their completion callbacks) on an explicit
// Pump call, rather than inline from within SendFrame/SendTransport.
//
// Grounded on the teacher's own testing shape: zmodem has no tests of its
// own, but its Session is built entirely around an injected
// ReaderWithTimeout/io.Writer pair (zmodem/session.go), the same
// dependency-injection seam this package exploits for NetworkManager.
//
// Delivery is deliberately NOT inline with SendFrame/SendTransport: a real
// NetworkManager's receive path and send-completion callbacks run on their
// own I/O goroutine, arriving after the call that triggered them has
// already returned and released whatever lock the caller held. Resolving
// either synchronously from inside SendFrame/SendTransport would let a
// response (or an upload's own completion callback) reenter the client's
// still-held mutex — see vtclient/driver.go's handleReceive and
// onUploadComplete. Pump defers both to a point the test chooses, after
// the triggering call has unwound.
package looptest

import (
	"context"
	"sync"

	"github.com/fieldkit/isovt/vtclient"
)

// ControlFunction is the minimal vtclient.ControlFunction looptest hands
// out: a bare address with no other identity.
type ControlFunction uint8

func (c ControlFunction) Address() uint8 { return uint8(c) }

type queuedFrame struct {
	pgn        uint32
	src        uint8
	dst        uint8
	payload    []byte
	onComplete vtclient.SendCompleteFunc
}

// Endpoint is one side of a Bus: a fake vtclient.NetworkManager bound to a
// single address.
type Endpoint struct {
	bus     *Bus
	address uint8

	mu        sync.Mutex
	receivers map[uint32]vtclient.ReceiveFunc
}

// Bus wires pairs of Endpoints together. SendFrame/SendTransport enqueue a
// queuedFrame; Pump drains the queue, invoking each destination's
// registered receiver and then the sender's onComplete, in send order. A
// receiver that itself sends more frames during Pump has those enqueued
// too, and Pump keeps draining until the queue is empty — so one Pump call
// flushes an entire chain of request/response traffic.
type Bus struct {
	mu    sync.Mutex
	queue []queuedFrame

	endpoints map[uint8]*Endpoint

	// Drop, when non-nil, is consulted before a frame is enqueued;
	// returning true drops it, simulating a busy or absent partner.
	// Useful for exercising HandshakeStepTimeout without a real clock
	// skip. A dropped frame still resolves its onComplete(true) — the
	// bus accepted it for transmission, it just never arrived.
	Drop func(pgn uint32, src, dst uint8, payload []byte) bool
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{endpoints: make(map[uint8]*Endpoint)}
}

// NewEndpoint registers and returns a new Endpoint at address on b.
func (b *Bus) NewEndpoint(address uint8) *Endpoint {
	e := &Endpoint{bus: b, address: address, receivers: make(map[uint32]vtclient.ReceiveFunc)}
	b.mu.Lock()
	b.endpoints[address] = e
	b.mu.Unlock()
	return e
}

func (b *Bus) enqueue(pgn uint32, src, dst uint8, payload []byte, onComplete vtclient.SendCompleteFunc) bool {
	dropped := b.Drop != nil && b.Drop(pgn, src, dst, payload)
	b.mu.Lock()
	_, known := b.endpoints[dst]
	if !known {
		b.mu.Unlock()
		return false
	}
	qf := queuedFrame{pgn: pgn, src: src, dst: dst, onComplete: onComplete}
	if !dropped {
		qf.payload = payload
	}
	b.queue = append(b.queue, qf)
	b.mu.Unlock()
	return true
}

// Pump delivers every currently-queued frame — invoking the destination's
// registered receiver (if the frame wasn't dropped) and then the sender's
// onComplete — including any further frames enqueued while Pump is
// running, until the queue is empty. Returns the number of frames
// resolved.
func (b *Bus) Pump() int {
	resolved := 0
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return resolved
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		target := b.endpoints[next.dst]
		b.mu.Unlock()

		if next.payload != nil && target != nil {
			target.mu.Lock()
			handler := target.receivers[next.pgn]
			target.mu.Unlock()
			if handler != nil {
				handler(ControlFunction(next.src), next.payload)
			}
		}
		if next.onComplete != nil {
			next.onComplete(true)
		}
		resolved++
	}
}

// SendFrame implements vtclient.NetworkManager. It only enqueues; call
// Pump to actually deliver and resolve onComplete.
func (e *Endpoint) SendFrame(ctx context.Context, pgn uint32, src, dst vtclient.ControlFunction, payload []byte, onComplete vtclient.SendCompleteFunc) bool {
	return e.bus.enqueue(pgn, src.Address(), dst.Address(), append([]byte(nil), payload...), onComplete)
}

// SendTransport implements vtclient.NetworkManager by pulling the entire
// payload through fetch up front and enqueueing it as a single
// reassembled message, matching the contract that ReceiveFunc only ever
// sees fully-reassembled payloads.
func (e *Endpoint) SendTransport(ctx context.Context, pgn uint32, src, dst vtclient.ControlFunction, totalLen uint32, fetch vtclient.TransportFetchFunc, onComplete vtclient.SendCompleteFunc) bool {
	buf := make([]byte, totalLen)
	if totalLen > 0 && !fetch(0, 0, totalLen, buf) {
		return false
	}
	return e.bus.enqueue(pgn, src.Address(), dst.Address(), buf, onComplete)
}

// RegisterReceiver implements vtclient.NetworkManager.
func (e *Endpoint) RegisterReceiver(pgn uint32, handler vtclient.ReceiveFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.receivers[pgn] = handler
	return nil
}
