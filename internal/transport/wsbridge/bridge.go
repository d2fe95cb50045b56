// Package wsbridge implements vtclient.NetworkManager over a
// github.com/gorilla/websocket connection, for telematics-connected
// implements where the physical CAN bus is bridged to a cloud-side
// gateway over the vehicle's cellular modem.
//
// Grounded on vango-go-vango/pkg/server/websocket.go's ReadLoop (a
// for-loop around conn.ReadMessage dispatching by decoded message) and
// session.go's "mu sync.Mutex // Protects conn writes" pattern — gorilla's
// Conn permits at most one concurrent writer, so every outbound write in
// this package goes through the same mutex.
package wsbridge

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fieldkit/isovt/vtclient"
)

// headerLen is pgn(4) + src(1) + dst(1); unlike sshbridge's stream framing
// no length field is needed because each WebSocket message is already a
// discrete, length-delimited unit.
const headerLen = 6

// Bridge is a NetworkManager tunneling frames over a single WebSocket
// connection as binary messages.
type Bridge struct {
	conn *websocket.Conn
	mu   sync.Mutex // protects conn writes

	logger vtclient.Logger

	recvMu    sync.RWMutex
	receivers map[uint32]vtclient.ReceiveFunc

	closed chan struct{}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger installs a logger; the default is vtclient.NoopLogger.
func WithLogger(l vtclient.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// New wraps an already-established WebSocket connection (either side —
// dialed by Dial or accepted by Upgrader) and starts its read loop.
func New(conn *websocket.Conn, opts ...Option) *Bridge {
	b := &Bridge{
		conn:      conn,
		logger:    vtclient.NoopLogger{},
		receivers: make(map[uint32]vtclient.ReceiveFunc),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	go b.readLoop()
	return b
}

// Dial connects to a gateway's WebSocket endpoint at url and wraps the
// resulting connection.
func Dial(url string, opts ...Option) (*Bridge, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

// Upgrader wraps websocket.Upgrader so a gateway-side HTTP handler can
// accept an operator's connection with the same CheckOrigin/buffer-size
// knobs vango-go-vango/pkg/server/server.go exposes.
type Upgrader struct {
	websocket.Upgrader
}

// Accept upgrades an incoming HTTP request to a WebSocket connection and
// wraps it as a Bridge.
func (u *Upgrader) Accept(w http.ResponseWriter, r *http.Request, opts ...Option) (*Bridge, error) {
	conn, err := u.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

func encodeMessage(pgn uint32, src, dst uint8, payload []byte) []byte {
	msg := make([]byte, headerLen+len(payload))
	binary.BigEndian.PutUint32(msg[0:4], pgn)
	msg[4] = src
	msg[5] = dst
	copy(msg[headerLen:], payload)
	return msg
}

func decodeMessage(msg []byte) (pgn uint32, src, dst uint8, payload []byte, ok bool) {
	if len(msg) < headerLen {
		return 0, 0, 0, nil, false
	}
	pgn = binary.BigEndian.Uint32(msg[0:4])
	src = msg[4]
	dst = msg[5]
	payload = msg[headerLen:]
	return pgn, src, dst, payload, true
}

func (b *Bridge) readLoop() {
	defer close(b.closed)
	for {
		_, msg, err := b.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				b.logger.Error("wsbridge: read: %v", err)
			}
			return
		}

		pgn, src, _, payload, ok := decodeMessage(msg)
		if !ok {
			b.logger.Error("wsbridge: short message (%d bytes)", len(msg))
			continue
		}

		b.recvMu.RLock()
		handler := b.receivers[pgn]
		b.recvMu.RUnlock()
		if handler != nil {
			handler(remoteControlFunction(src), payload)
		}
	}
}

func (b *Bridge) write(pgn uint32, src, dst uint8, payload []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.conn.WriteMessage(websocket.BinaryMessage, encodeMessage(pgn, src, dst, payload)); err != nil {
		b.logger.Error("wsbridge: write: %v", err)
		return false
	}
	return true
}

// SendFrame implements vtclient.NetworkManager.
func (b *Bridge) SendFrame(ctx context.Context, pgn uint32, src, dst vtclient.ControlFunction, payload []byte, onComplete vtclient.SendCompleteFunc) bool {
	ok := b.write(pgn, src.Address(), dst.Address(), payload)
	if onComplete != nil {
		go onComplete(ok)
	}
	return ok
}

// SendTransport implements vtclient.NetworkManager by pulling the whole
// payload through fetch up front and writing it as a single message.
func (b *Bridge) SendTransport(ctx context.Context, pgn uint32, src, dst vtclient.ControlFunction, totalLen uint32, fetch vtclient.TransportFetchFunc, onComplete vtclient.SendCompleteFunc) bool {
	buf := make([]byte, totalLen)
	if totalLen > 0 && !fetch(0, 0, totalLen, buf) {
		if onComplete != nil {
			go onComplete(false)
		}
		return false
	}
	ok := b.write(pgn, src.Address(), dst.Address(), buf)
	if onComplete != nil {
		go onComplete(ok)
	}
	return ok
}

// RegisterReceiver implements vtclient.NetworkManager.
func (b *Bridge) RegisterReceiver(pgn uint32, handler vtclient.ReceiveFunc) error {
	b.recvMu.Lock()
	defer b.recvMu.Unlock()
	b.receivers[pgn] = handler
	return nil
}

// Close closes the underlying connection.
func (b *Bridge) Close() error {
	return b.conn.Close()
}

// Done is closed once the read loop has exited, whether because the
// connection closed or because of a read error.
func (b *Bridge) Done() <-chan struct{} { return b.closed }

// remoteControlFunction identifies the far end of a bridged frame by its
// raw address byte only; the bridge has no richer identity for it.
type remoteControlFunction uint8

func (r remoteControlFunction) Address() uint8 { return uint8(r) }
