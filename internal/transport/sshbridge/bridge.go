// Package sshbridge implements vtclient.NetworkManager over the stdio of
// an already-established golang.org/x/crypto/ssh session, for debugging a
// VT client against an ECU reachable only through a jump host.
//
// Adapted from zmodem/ssh.go's SSHSession: the same pipe-acquisition,
// background session.Wait(), and fixed-remote-command shape, generalized
// from "ZModem sz/rz over an interactive shell" to "a length-prefixed
// ISOBUS PDU relay over a dedicated gateway process's stdio."
package sshbridge

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"sync"

	"golang.org/x/crypto/ssh"

	"github.com/fieldkit/isovt/vtclient"
)

// remoteGatewayCommand is started on the far end of the SSH session. It is
// expected to read/write headerLen-prefixed frames on its stdio and relay
// them to the real CAN interface; it ships separately from this module.
const remoteGatewayCommand = "isovt-bridge"

// headerLen is pgn(4) + src(1) + dst(1) + payloadLen(4).
const headerLen = 10

// Bridge is a NetworkManager that multiplexes send_frame/send_transport/
// register_rx over one SSH session's stdio.
type Bridge struct {
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader
	stderr  io.Reader

	logger vtclient.Logger

	writeMu sync.Mutex

	recvMu    sync.RWMutex
	receivers map[uint32]vtclient.ReceiveFunc

	done chan error
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger installs a logger; the default is vtclient.NoopLogger.
func WithLogger(l vtclient.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// New acquires session's stdio pipes, starts remoteGatewayCommand, and
// launches a background read loop dispatching reassembled frames to
// registered receivers as they arrive on their own goroutine — strictly
// after whatever call submitted the triggering outbound frame has already
// returned, matching the asynchrony vtclient.NetworkManager documents.
func New(session *ssh.Session, opts ...Option) (*Bridge, error) {
	stdin, err := session.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, err
	}
	stderr, err := session.StderrPipe()
	if err != nil {
		stdin.Close()
		return nil, err
	}

	b := &Bridge{
		session:   session,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		logger:    vtclient.NoopLogger{},
		receivers: make(map[uint32]vtclient.ReceiveFunc),
		done:      make(chan error, 1),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := session.Start(remoteGatewayCommand); err != nil {
		stdin.Close()
		return nil, err
	}
	go func() { b.done <- session.Wait() }()
	go b.readLoop()

	return b, nil
}

// encodeHeader lays out pgn(4)/src(1)/dst(1)/payloadLen(4) in network byte
// order, the fixed prefix write() sends ahead of every payload.
func encodeHeader(pgn uint32, src, dst uint8, payloadLen uint32) []byte {
	header := make([]byte, headerLen)
	binary.BigEndian.PutUint32(header[0:4], pgn)
	header[4] = src
	header[5] = dst
	binary.BigEndian.PutUint32(header[6:10], payloadLen)
	return header
}

// decodeHeader is encodeHeader's inverse.
func decodeHeader(header []byte) (pgn uint32, src, dst uint8, payloadLen uint32) {
	pgn = binary.BigEndian.Uint32(header[0:4])
	src = header[4]
	dst = header[5]
	payloadLen = binary.BigEndian.Uint32(header[6:10])
	return
}

func (b *Bridge) readLoop() {
	r := bufio.NewReader(b.stdout)
	header := make([]byte, headerLen)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if err != io.EOF {
				b.logger.Error("sshbridge: read header: %v", err)
			}
			return
		}
		pgn, src, _, payloadLen := decodeHeader(header)

		var payload []byte
		if payloadLen > 0 {
			payload = make([]byte, payloadLen)
			if _, err := io.ReadFull(r, payload); err != nil {
				b.logger.Error("sshbridge: read payload: %v", err)
				return
			}
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
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if _, err := b.stdin.Write(encodeHeader(pgn, src, dst, uint32(len(payload)))); err != nil {
		b.logger.Error("sshbridge: write header: %v", err)
		return false
	}
	if len(payload) > 0 {
		if _, err := b.stdin.Write(payload); err != nil {
			b.logger.Error("sshbridge: write payload: %v", err)
			return false
		}
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
// payload through fetch up front and writing it as a single framed
// message, matching the contract that ReceiveFunc only ever sees
// fully-reassembled payloads.
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

// Stderr exposes the remote gateway's stderr for diagnostics, mirroring
// zmodem/ssh.go's SSHSession.Stderr.
func (b *Bridge) Stderr() io.Reader { return b.stderr }

// Wait blocks until the remote gateway command exits.
func (b *Bridge) Wait() error { return <-b.done }

// Close closes the session's stdin and the session itself, mirroring
// zmodem/ssh.go's SSHSession.Close.
func (b *Bridge) Close() error {
	var err error
	if cerr := b.stdin.Close(); cerr != nil {
		err = cerr
	}
	if cerr := b.session.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// remoteControlFunction identifies the far end of a bridged frame by its
// raw address byte only; the bridge has no richer identity for it.
type remoteControlFunction uint8

func (r remoteControlFunction) Address() uint8 { return uint8(r) }
