package vtclient

import "context"

// ControlFunction is an opaque, externally-owned identity on the bus
// (address-claimed). The client never constructs one; it only holds
// references supplied by the embedder.
type ControlFunction interface {
	// Address returns the control function's current claimed address, for
	// logging and VT-status-snapshot bookkeeping.
	Address() uint8
}

// SendCompleteFunc is invoked by the network manager once a submitted send
// resolves, successfully or not. It must be tolerated as a no-op after
// terminate().
type SendCompleteFunc func(success bool)

// TransportFetchFunc is the byte-offset fetch-callback contract the network
// manager's transport-protocol abstraction uses to pull payload bytes on
// demand for messages longer than 8 bytes. invocationCount starts at 0;
// byteOffset is the offset within the logical payload (including the
// multiplexor byte prepended by the upload engine, where applicable).
type TransportFetchFunc func(invocationCount int, byteOffset, bytesRequested uint32, out []byte) bool

// ReceiveFunc is registered per PGN; it is handed fully-reassembled
// payloads (single-frame or transport-protocol-reassembled) from the
// control function that sent them.
type ReceiveFunc func(src ControlFunction, payload []byte)

// NetworkManager is the external collaborator the core consumes:
// single-frame send with completion callback, a multi-frame transport
// protocol driven by a per-byte fetch callback, and per-PGN receive
// registration. The core neither
// implements nor depends on any particular CAN stack; internal/transport
// provides two concrete implementations (sshbridge, wsbridge) plus
// internal/looptest's in-memory fake for tests.
type NetworkManager interface {
	// SendFrame submits a single <=8-byte payload. Returns false if the
	// manager could not accept the send for submission (e.g. no address
	// claimed, outbound queue full); onComplete, if non-nil, fires
	// asynchronously once the bus layer resolves it.
	SendFrame(ctx context.Context, pgn uint32, src, dst ControlFunction, payload []byte, onComplete SendCompleteFunc) bool

	// SendTransport submits a payload whose total length exceeds 8 bytes,
	// sourced on demand via fetch. Returns false on immediate rejection.
	SendTransport(ctx context.Context, pgn uint32, src, dst ControlFunction, totalLen uint32, fetch TransportFetchFunc, onComplete SendCompleteFunc) bool

	// RegisterReceiver installs the handler invoked for every reassembled
	// inbound payload on pgn. Replaces any previously registered handler
	// for that pgn.
	RegisterReceiver(pgn uint32, handler ReceiveFunc) error
}

// PGNECUToVT and PGNVTToECU are the parameter groups VT messages flow over.
// Named here rather than hardcoded at each call site, matching ISO
// 11783-6's own two-PGN split for the command/response and status traffic.
const (
	PGNECUToVT uint32 = 0xE600
	PGNVTToECU uint32 = 0xE700
)
