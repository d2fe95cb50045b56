// Package vtclient implements the core of an ISOBUS (ISO 11783-6) Virtual
// Terminal client: connection negotiation, object pool upload, the
// outbound command / inbound event codec, and the dispatch layer that
// delivers soft-key, button, pointing, and input-selection events back to
// the application.
//
// The package owns no network transport of its own. Callers supply a
// NetworkManager (see network.go) that knows how to put frames on the bus;
// everything here is pure protocol state and wire encoding.
package vtclient
