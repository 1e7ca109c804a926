// Package transport abstracts the unreliable datagram channel between an
// endpoint and the relay that forwards packets to its peer. The relay is an
// external collaborator: endpoints only ever send to and receive from it.
package transport

import "time"

// MaxDatagramSize bounds a single envelope on the wire: IV, block-padded
// ciphertext of a maximum-size plaintext, and the tag.
const MaxDatagramSize = 16 + 512 + 16 + 32

// Endpoint is one side of the datagram exchange.
//
// Receive blocks for at most the given timeout and returns
// common.ErrTimeout when nothing arrives in time. Datagrams may be lost,
// duplicated or tampered with in flight; callers own all validation.
type Endpoint interface {
	Send(data []byte) error
	Receive(timeout time.Duration) ([]byte, error)
	Close() error
}
