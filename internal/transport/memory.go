package transport

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

// MemoryEndpoint is an in-process Endpoint backed by channels. Pipe returns
// a connected pair; whatever one side sends the other receives. It exists so
// a real ATM session and a real Bank instance can be exercised end to end
// without sockets.
type MemoryEndpoint struct {
	in     <-chan []byte
	out    chan<- []byte
	closed chan struct{}
}

var _ Endpoint = (*MemoryEndpoint)(nil)

// Pipe returns two connected in-memory endpoints.
func Pipe() (*MemoryEndpoint, *MemoryEndpoint) {
	ab := make(chan []byte, 64)
	ba := make(chan []byte, 64)
	a := &MemoryEndpoint{in: ba, out: ab, closed: make(chan struct{})}
	b := &MemoryEndpoint{in: ab, out: ba, closed: make(chan struct{})}
	return a, b
}

func (m *MemoryEndpoint) Send(data []byte) error {
	cp := append([]byte(nil), data...)
	select {
	case <-m.closed:
		return errors.New("send on closed endpoint")
	case m.out <- cp:
		return nil
	default:
		// A full buffer behaves like any other datagram loss.
		return nil
	}
}

func (m *MemoryEndpoint) Receive(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-m.closed:
		return nil, errors.New("receive on closed endpoint")
	case data := <-m.in:
		return data, nil
	case <-timer.C:
		return nil, common.ErrTimeout
	}
}

func (m *MemoryEndpoint) Close() error {
	select {
	case <-m.closed:
	default:
		close(m.closed)
	}
	return nil
}
