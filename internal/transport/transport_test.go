package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

func resolve(addr string) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", addr)
}

func TestPipe_RoundTrip(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Send([]byte("ping")))
	got, err := b.Receive(time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), got)

	require.NoError(t, b.Send([]byte("pong")))
	got, err = a.Receive(time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), got)
}

func TestPipe_ReceiveTimeout(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	_, err := a.Receive(10 * time.Millisecond)
	require.ErrorIs(t, err, common.ErrTimeout)
}

func TestPipe_SendCopiesData(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	data := []byte("original")
	require.NoError(t, a.Send(data))
	data[0] = 'X'

	got, err := b.Receive(time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestUDPEndpoint_RoundTrip(t *testing.T) {
	// Bind two ephemeral loopback sockets pointed at each other.
	a, err := NewUDPEndpoint("127.0.0.1:0", "127.0.0.1:1")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewUDPEndpoint("127.0.0.1:0", a.LocalAddr().String())
	require.NoError(t, err)
	defer b.Close()

	a.peer, err = resolve(b.LocalAddr().String())
	require.NoError(t, err)

	require.NoError(t, a.Send([]byte("hello")))
	got, err := b.Receive(time.Second)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestUDPEndpoint_ReceiveTimeout(t *testing.T) {
	a, err := NewUDPEndpoint("127.0.0.1:0", "127.0.0.1:1")
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Receive(20 * time.Millisecond)
	require.ErrorIs(t, err, common.ErrTimeout)
}
