package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

// UDPEndpoint sends and receives datagrams over a bound UDP socket. Both the
// ATM and the Bank bind a fixed local port and address all traffic to the
// relay.
type UDPEndpoint struct {
	conn *net.UDPConn
	peer *net.UDPAddr
}

var _ Endpoint = (*UDPEndpoint)(nil)

// NewUDPEndpoint binds local and directs all outbound datagrams to remote.
func NewUDPEndpoint(local, remote string) (*UDPEndpoint, error) {
	laddr, err := net.ResolveUDPAddr("udp", local)
	if err != nil {
		return nil, fmt.Errorf("resolve local addr %s: %w", local, err)
	}
	raddr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, fmt.Errorf("resolve remote addr %s: %w", remote, err)
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", local, err)
	}

	return &UDPEndpoint{conn: conn, peer: raddr}, nil
}

func (u *UDPEndpoint) Send(data []byte) error {
	n, err := u.conn.WriteToUDP(data, u.peer)
	if err != nil {
		return fmt.Errorf("udp send: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("udp send: wrote %d of %d bytes", n, len(data))
	}
	return nil
}

func (u *UDPEndpoint) Receive(timeout time.Duration) ([]byte, error) {
	if err := u.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("udp receive: %w", err)
	}

	buf := make([]byte, MaxDatagramSize)
	n, _, err := u.conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, common.ErrTimeout
		}
		return nil, fmt.Errorf("udp receive: %w", err)
	}

	return buf[:n], nil
}

func (u *UDPEndpoint) Close() error {
	return u.conn.Close()
}

// LocalAddr exposes the bound address, mainly for logging.
func (u *UDPEndpoint) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}
