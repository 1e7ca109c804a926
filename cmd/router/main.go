package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/logging"
	"github.com/dmitrijs2005/atmnet/internal/transport"
)

// The router owns the well-known port both endpoints send to and forwards
// every datagram to the opposite fixed port. Neither endpoint needs to know
// the other's address, and the relay point is where an adversary would sit,
// which keeps the trust model honest during testing.
func main() {

	listenAddr := flag.String("l", "127.0.0.1:32000", "address and port to listen on")
	atmAddr := flag.String("a", "127.0.0.1:32001", "address and port of the ATM")
	bankAddr := flag.String("b", "127.0.0.1:32002", "address and port of the bank")
	flag.Parse()

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	listen, err := net.ResolveUDPAddr("udp", *listenAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	atm, err := net.ResolveUDPAddr("udp", *atmAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	bank, err := net.ResolveUDPAddr("udp", *bankAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	conn, err := net.ListenUDP("udp", listen)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer conn.Close()

	logger.Info(ctx, "router listening", "addr", conn.LocalAddr().String())

	buf := make([]byte, transport.MaxDatagramSize)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			logger.Error(ctx, "read failed", "error", err.Error())
			return
		}

		var dst *net.UDPAddr
		switch src.Port {
		case atm.Port:
			dst = bank
		case bank.Port:
			dst = atm
		default:
			logger.Warn(ctx, "datagram from unknown port dropped", "src", src.String())
			continue
		}

		if _, err := conn.WriteToUDP(buf[:n], dst); err != nil {
			logger.Error(ctx, "forward failed", "dst", dst.String(), "error", err.Error())
			continue
		}
		logger.Debug(ctx, "datagram forwarded", "src", src.String(), "dst", dst.String(), "len", n)
	}
}
