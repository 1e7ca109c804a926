package bank

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/logging"
	"github.com/dmitrijs2005/atmnet/internal/transport"
)

// pollInterval bounds each blocking receive so the loop notices
// cancellation promptly.
const pollInterval = 500 * time.Millisecond

// Server drives the datagram loop: one inbound envelope is processed to
// completion before the next is read, so account state never sees
// concurrent mutation.
type Server struct {
	ep      transport.Endpoint
	handler *Handler
	logger  logging.Logger
}

func NewServer(ep transport.Endpoint, handler *Handler, logger logging.Logger) *Server {
	return &Server{ep: ep, handler: handler, logger: logger.With("module", "server")}
}

// Run serves until ctx is cancelled. Send failures are logged and swallowed:
// the responder has no reliable channel to report transport errors, and the
// requester's timeout covers the loss.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "bank serving")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "bank stopping")
			return nil
		default:
		}

		data, err := s.ep.Receive(pollInterval)
		if err != nil {
			if errors.Is(err, common.ErrTimeout) {
				continue
			}
			return err
		}

		resp := s.handler.HandleDatagram(ctx, data)
		if resp == nil {
			continue
		}

		if err := s.ep.Send(resp); err != nil {
			s.logger.Warn(ctx, "response send failed", "err", err.Error())
		}
	}
}
