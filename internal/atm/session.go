// Package atm implements the requester side of the protocol: the session
// state machine, the interactive command surface, and the wiring that
// connects them to a datagram endpoint.
package atm

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/cryptox"
	"github.com/dmitrijs2005/atmnet/internal/protocol"
	"github.com/dmitrijs2005/atmnet/internal/transport"
)

// Session is the ATM's protocol state: at most one logged-in user and the
// instance-wide outgoing sequence counter. The counter starts at 1 (every
// account's watermark starts at 0, so the first request is always fresh)
// and only ever moves forward, surviving logins and logouts alike.
type Session struct {
	key     []byte
	ep      transport.Endpoint
	timeout time.Duration

	seq      uint64
	user     string
	loggedIn bool
}

func NewSession(key []byte, ep transport.Endpoint, timeout time.Duration) *Session {
	return &Session{key: key, ep: ep, timeout: timeout, seq: 1}
}

func (s *Session) LoggedIn() bool {
	return s.loggedIn
}

// CurrentUser returns the logged-in username; valid only while LoggedIn.
func (s *Session) CurrentUser() string {
	return s.user
}

// Login runs the authentication exchange for user with the given card
// secret and PIN. Any failure — send error, timeout, unauthenticated or
// mismatched response, explicit rejection — leaves the session logged out
// and returns an error wrapping common.ErrAuthFailed.
func (s *Session) Login(user, pin string, cardSecret []byte) error {
	token, err := cryptox.AuthToken(cardSecret, pin)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}

	req := protocol.LoginRequest{Username: user, Seq: s.seq}
	copy(req.AuthToken[:], token)
	copy(req.PIN[:], pin)

	resp, err := s.exchange(req)
	if err != nil {
		return err
	}

	lr, ok := resp.(protocol.LoginResponse)
	if !ok {
		return fmt.Errorf("%w: unexpected response kind", common.ErrAuthFailed)
	}
	if lr.Seq != s.seq-1 {
		return fmt.Errorf("%w: sequence mismatch", common.ErrAuthFailed)
	}
	if !lr.Success {
		return fmt.Errorf("%w: rejected by bank", common.ErrAuthFailed)
	}

	s.loggedIn = true
	s.user = user
	return nil
}

// Withdraw asks the bank to debit amount from the current user's account.
// It reports whether the bank dispensed the money. A timeout or any
// validation failure of the response returns an error; the caller shows
// nothing to the user in that case.
func (s *Session) Withdraw(amount int32) (bool, error) {
	req := protocol.WithdrawRequest{Username: s.user, Amount: amount, Seq: s.seq}

	resp, err := s.exchange(req)
	if err != nil {
		return false, err
	}

	wr, ok := resp.(protocol.WithdrawResponse)
	if !ok {
		return false, fmt.Errorf("%w: unexpected response kind", common.ErrAuthFailed)
	}
	if wr.Seq != s.seq-1 {
		return false, fmt.Errorf("%w: sequence mismatch", common.ErrAuthFailed)
	}

	return wr.Success, nil
}

// Balance queries the current user's balance. Response validation failures
// surface as errors and produce no user-visible output.
func (s *Session) Balance() (int32, error) {
	req := protocol.BalanceRequest{Username: s.user, Seq: s.seq}

	resp, err := s.exchange(req)
	if err != nil {
		return 0, err
	}

	br, ok := resp.(protocol.BalanceResponse)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected response kind", common.ErrAuthFailed)
	}
	if br.Seq != s.seq-1 {
		return 0, fmt.Errorf("%w: sequence mismatch", common.ErrAuthFailed)
	}

	return br.Balance, nil
}

// Logout clears the session locally. No network exchange occurs.
func (s *Session) Logout() {
	s.loggedIn = false
	s.user = ""
}

// exchange encodes, seals and sends one request, then waits for a reply and
// unseals it. The sequence counter advances exactly once per successful
// transmission, whether or not a reply ever arrives.
func (s *Session) exchange(req protocol.Message) (protocol.Message, error) {
	plaintext, err := protocol.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}

	env, err := cryptox.Seal(s.key, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}

	if err := s.ep.Send(env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}
	s.seq++

	data, err := s.ep.Receive(s.timeout)
	if err != nil {
		if errors.Is(err, common.ErrTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}

	plaintext, err = cryptox.Open(s.key, data, protocol.MaxPlaintextSize)
	if err != nil {
		return nil, err
	}

	resp, err := protocol.Decode(plaintext)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
