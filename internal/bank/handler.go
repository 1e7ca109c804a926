package bank

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/atmnet/internal/cryptox"
	"github.com/dmitrijs2005/atmnet/internal/logging"
	"github.com/dmitrijs2005/atmnet/internal/protocol"
)

// Handler validates and dispatches one inbound datagram at a time. It never
// fails on attacker-controlled input: the worst outcome is a dropped
// datagram (nil return) or an explicit failure response.
type Handler struct {
	key    []byte
	ledger *Ledger
	logger logging.Logger
}

func NewHandler(key []byte, ledger *Ledger, logger logging.Logger) *Handler {
	return &Handler{key: key, ledger: ledger, logger: logger.With("module", "handler")}
}

// HandleDatagram opens and decodes one envelope and routes it by kind.
// It returns the sealed response envelope, or nil when the datagram must be
// dropped (tag mismatch, malformed payload, unexpected kind).
func (h *Handler) HandleDatagram(ctx context.Context, data []byte) []byte {
	log := h.logger.With("req_id", uuid.NewString())

	plaintext, err := cryptox.Open(h.key, data, protocol.MaxPlaintextSize)
	if err != nil {
		log.Warn(ctx, "dropping unauthenticated datagram", "len", len(data), "err", err.Error())
		return nil
	}

	msg, err := protocol.Decode(plaintext)
	if err != nil {
		log.Warn(ctx, "dropping malformed message", "err", err.Error())
		return nil
	}

	var resp protocol.Message
	switch req := msg.(type) {
	case protocol.LoginRequest:
		resp = h.login(ctx, log, req)
	case protocol.BalanceRequest:
		resp = h.balanceQuery(ctx, log, req)
	case protocol.WithdrawRequest:
		resp = h.withdraw(ctx, log, req)
	default:
		log.Warn(ctx, "dropping message with unexpected kind", "kind", byte(msg.Kind()))
		return nil
	}

	out, err := protocol.Encode(resp)
	if err != nil {
		log.Error(ctx, "encoding response failed", "err", err.Error())
		return nil
	}

	env, err := cryptox.Seal(h.key, out)
	if err != nil {
		log.Error(ctx, "sealing response failed", "err", err.Error())
		return nil
	}

	return env
}

// login verifies the card-secret proof and PIN. Only a full success
// advances the watermark; unknown users, replays and bad proofs all get the
// same failure response so the wire leaks nothing about which check failed.
func (h *Handler) login(ctx context.Context, log logging.Logger, req protocol.LoginRequest) protocol.Message {
	fail := protocol.LoginResponse{Username: req.Username, Success: false, Seq: req.Seq}

	acct, ok := h.ledger.Lookup(req.Username)
	if !ok {
		log.Info(ctx, "login for unknown user", "user", req.Username)
		return fail
	}

	if req.Seq <= acct.LastSeq {
		log.Warn(ctx, "login replay rejected", "user", req.Username, "seq", req.Seq, "watermark", acct.LastSeq)
		return fail
	}

	expected, err := cryptox.AuthToken(acct.CardSecret, string(req.PIN[:]))
	if err != nil {
		log.Error(ctx, "token derivation failed", "user", req.Username, "err", err.Error())
		return fail
	}

	pinOK := subtle.ConstantTimeCompare([]byte(acct.PIN), req.PIN[:]) == 1
	if !cryptox.VerifyAuthToken(expected, req.AuthToken[:]) || !pinOK {
		log.Info(ctx, "login rejected", "user", req.Username)
		return fail
	}

	acct.LastSeq = req.Seq
	log.Info(ctx, "login accepted", "user", req.Username, "seq", req.Seq)
	return protocol.LoginResponse{Username: req.Username, Success: true, Seq: req.Seq}
}

// balanceQuery returns the current balance. A stale sequence still gets the
// balance but does not advance the watermark: reads mutate nothing, so a
// replayed read is harmless beyond re-disclosing the value.
func (h *Handler) balanceQuery(ctx context.Context, log logging.Logger, req protocol.BalanceRequest) protocol.Message {
	acct, ok := h.ledger.Lookup(req.Username)
	if !ok {
		return protocol.BalanceResponse{Username: req.Username, Balance: 0, Seq: req.Seq}
	}

	if req.Seq > acct.LastSeq {
		acct.LastSeq = req.Seq
	} else {
		log.Warn(ctx, "stale balance query", "user", req.Username, "seq", req.Seq, "watermark", acct.LastSeq)
	}

	return protocol.BalanceResponse{Username: req.Username, Balance: acct.Balance, Seq: req.Seq}
}

// withdraw debits the account when funds allow. A fresh sequence number is
// consumed whether or not the debit succeeds, so a failed withdrawal cannot
// be replayed for another try at the same number.
func (h *Handler) withdraw(ctx context.Context, log logging.Logger, req protocol.WithdrawRequest) protocol.Message {
	acct, ok := h.ledger.Lookup(req.Username)
	if !ok {
		return protocol.WithdrawResponse{Username: req.Username, Success: false, Balance: 0, Seq: req.Seq}
	}

	if req.Seq <= acct.LastSeq {
		log.Warn(ctx, "withdraw replay rejected", "user", req.Username, "seq", req.Seq, "watermark", acct.LastSeq)
		return protocol.WithdrawResponse{Username: req.Username, Success: false, Balance: acct.Balance, Seq: req.Seq}
	}

	acct.LastSeq = req.Seq

	success := false
	if req.Amount >= 0 && req.Amount <= acct.Balance {
		acct.Balance -= req.Amount
		success = true
		log.Info(ctx, "withdrawal dispensed", "user", req.Username, "amount", req.Amount, "balance", acct.Balance)
	} else {
		log.Info(ctx, "withdrawal refused", "user", req.Username, "amount", req.Amount, "balance", acct.Balance)
	}

	return protocol.WithdrawResponse{Username: req.Username, Success: success, Balance: acct.Balance, Seq: req.Seq}
}
