// Package protocol defines the plaintext wire messages exchanged between the
// ATM and the Bank and their fixed-layout binary encoding.
//
// Every message starts with a one-byte kind tag followed by a zero-padded
// 251-byte username field; variant-specific fields and the 8-byte big-endian
// sequence number follow at fixed offsets. There are no length-prefixed
// fields: sizes are derived solely from the kind tag.
package protocol

// Kind identifies a message variant on the wire.
type Kind byte

const (
	KindLoginRequest     Kind = 0x01
	KindLoginResponse    Kind = 0x02
	KindBalanceRequest   Kind = 0x03
	KindBalanceResponse  Kind = 0x04
	KindWithdrawRequest  Kind = 0x05
	KindWithdrawResponse Kind = 0x06
)

const (
	// UsernameSize is the fixed width of the username field, the maximum
	// username length (250) plus a terminating zero byte.
	UsernameSize = 251

	// AuthTokenSize is the width of the login proof (HMAC-SHA256).
	AuthTokenSize = 32

	// PINSize is the width of the PIN field: exactly 4 digits, not
	// zero-terminated.
	PINSize = 4

	// MaxPlaintextSize bounds every encoded message.
	MaxPlaintextSize = 512
)

const (
	headerSize = 1 + UsernameSize
	seqSize    = 8
	amountSize = 4
)

// Encoded sizes per variant. Decoding accepts payloads at least this large
// for the declared kind and ignores any trailing bytes.
const (
	LoginRequestSize     = headerSize + AuthTokenSize + PINSize + seqSize
	LoginResponseSize    = headerSize + 1 + seqSize
	BalanceRequestSize   = headerSize + seqSize
	BalanceResponseSize  = headerSize + amountSize + seqSize
	WithdrawRequestSize  = headerSize + amountSize + seqSize
	WithdrawResponseSize = headerSize + 1 + amountSize + seqSize
)

// Message is one of the six wire variants.
type Message interface {
	Kind() Kind
}

// LoginRequest authenticates a user with the card-secret proof and PIN.
type LoginRequest struct {
	Username  string
	AuthToken [AuthTokenSize]byte
	PIN       [PINSize]byte
	Seq       uint64
}

// LoginResponse reports whether the login was accepted. Seq echoes the
// request's sequence number verbatim.
type LoginResponse struct {
	Username string
	Success  bool
	Seq      uint64
}

// BalanceRequest queries the current balance.
type BalanceRequest struct {
	Username string
	Seq      uint64
}

// BalanceResponse carries the current balance.
type BalanceResponse struct {
	Username string
	Balance  int32
	Seq      uint64
}

// WithdrawRequest asks the bank to debit Amount.
type WithdrawRequest struct {
	Username string
	Amount   int32
	Seq      uint64
}

// WithdrawResponse reports the outcome of a withdrawal and the resulting
// balance (unchanged when Success is false).
type WithdrawResponse struct {
	Username string
	Success  bool
	Balance  int32
	Seq      uint64
}

func (LoginRequest) Kind() Kind     { return KindLoginRequest }
func (LoginResponse) Kind() Kind    { return KindLoginResponse }
func (BalanceRequest) Kind() Kind   { return KindBalanceRequest }
func (BalanceResponse) Kind() Kind  { return KindBalanceResponse }
func (WithdrawRequest) Kind() Kind  { return KindWithdrawRequest }
func (WithdrawResponse) Kind() Kind { return KindWithdrawResponse }
