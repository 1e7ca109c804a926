package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

// Encode serializes m into its fixed wire layout. The username must be
// between 1 and 250 bytes; longer or empty names cannot be represented in
// the zero-padded field and are rejected.
func Encode(m Message) ([]byte, error) {
	switch v := m.(type) {
	case LoginRequest:
		b, err := newBuf(KindLoginRequest, v.Username, LoginRequestSize)
		if err != nil {
			return nil, err
		}
		copy(b[headerSize:], v.AuthToken[:])
		copy(b[headerSize+AuthTokenSize:], v.PIN[:])
		binary.BigEndian.PutUint64(b[headerSize+AuthTokenSize+PINSize:], v.Seq)
		return b, nil

	case LoginResponse:
		b, err := newBuf(KindLoginResponse, v.Username, LoginResponseSize)
		if err != nil {
			return nil, err
		}
		b[headerSize] = boolByte(v.Success)
		binary.BigEndian.PutUint64(b[headerSize+1:], v.Seq)
		return b, nil

	case BalanceRequest:
		b, err := newBuf(KindBalanceRequest, v.Username, BalanceRequestSize)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint64(b[headerSize:], v.Seq)
		return b, nil

	case BalanceResponse:
		b, err := newBuf(KindBalanceResponse, v.Username, BalanceResponseSize)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(b[headerSize:], uint32(v.Balance))
		binary.BigEndian.PutUint64(b[headerSize+amountSize:], v.Seq)
		return b, nil

	case WithdrawRequest:
		b, err := newBuf(KindWithdrawRequest, v.Username, WithdrawRequestSize)
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint32(b[headerSize:], uint32(v.Amount))
		binary.BigEndian.PutUint64(b[headerSize+amountSize:], v.Seq)
		return b, nil

	case WithdrawResponse:
		b, err := newBuf(KindWithdrawResponse, v.Username, WithdrawResponseSize)
		if err != nil {
			return nil, err
		}
		b[headerSize] = boolByte(v.Success)
		binary.BigEndian.PutUint32(b[headerSize+1:], uint32(v.Balance))
		binary.BigEndian.PutUint64(b[headerSize+1+amountSize:], v.Seq)
		return b, nil

	default:
		return nil, fmt.Errorf("%w: unsupported message type %T", common.ErrBadFormat, m)
	}
}

// Decode parses a plaintext payload into its message variant, dispatching on
// the leading kind byte. Payloads shorter than the declared variant's size
// and unknown kinds yield an error wrapping common.ErrBadFormat. Trailing
// bytes beyond the variant's size are ignored; field sizes are never taken
// from the payload itself.
func Decode(b []byte) (Message, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: payload of %d bytes has no header", common.ErrBadFormat, len(b))
	}

	kind := Kind(b[0])
	user := decodeUsername(b[1:headerSize])

	switch kind {
	case KindLoginRequest:
		if len(b) < LoginRequestSize {
			return nil, undersized(kind, len(b))
		}
		m := LoginRequest{Username: user}
		copy(m.AuthToken[:], b[headerSize:])
		copy(m.PIN[:], b[headerSize+AuthTokenSize:])
		m.Seq = binary.BigEndian.Uint64(b[headerSize+AuthTokenSize+PINSize:])
		return m, nil

	case KindLoginResponse:
		if len(b) < LoginResponseSize {
			return nil, undersized(kind, len(b))
		}
		return LoginResponse{
			Username: user,
			Success:  b[headerSize] == 1,
			Seq:      binary.BigEndian.Uint64(b[headerSize+1:]),
		}, nil

	case KindBalanceRequest:
		if len(b) < BalanceRequestSize {
			return nil, undersized(kind, len(b))
		}
		return BalanceRequest{
			Username: user,
			Seq:      binary.BigEndian.Uint64(b[headerSize:]),
		}, nil

	case KindBalanceResponse:
		if len(b) < BalanceResponseSize {
			return nil, undersized(kind, len(b))
		}
		return BalanceResponse{
			Username: user,
			Balance:  int32(binary.BigEndian.Uint32(b[headerSize:])),
			Seq:      binary.BigEndian.Uint64(b[headerSize+amountSize:]),
		}, nil

	case KindWithdrawRequest:
		if len(b) < WithdrawRequestSize {
			return nil, undersized(kind, len(b))
		}
		return WithdrawRequest{
			Username: user,
			Amount:   int32(binary.BigEndian.Uint32(b[headerSize:])),
			Seq:      binary.BigEndian.Uint64(b[headerSize+amountSize:]),
		}, nil

	case KindWithdrawResponse:
		if len(b) < WithdrawResponseSize {
			return nil, undersized(kind, len(b))
		}
		return WithdrawResponse{
			Username: user,
			Success:  b[headerSize] == 1,
			Balance:  int32(binary.BigEndian.Uint32(b[headerSize+1:])),
			Seq:      binary.BigEndian.Uint64(b[headerSize+1+amountSize:]),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown message kind 0x%02x", common.ErrBadFormat, byte(kind))
	}
}

func newBuf(kind Kind, username string, size int) ([]byte, error) {
	if len(username) == 0 || len(username) > UsernameSize-1 {
		return nil, fmt.Errorf("%w: username length %d", common.ErrBadFormat, len(username))
	}
	b := make([]byte, size)
	b[0] = byte(kind)
	copy(b[1:headerSize], username)
	return b, nil
}

// decodeUsername treats the first zero byte as the logical end of the string
// and drops the trailing padding.
func decodeUsername(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}

func undersized(kind Kind, n int) error {
	return fmt.Errorf("%w: %d bytes is undersized for kind 0x%02x", common.ErrBadFormat, n, byte(kind))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
