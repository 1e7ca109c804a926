// Package bank implements the responder side of the protocol: the
// authoritative account ledger, the encrypted-request handler with its
// replay guard, the datagram serve loop, and the local admin console.
package bank

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

// Account is one customer record. LastSeq is the replay-guard watermark:
// the highest sequence number accepted for this account, starting at 0.
// The card secret is generated once at account creation and never leaves
// the bank except through the card file.
type Account struct {
	Username   string
	PIN        string
	Balance    int32
	CardSecret []byte
	LastSeq    uint64
}

// Ledger is the in-memory account table. It lives for the process lifetime;
// accounts are created once and never deleted.
type Ledger struct {
	accounts map[string]*Account
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]*Account)}
}

// Create adds a new account. The username must be unique.
func (l *Ledger) Create(user, pin string, balance int32, cardSecret []byte) error {
	if _, exists := l.accounts[user]; exists {
		return fmt.Errorf("%w: %s", common.ErrUserExists, user)
	}

	l.accounts[user] = &Account{
		Username:   user,
		PIN:        pin,
		Balance:    balance,
		CardSecret: cardSecret,
	}
	return nil
}

// Lookup finds an account by exact (case-sensitive) username.
func (l *Ledger) Lookup(user string) (*Account, bool) {
	acct, ok := l.accounts[user]
	return acct, ok
}

// Deposit credits amount to an account, rejecting additions that would
// overflow the signed 32-bit balance. Returns the new balance.
func (l *Ledger) Deposit(user string, amount int32) (int32, error) {
	acct, ok := l.accounts[user]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrNoSuchUser, user)
	}

	if amount > 0 && acct.Balance > math.MaxInt32-amount {
		return acct.Balance, fmt.Errorf("%w: %s", common.ErrBalanceOverflow, user)
	}

	acct.Balance += amount
	return acct.Balance, nil
}
