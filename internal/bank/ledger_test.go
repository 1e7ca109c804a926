package bank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/atmnet/internal/common"
)

func TestLedgerCreateAndLookup(t *testing.T) {
	l := NewLedger()

	secret := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, l.Create("alice", "1234", 100, secret))

	acct, ok := l.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", acct.Username)
	assert.Equal(t, "1234", acct.PIN)
	assert.Equal(t, int32(100), acct.Balance)
	assert.Equal(t, secret, acct.CardSecret)
	assert.Equal(t, uint64(0), acct.LastSeq)

	_, ok = l.Lookup("bob")
	assert.False(t, ok)

	// Usernames are case-sensitive.
	_, ok = l.Lookup("Alice")
	assert.False(t, ok)
}

func TestLedgerCreateDuplicate(t *testing.T) {
	l := NewLedger()

	require.NoError(t, l.Create("alice", "1234", 100, nil))

	err := l.Create("alice", "5678", 0, nil)
	require.ErrorIs(t, err, common.ErrUserExists)

	// The original account must be untouched.
	acct, ok := l.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "1234", acct.PIN)
	assert.Equal(t, int32(100), acct.Balance)
}

func TestLedgerDeposit(t *testing.T) {
	tests := []struct {
		name    string
		balance int32
		amount  int32
		want    int32
		wantErr error
	}{
		{name: "simple", balance: 100, amount: 50, want: 150},
		{name: "zero", balance: 100, amount: 0, want: 100},
		{name: "to max", balance: math.MaxInt32 - 1, amount: 1, want: math.MaxInt32},
		{name: "overflow", balance: math.MaxInt32, amount: 1, wantErr: common.ErrBalanceOverflow},
		{name: "overflow by large amount", balance: 2, amount: math.MaxInt32 - 1, wantErr: common.ErrBalanceOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			require.NoError(t, l.Create("alice", "1234", tt.balance, nil))

			got, err := l.Deposit("alice", tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				acct, _ := l.Lookup("alice")
				assert.Equal(t, tt.balance, acct.Balance)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedgerDepositUnknownUser(t *testing.T) {
	l := NewLedger()
	_, err := l.Deposit("ghost", 10)
	require.ErrorIs(t, err, common.ErrNoSuchUser)
}
