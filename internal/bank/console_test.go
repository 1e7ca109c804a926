package bank

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/atmnet/internal/credential"
	"github.com/dmitrijs2005/atmnet/internal/cryptox"
)

func run(c *Console, line string) string {
	var buf bytes.Buffer
	c.Exec(line, &buf)
	return buf.String()
}

func TestConsoleCreateUser(t *testing.T) {
	dir := t.TempDir()
	ledger := NewLedger()
	c := NewConsole(ledger, dir)

	out := run(c, "create-user alice 1234 100")
	assert.Equal(t, "Created user alice\n", out)

	acct, ok := ledger.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "1234", acct.PIN)
	assert.Equal(t, int32(100), acct.Balance)

	// The card file must hold the account's secret.
	secret, err := credential.LoadCard(dir, "alice")
	require.NoError(t, err)
	assert.Len(t, secret, cryptox.CardSecretSize)
	assert.Equal(t, acct.CardSecret, secret)
}

func TestConsoleCreateUserDuplicate(t *testing.T) {
	c := NewConsole(NewLedger(), t.TempDir())

	require.Equal(t, "Created user alice\n", run(c, "create-user alice 1234 100"))
	assert.Equal(t, "Error:  user alice already exists\n", run(c, "create-user alice 5678 50"))
}

func TestConsoleCreateUserValidation(t *testing.T) {
	usage := "Usage:  create-user <user-name> <pin> <balance>\n"

	tests := []struct {
		name string
		line string
	}{
		{name: "missing args", line: "create-user alice 1234"},
		{name: "no args", line: "create-user"},
		{name: "bad username", line: "create-user al1ce 1234 100"},
		{name: "empty-ish username", line: "create-user . 1234 100"},
		{name: "short pin", line: "create-user alice 123 100"},
		{name: "long pin", line: "create-user alice 12345 100"},
		{name: "alpha pin", line: "create-user alice abcd 100"},
		{name: "negative balance", line: "create-user alice 1234 -5"},
		{name: "balance overflow", line: "create-user alice 1234 4294967296"},
		{name: "balance not a number", line: "create-user alice 1234 ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConsole(NewLedger(), t.TempDir())
			assert.Equal(t, usage, run(c, tt.line))
		})
	}
}

func TestConsoleCreateUserCardWriteFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	ledger := NewLedger()
	c := NewConsole(ledger, dir)

	out := run(c, "create-user alice 1234 100")
	assert.Equal(t, "Error creating card file for user alice\n", out)

	// No half-created account.
	_, ok := ledger.Lookup("alice")
	assert.False(t, ok)
}

func TestConsoleDeposit(t *testing.T) {
	c := NewConsole(NewLedger(), t.TempDir())
	require.Equal(t, "Created user alice\n", run(c, "create-user alice 1234 100"))

	assert.Equal(t, "$50 added to alice's account\n", run(c, "deposit alice 50"))
	assert.Equal(t, "$150\n", run(c, "balance alice"))

	assert.Equal(t, "No such user\n", run(c, "deposit bob 50"))
	assert.Equal(t, "Usage:  deposit <user-name> <amt>\n", run(c, "deposit alice"))
	assert.Equal(t, "Usage:  deposit <user-name> <amt>\n", run(c, "deposit alice -5"))
	assert.Equal(t, "Usage:  deposit <user-name> <amt>\n", run(c, "deposit al1ce 50"))
}

func TestConsoleDepositOverflow(t *testing.T) {
	ledger := NewLedger()
	c := NewConsole(ledger, t.TempDir())

	require.NoError(t, ledger.Create("rich", "1234", math.MaxInt32, nil))
	assert.Equal(t, "Too rich for this program\n", run(c, "deposit rich 1"))

	acct, _ := ledger.Lookup("rich")
	assert.Equal(t, int32(math.MaxInt32), acct.Balance)
}

func TestConsoleBalance(t *testing.T) {
	c := NewConsole(NewLedger(), t.TempDir())
	require.Equal(t, "Created user alice\n", run(c, "create-user alice 1234 0"))

	assert.Equal(t, "$0\n", run(c, "balance alice"))
	assert.Equal(t, "No such user\n", run(c, "balance bob"))
	assert.Equal(t, "Usage:  balance <user-name>\n", run(c, "balance"))
	assert.Equal(t, "Usage:  balance <user-name>\n", run(c, "balance al1ce"))
}

func TestConsoleMisc(t *testing.T) {
	c := NewConsole(NewLedger(), t.TempDir())

	assert.Equal(t, "", run(c, ""))
	assert.Equal(t, "", run(c, "   "))
	assert.Equal(t, "Invalid command\n", run(c, "rob-bank"))

	// Extra trailing arguments are ignored.
	assert.Equal(t, "Created user alice\n", run(c, "create-user alice 1234 100 extra junk"))
	assert.Equal(t, "$1 added to alice's account\n", run(c, "deposit alice 1 now"))
	assert.Equal(t, "$101\n", run(c, "balance alice please"))
}

func TestConsoleCardFilePermissions(t *testing.T) {
	dir := t.TempDir()
	c := NewConsole(NewLedger(), dir)
	require.Equal(t, "Created user alice\n", run(c, "create-user alice 1234 100"))

	info, err := os.Stat(filepath.Join(dir, "alice.card"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
