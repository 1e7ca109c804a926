package bank

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/atmnet/internal/credential"
	"github.com/dmitrijs2005/atmnet/internal/cryptox"
	"github.com/dmitrijs2005/atmnet/internal/protocol"
)

// Console processes the bank teller's local commands. These touch plain
// account fields only and never cross the network; their output strings are
// part of the compatibility contract.
type Console struct {
	ledger  *Ledger
	cardDir string
}

func NewConsole(ledger *Ledger, cardDir string) *Console {
	return &Console{ledger: ledger, cardDir: cardDir}
}

// Exec runs a single command line and writes its output to w. A blank line
// is a no-op. Extra trailing arguments are ignored.
func (c *Console) Exec(line string, w io.Writer) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "create-user":
		c.createUser(args, w)
	case "deposit":
		c.deposit(args, w)
	case "balance":
		c.balance(args, w)
	default:
		fmt.Fprintln(w, "Invalid command")
	}
}

func (c *Console) createUser(args []string, w io.Writer) {
	if len(args) < 3 || !protocol.ValidUsername(args[0]) || !protocol.ValidPIN(args[1]) {
		fmt.Fprintln(w, "Usage:  create-user <user-name> <pin> <balance>")
		return
	}
	user, pin := args[0], args[1]

	balance, err := protocol.ParseAmount(args[2])
	if err != nil {
		fmt.Fprintln(w, "Usage:  create-user <user-name> <pin> <balance>")
		return
	}

	if _, exists := c.ledger.Lookup(user); exists {
		fmt.Fprintf(w, "Error:  user %s already exists\n", user)
		return
	}

	secret, err := cryptox.RandomBytes(cryptox.CardSecretSize)
	if err != nil {
		fmt.Fprintf(w, "Error creating card file for user %s\n", user)
		return
	}

	// Card file first: if it fails, no account state has changed yet.
	if err := credential.WriteCard(c.cardDir, user, secret); err != nil {
		fmt.Fprintf(w, "Error creating card file for user %s\n", user)
		return
	}

	if err := c.ledger.Create(user, pin, balance, secret); err != nil {
		fmt.Fprintf(w, "Error creating card file for user %s\n", user)
		return
	}

	fmt.Fprintf(w, "Created user %s\n", user)
}

func (c *Console) deposit(args []string, w io.Writer) {
	if len(args) < 2 || !protocol.ValidUsername(args[0]) {
		fmt.Fprintln(w, "Usage:  deposit <user-name> <amt>")
		return
	}
	user := args[0]

	amount, err := protocol.ParseAmount(args[1])
	if err != nil {
		fmt.Fprintln(w, "Usage:  deposit <user-name> <amt>")
		return
	}

	if _, exists := c.ledger.Lookup(user); !exists {
		fmt.Fprintln(w, "No such user")
		return
	}

	if _, err := c.ledger.Deposit(user, amount); err != nil {
		fmt.Fprintln(w, "Too rich for this program")
		return
	}

	fmt.Fprintf(w, "$%d added to %s's account\n", amount, user)
}

func (c *Console) balance(args []string, w io.Writer) {
	if len(args) < 1 || !protocol.ValidUsername(args[0]) {
		fmt.Fprintln(w, "Usage:  balance <user-name>")
		return
	}

	acct, exists := c.ledger.Lookup(args[0])
	if !exists {
		fmt.Fprintln(w, "No such user")
		return
	}

	fmt.Fprintf(w, "$%d\n", acct.Balance)
}
