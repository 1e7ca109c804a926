package atm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/credential"
	"github.com/dmitrijs2005/atmnet/internal/protocol"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// CLI is the interactive command surface of the ATM. Its prompt and output
// strings are a compatibility contract.
type CLI struct {
	session *Session
	cardDir string
	in      io.Reader
	reader  *bufio.Reader
	out     io.Writer
}

func NewCLI(session *Session, cardDir string, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		session: session,
		cardDir: cardDir,
		in:      in,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run reads commands until EOF, printing the prompt before each one. The
// prompt reflects the session state: "ATM: " when logged out,
// "ATM (<user>):  " when logged in.
func (c *CLI) Run() {
	fmt.Fprint(c.out, "ATM: ")
	for {
		line, err := c.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			return
		}

		c.Exec(strings.TrimRight(line, "\r\n"))

		if err != nil {
			return
		}

		if c.session.LoggedIn() {
			fmt.Fprintf(c.out, "ATM (%s):  ", c.session.CurrentUser())
		} else {
			fmt.Fprint(c.out, "ATM: ")
		}
	}
}

// Exec processes a single command line. A blank line is a no-op.
func (c *CLI) Exec(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "begin-session":
		c.beginSession(args)
	case "withdraw":
		c.withdraw(args)
	case "balance":
		c.balance(args)
	case "end-session":
		c.endSession()
	default:
		fmt.Fprintln(c.out, "Invalid command")
	}
}

func (c *CLI) beginSession(args []string) {
	if c.session.LoggedIn() {
		fmt.Fprintln(c.out, "A user is already logged in")
		return
	}

	if len(args) != 1 || !protocol.ValidUsername(args[0]) {
		fmt.Fprintln(c.out, "Usage: begin-session <user-name>")
		return
	}
	user := args[0]

	card, err := credential.LoadCard(c.cardDir, user)
	if err != nil {
		fmt.Fprintf(c.out, "Unable to access %s's card\n", user)
		return
	}
	defer common.WipeByteArray(card)

	pin, err := c.readPIN()
	if err != nil || !protocol.ValidPIN(pin) {
		fmt.Fprintln(c.out, "Not authorized")
		return
	}

	if err := c.session.Login(user, pin, card); err != nil {
		fmt.Fprintln(c.out, "Not authorized")
		return
	}

	fmt.Fprintln(c.out, "Authorized")
}

func (c *CLI) withdraw(args []string) {
	if !c.session.LoggedIn() {
		fmt.Fprintln(c.out, "No user logged in")
		return
	}

	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: withdraw <amt>")
		return
	}

	amount, err := protocol.ParseAmount(args[0])
	if err != nil {
		fmt.Fprintln(c.out, "Usage: withdraw <amt>")
		return
	}

	dispensed, err := c.session.Withdraw(amount)
	if err != nil {
		// Timeout or an invalid response: no user-visible output at all.
		return
	}

	if dispensed {
		fmt.Fprintf(c.out, "$%d dispensed\n", amount)
	} else {
		fmt.Fprintln(c.out, "Insufficient funds")
	}
}

func (c *CLI) balance(args []string) {
	if !c.session.LoggedIn() {
		fmt.Fprintln(c.out, "No user logged in")
		return
	}

	if len(args) != 0 {
		fmt.Fprintln(c.out, "Usage: balance")
		return
	}

	balance, err := c.session.Balance()
	if err != nil {
		return
	}

	fmt.Fprintf(c.out, "$%d\n", balance)
}

func (c *CLI) endSession() {
	if !c.session.LoggedIn() {
		fmt.Fprintln(c.out, "No user logged in")
		return
	}

	c.session.Logout()
	fmt.Fprintln(c.out, "User logged out")
}

// readPIN prompts for the PIN. On a real terminal the digits are read
// without echo; with redirected input a plain line is read so scripted
// sessions work.
func (c *CLI) readPIN() (string, error) {
	fmt.Fprint(c.out, "PIN? ")

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		defer common.WipeByteArray(b)
		return string(b), nil
	}

	line, err := c.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
