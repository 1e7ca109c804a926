package atm

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/atm/config"
	"github.com/dmitrijs2005/atmnet/internal/credential"
	"github.com/dmitrijs2005/atmnet/internal/transport"
)

// App ties the ATM pieces together: shared key, datagram endpoint, session,
// and the interactive CLI on stdin/stdout.
type App struct {
	config *config.Config
	ep     transport.Endpoint
	cli    *CLI
}

func NewApp(c *config.Config) (*App, error) {
	key, err := credential.LoadKey(c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}

	ep, err := transport.NewUDPEndpoint(c.LocalAddr, c.RouterAddr)
	if err != nil {
		return nil, fmt.Errorf("bind endpoint: %w", err)
	}

	session := NewSession(key, ep, c.ReceiveTimeout)
	cli := NewCLI(session, c.CardDir, os.Stdin, os.Stdout)

	return &App{config: c, ep: ep, cli: cli}, nil
}

// Run drives the interactive loop until stdin is exhausted.
func (a *App) Run() {
	defer a.ep.Close()
	a.cli.Run()
}
