package bank

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/atmnet/internal/bank/config"
	"github.com/dmitrijs2005/atmnet/internal/credential"
	"github.com/dmitrijs2005/atmnet/internal/logging"
	"github.com/dmitrijs2005/atmnet/internal/transport"
)

// App wires the Bank together: shared key, ledger, datagram server, and
// the local admin console on stdin.
type App struct {
	config  *config.Config
	logger  logging.Logger
	ep      transport.Endpoint
	server  *Server
	console *Console
}

func NewApp(c *config.Config) (*App, error) {
	l := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(l)

	key, err := credential.LoadKey(c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}

	ep, err := transport.NewUDPEndpoint(c.LocalAddr, c.RouterAddr)
	if err != nil {
		return nil, fmt.Errorf("bind endpoint: %w", err)
	}

	ledger := NewLedger()

	return &App{
		config:  c,
		logger:  logger,
		ep:      ep,
		server:  NewServer(ep, NewHandler(key, ledger, logger), logger),
		console: NewConsole(ledger, c.CardDir),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the datagram loop and drives the admin console until stdin is
// exhausted or the context is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.ep.Close()

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	app.runConsole(ctx, os.Stdin, os.Stdout)

	cancelFunc()
	wg.Wait()
}

func (app *App) runConsole(ctx context.Context, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "BANK: ")
	for {
		if ctx.Err() != nil {
			return
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		app.console.Exec(strings.TrimRight(line, "\r\n"), out)

		if err != nil {
			return
		}
		fmt.Fprint(out, "BANK: ")
	}
}
