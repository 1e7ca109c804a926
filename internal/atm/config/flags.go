package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/atmnet/internal/flagx"
)

// KnownFlags lists every flag the ATM parses, exported so the main package
// can separate flags from the positional init-file argument.
var KnownFlags = []string{"-r", "-l", "-k", "-d", "-t", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   router address and port
//	-l string   local bind address and port
//	-k string   path to the .atm init file (the bare argument works too)
//	-d string   directory with <user>.card files
//	-t int      receive timeout, seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-l", "-k", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RouterAddr, "r", cfg.RouterAddr, "router address and port")
	fs.StringVar(&cfg.LocalAddr, "l", cfg.LocalAddr, "local bind address and port")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "path to the ATM init file")
	fs.StringVar(&cfg.CardDir, "d", cfg.CardDir, "directory with card files")
	receiveTimeout := fs.Int("t", int(cfg.ReceiveTimeout.Seconds()), "receive timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReceiveTimeout = time.Duration(*receiveTimeout) * time.Second
}
