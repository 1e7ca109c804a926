package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/flagx"
)

// KnownFlags lists every flag the Bank parses, exported so the main package
// can separate flags from the positional init-file argument.
var KnownFlags = []string{"-r", "-l", "-k", "-d", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   router address and port
//	-l string   local bind address and port
//	-k string   path to the .bank init file (the bare argument works too)
//	-d string   directory where card files are written
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-l", "-k", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RouterAddr, "r", cfg.RouterAddr, "router address and port")
	fs.StringVar(&cfg.LocalAddr, "l", cfg.LocalAddr, "local bind address and port")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "path to the bank init file")
	fs.StringVar(&cfg.CardDir, "d", cfg.CardDir, "directory for card files")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
