package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/atm"
	"github.com/dmitrijs2005/atmnet/internal/atm/config"
	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/flagx"
)

func main() {

	cfg := config.LoadConfig()

	// The bare argument form "atm <init-file>" is the common invocation;
	// -k overrides it when both are given.
	if initFile := flagx.Positional(os.Args[1:], config.KnownFlags); initFile != "" && cfg.KeyFile == "" {
		cfg.KeyFile = initFile
	}

	app, err := atm.NewApp(cfg)

	if err != nil {
		if errors.Is(err, common.ErrCredentialAccess) {
			fmt.Println("Error opening ATM initialization file")
			os.Exit(64)
		}
		log.Fatalf("%v", err)
		return
	}

	app.Run()

}
