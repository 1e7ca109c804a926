package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/bank"
	"github.com/dmitrijs2005/atmnet/internal/bank/config"
	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if initFile := flagx.Positional(os.Args[1:], config.KnownFlags); initFile != "" && cfg.KeyFile == "" {
		cfg.KeyFile = initFile
	}

	app, err := bank.NewApp(cfg)

	if err != nil {
		if errors.Is(err, common.ErrCredentialAccess) {
			fmt.Println("Error opening bank initialization file")
			os.Exit(64)
		}
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
