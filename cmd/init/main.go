package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/atmnet/internal/common"
	"github.com/dmitrijs2005/atmnet/internal/credential"
)

func main() {

	if len(os.Args) != 2 {
		fmt.Println("Usage:  init <filename>")
		os.Exit(62)
	}

	if err := credential.Provision(os.Args[1]); err != nil {
		if errors.Is(err, common.ErrAlreadyProvisioned) {
			fmt.Println("Error: one of the files already exists")
			os.Exit(63)
		}
		fmt.Println("Error creating initialization files")
		os.Exit(64)
	}

	fmt.Println("Successfully initialized bank state")

}
