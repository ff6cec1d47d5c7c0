package main

import (
	"fmt"
	"os"

	"github.com/lkoester/keysort/cli"
)

func main() {
	if err := cli.App.Run(os.Args); err != nil {
		fmt.Println("Error running CLI app:", err)
		os.Exit(1)
	}
}
