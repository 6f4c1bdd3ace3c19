package main

import (
	"fmt"
	"os"

	"github.com/edalab/gcr/cli"
)

func main() {
	if err := cli.App.Run(os.Args); err != nil {
		fmt.Println("Error running gcr:", err)
		os.Exit(1)
	}
}
