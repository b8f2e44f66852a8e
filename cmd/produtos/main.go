package main

import (
	"fmt"
	"os"

	"github.com/jmoreira/produtos-cli/pkg/config"
)

func main() {
	cfg := config.Parse()

	if err := newApp(cfg).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
