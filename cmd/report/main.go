package main

import (
	"fmt"
	"os"

	"github.com/farxc/sil_dashboard/internal/env"
)

var version = "dev"

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
