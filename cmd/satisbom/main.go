package main

import (
	"fmt"
	"os"

	"github.com/Perococco/satisbom/cmd/satisbom/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
