package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/buzzer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "buzzer failed: %v\n", err)
		os.Exit(1)
	}
}
