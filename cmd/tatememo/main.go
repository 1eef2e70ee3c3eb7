package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/tatememo/internal/app"
)

func main() {
	opts, err := app.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "tatememo:", err)
		os.Exit(2)
	}
	if err := app.New(opts).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tatememo:", err)
		os.Exit(1)
	}
}
