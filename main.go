package main

import (
	"H5ROOT/bootstrap"
	"fmt"
	"os"
)

func main() {
	if err := bootstrap.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "h5root:", err)
		os.Exit(1)
	}
}
