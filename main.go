package main

import (
	"fmt"
	"os"

	"github.com/mlihgenel/gifclip/cmd"
)

var (
	version = "0.1.0"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Hata: %s\n", err)
		os.Exit(1)
	}
}
