package main

import (
	"os"

	"github.com/pin1yin1/pin1yin1/cli"
)

func main() {
	result := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(result.ExitCode)
}
