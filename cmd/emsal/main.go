package main

import (
	"github.com/emsal-labs/emsal-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
