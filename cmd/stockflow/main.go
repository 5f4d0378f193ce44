package main

import (
	"os"

	"github.com/stockflow/dashboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
